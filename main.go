package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/antonkh/relaybot/api"
	"github.com/antonkh/relaybot/chat"
	"github.com/antonkh/relaybot/completion"
	"github.com/antonkh/relaybot/config"
	"github.com/antonkh/relaybot/langdetect"
	"github.com/antonkh/relaybot/registry"
	"github.com/antonkh/relaybot/store"
	"github.com/antonkh/relaybot/telegram"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to initialize store",
			zap.Error(err),
			zap.String("database", cfg.DatabaseURL))
	}
	defer db.Close()

	// Initialize conversation service
	client := completion.NewClient(cfg.CompletionURL, cfg.CompletionToken, cfg.Model, cfg.CompletionTimeout)
	svc := chat.New(db, registry.NewInMemory(), client, langdetect.WhatLang{}, cfg.CompletionTimeout, logger)

	// Initialize Telegram transport
	h := telegram.NewHandler(svc, logger)
	tg, err := bot.New(cfg.BotToken, bot.WithDefaultHandler(h.OnMessage))
	if err != nil {
		logger.Fatal("failed to initialize bot", zap.Error(err))
	}
	h.Register(tg)

	// Admin HTTP server
	adminHandler := api.NewHandler(db, logger)
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	adminHandler.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start admin server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bot started",
		zap.String("model", cfg.Model),
		zap.Int("admin_port", cfg.HTTPPort))

	// Blocks on long polling until the context is cancelled.
	tg.Start(ctx)

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown admin server gracefully", zap.Error(err))
	}
}
