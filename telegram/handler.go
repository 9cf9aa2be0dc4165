// Package telegram wires the Telegram transport to the conversation service.
package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/antonkh/relaybot/chat"
)

// User-visible replies.
const (
	greetingText      = "👋 Привет! Я бот с ИИ. Напиши что-нибудь, и я тебе отвечу!"
	helpText          = "/start — начать\n/stop — завершить диалог\n/reset — очистить всё\n/history — список\n/history N — диалог\n/lang — язык"
	stoppedText       = "✅ Текущий диалог завершён."
	resetDoneText     = "🗑 История удалена."
	emptyHistoryText  = "📭 История пуста."
	historyHintText   = "❌ Укажи номер из /history"
	emptySessionText  = "⛔️ Нет сообщений."
	chooseLangText    = "Выберите язык:"
	autoLangText      = "⚙️ Язык определяется автоматически."
	textOnlyText      = "Пожалуйста, отправь текст."
	genericErrorText  = "⚠️ Что-то пошло не так. Попробуй позже."
	historyFooterText = "/history N — чтобы открыть"
)

var langKeyboard = &models.InlineKeyboardMarkup{
	InlineKeyboard: [][]models.InlineKeyboardButton{{
		{Text: "🇷🇺 Русский", CallbackData: "lang_ru"},
		{Text: "🇬🇧 English", CallbackData: "lang_en"},
	}},
}

// Handler handles Telegram updates.
type Handler struct {
	svc    *chat.Service
	logger *zap.Logger
}

// NewHandler creates a new handler.
func NewHandler(svc *chat.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the command and callback handlers with the bot. The
// catch-all text handler must be installed separately via
// bot.WithDefaultHandler(h.OnMessage).
func (h *Handler) Register(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.onStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.onHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stop", bot.MatchTypeExact, h.onStop)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypeExact, h.onReset)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypePrefix, h.onHistory)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/lang", bot.MatchTypeExact, h.onLang)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "lang_", bot.MatchTypePrefix, h.onLangSelect)
}

func (h *Handler) onStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.send(ctx, b, update.Message.Chat.ID, greetingText)
}

func (h *Handler) onHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.send(ctx, b, update.Message.Chat.ID, helpText)
}

func (h *Handler) onStop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !hasSender(update) {
		return
	}
	h.svc.Stop(update.Message.From.ID)
	h.send(ctx, b, update.Message.Chat.ID, stoppedText)
}

func (h *Handler) onReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !hasSender(update) {
		return
	}
	userID := update.Message.From.ID
	if err := h.svc.Reset(ctx, userID); err != nil {
		h.logger.Error("reset failed", zap.Int64("user_id", userID), zap.Error(err))
		h.send(ctx, b, update.Message.Chat.ID, genericErrorText)
		return
	}
	h.send(ctx, b, update.Message.Chat.ID, resetDoneText)
}

func (h *Handler) onHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !hasSender(update) {
		return
	}
	arg, ok := historyCommand(update.Message.Text)
	if !ok {
		// Prefix-matched text like "/historyanything" is not the command;
		// treat it as a conversation turn, as the original catch-all did.
		h.OnMessage(ctx, b, update)
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if arg == "" {
		sessions, err := h.svc.Sessions(ctx, userID)
		if err != nil {
			h.logger.Error("list sessions failed", zap.Int64("user_id", userID), zap.Error(err))
			h.send(ctx, b, chatID, genericErrorText)
			return
		}
		if len(sessions) == 0 {
			h.send(ctx, b, chatID, emptyHistoryText)
			return
		}
		h.send(ctx, b, chatID, formatSessionList(sessions))
		return
	}

	index, err := strconv.Atoi(arg)
	if err != nil {
		h.send(ctx, b, chatID, historyHintText)
		return
	}
	messages, err := h.svc.Transcript(ctx, userID, index)
	if err != nil {
		if errors.Is(err, chat.ErrNoSuchSession) {
			h.send(ctx, b, chatID, historyHintText)
			return
		}
		h.logger.Error("load transcript failed", zap.Int64("user_id", userID), zap.Error(err))
		h.send(ctx, b, chatID, genericErrorText)
		return
	}
	h.send(ctx, b, chatID, formatTranscript(messages))
}

func (h *Handler) onLang(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        chooseLangText,
		ReplyMarkup: langKeyboard,
	})
	if err != nil {
		h.logger.Error("failed to send language menu", zap.Error(err))
	}
}

// onLangSelect only acknowledges the tap: the language is detected
// automatically per message, the menu is cosmetic.
func (h *Handler) onLangSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            autoLangText,
	})
	if err != nil {
		h.logger.Error("failed to answer callback query", zap.Error(err))
	}
}

// OnMessage is the catch-all handler for plain text: one conversation turn.
func (h *Handler) OnMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	if text == "" {
		h.send(ctx, b, chatID, textOnlyText)
		return
	}

	reply, err := h.svc.Respond(ctx, update.Message.From.ID, text)
	if err != nil {
		h.logger.Error("conversation turn failed",
			zap.Int64("user_id", update.Message.From.ID),
			zap.Error(err))
		h.send(ctx, b, chatID, genericErrorText)
		return
	}
	h.send(ctx, b, chatID, reply)
}

// hasSender reports whether the update carries a message with a sender.
// Channel posts and some group service updates have no From user.
func hasSender(update *models.Update) bool {
	return update.Message != nil && update.Message.From != nil
}

// historyCommand reports whether text is the /history command and returns
// its optional index argument.
func historyCommand(text string) (arg string, ok bool) {
	args := strings.Fields(text)
	if len(args) == 0 || args[0] != "/history" {
		return "", false
	}
	if len(args) > 1 {
		arg = args[1]
	}
	return arg, true
}

func (h *Handler) send(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		h.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
