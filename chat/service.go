// Package chat implements the conversation workflow: it ties the session
// registry, the store and the completion API together around each inbound
// message.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/antonkh/relaybot/completion"
	"github.com/antonkh/relaybot/domain"
	"github.com/antonkh/relaybot/registry"
	"github.com/antonkh/relaybot/store"
)

const (
	promptRussian = "Всегда отвечай на русском языке."
	promptEnglish = "Always reply in English."
)

// ErrorReply is the fixed reply returned and persisted when the completion
// call fails.
const ErrorReply = "⚠️ Произошла ошибка при запросе."

// ErrNoSuchSession is returned by Transcript for an out-of-range index.
var ErrNoSuchSession = errors.New("no session at that index")

// Completer produces a reply for an ordered message sequence.
type Completer interface {
	Complete(ctx context.Context, messages []completion.Message) (string, error)
}

// Detector classifies the language of a message.
type Detector interface {
	Detect(text string) string
}

// Service coordinates the per-message conversation workflow.
type Service struct {
	store     store.Store
	registry  registry.Registry
	completer Completer
	detector  Detector
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a conversation service. The timeout bounds each completion
// call; it is enforced here, not assumed from the collaborator.
func New(st store.Store, reg registry.Registry, completer Completer, detector Detector, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = completion.DefaultTimeout
	}
	return &Service{
		store:     st,
		registry:  reg,
		completer: completer,
		detector:  detector,
		timeout:   timeout,
		logger:    logger,
	}
}

// Respond handles one inbound text message from a user and returns the reply
// to deliver. The inbound message is persisted before the completion call, so
// a failed or timed-out call never loses it. A completion failure degrades to
// ErrorReply, which is persisted as the assistant's message. Storage failures
// propagate to the caller.
func (s *Service) Respond(ctx context.Context, userID int64, text string) (string, error) {
	exchangeID := "xch_" + uuid.New().String()[:8]

	sessionID, ok := s.registry.Active(userID)
	if !ok {
		session, err := s.store.CreateSession(ctx, userID, text)
		if err != nil {
			return "", fmt.Errorf("failed to create session: %w", err)
		}
		s.registry.SetActive(userID, session.ID)
		sessionID = session.ID
		s.logger.Info("session started",
			zap.String("exchange_id", exchangeID),
			zap.Int64("user_id", userID),
			zap.Int64("session_id", sessionID))
	}

	if _, err := s.store.AppendMessage(ctx, sessionID, domain.RoleUser, text); err != nil {
		return "", fmt.Errorf("failed to save user message: %w", err)
	}

	history, err := s.store.ListMessages(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}

	prompt := promptEnglish
	if s.detector.Detect(text) == "ru" {
		prompt = promptRussian
	}

	messages := make([]completion.Message, 0, len(history)+1)
	messages = append(messages, completion.Message{Role: string(domain.RoleSystem), Content: prompt})
	for _, m := range history {
		messages = append(messages, completion.Message{Role: string(m.Role), Content: m.Content})
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	reply, err := s.completer.Complete(cctx, messages)
	cancel()
	if err != nil {
		s.logger.Warn("completion failed",
			zap.String("exchange_id", exchangeID),
			zap.Int64("session_id", sessionID),
			zap.Error(err))
		reply = ErrorReply
	}

	if _, err := s.store.AppendMessage(ctx, sessionID, domain.RoleAssistant, reply); err != nil {
		return "", fmt.Errorf("failed to save assistant message: %w", err)
	}

	return reply, nil
}

// Stop ends the user's active session. History stays in the store; the next
// message starts a new session.
func (s *Service) Stop(userID int64) {
	s.registry.ClearActive(userID)
}

// Reset erases all of the user's sessions and messages and clears the active
// session pointer.
func (s *Service) Reset(ctx context.Context, userID int64) error {
	if err := s.store.PurgeUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to purge history: %w", err)
	}
	s.registry.ClearActive(userID)
	return nil
}

// Sessions returns the user's sessions, newest first.
func (s *Service) Sessions(ctx context.Context, userID int64) ([]domain.Session, error) {
	sessions, err := s.store.ListUserSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Transcript returns the full message history of the index-th session in the
// newest-first list. The index is 1-based; an out-of-range index yields
// ErrNoSuchSession.
func (s *Service) Transcript(ctx context.Context, userID int64, index int) ([]domain.Message, error) {
	sessions, err := s.Sessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > len(sessions) {
		return nil, ErrNoSuchSession
	}
	messages, err := s.store.ListMessages(ctx, sessions[index-1].ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	return messages, nil
}
