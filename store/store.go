// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/antonkh/relaybot/domain"
)

// Store defines the interface for data persistence. It is the sole source
// of truth for sessions and messages.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, userID int64, title string) (*domain.Session, error)
	ListUserSessions(ctx context.Context, userID int64) ([]domain.Session, error)

	// Message operations
	AppendMessage(ctx context.Context, sessionID int64, role domain.Role, content string) (*domain.Message, error)
	ListMessages(ctx context.Context, sessionID int64) ([]domain.Message, error)

	// PurgeUser deletes all of the user's messages and sessions atomically.
	PurgeUser(ctx context.Context, userID int64) error

	// Lifecycle
	Close() error
}
