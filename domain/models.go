// Package domain defines the core domain models for the relay bot.
package domain

import (
	"time"
	"unicode/utf8"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TitleMaxLen is the maximum length of a session title in runes.
const TitleMaxLen = 100

// Session represents a conversation thread owned by one user.
type Session struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message represents a single message in a session.
type Message struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TruncateTitle cuts a title to TitleMaxLen runes.
func TruncateTitle(s string) string {
	if utf8.RuneCountInString(s) <= TitleMaxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:TitleMaxLen])
}
