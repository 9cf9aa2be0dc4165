package telegram

import (
	"fmt"
	"strings"

	"github.com/antonkh/relaybot/domain"
)

// formatSessionList renders the newest-first session list as
// "N. title (created_at)" lines.
func formatSessionList(sessions []domain.Session) string {
	var sb strings.Builder
	sb.WriteString("📜 История:\n")
	for i, s := range sessions {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, s.Title, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	sb.WriteString("\n" + historyFooterText)
	return sb.String()
}

// formatTranscript renders a session's messages with role prefixes.
func formatTranscript(messages []domain.Message) string {
	if len(messages) == 0 {
		return emptySessionText
	}
	var sb strings.Builder
	for _, m := range messages {
		prefix := "👤"
		if m.Role == domain.RoleAssistant {
			prefix = "🤖"
		}
		fmt.Fprintf(&sb, "%s %s\n\n", prefix, m.Content)
	}
	return strings.TrimRight(sb.String(), "\n")
}
