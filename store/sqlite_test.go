package store

import (
	"context"
	"strings"
	"testing"

	"github.com/antonkh/relaybot/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestCreateSessionTruncatesTitle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	long := strings.Repeat("п", 150)
	session, err := store.CreateSession(ctx, 1, long)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if got := len([]rune(session.Title)); got != domain.TitleMaxLen {
		t.Fatalf("expected %d-rune title, got %d", domain.TitleMaxLen, got)
	}

	short, err := store.CreateSession(ctx, 1, "hello")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if short.Title != "hello" {
		t.Fatalf("unexpected title: %q", short.Title)
	}
	if short.ID <= session.ID {
		t.Fatalf("expected monotonic ids, got %d then %d", session.ID, short.ID)
	}
}

func TestMessagesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	session, err := store.CreateSession(ctx, 1, "ordering")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	turns := []struct {
		role    domain.Role
		content string
	}{
		{domain.RoleUser, "first"},
		{domain.RoleAssistant, "second"},
		{domain.RoleUser, "third"},
		{domain.RoleAssistant, "fourth"},
	}
	for _, turn := range turns {
		if _, err := store.AppendMessage(ctx, session.ID, turn.role, turn.content); err != nil {
			t.Fatalf("AppendMessage failed: %v", err)
		}
	}

	messages, err := store.ListMessages(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != len(turns) {
		t.Fatalf("expected %d messages, got %d", len(turns), len(messages))
	}
	for i, turn := range turns {
		if messages[i].Role != turn.role || messages[i].Content != turn.content {
			t.Fatalf("message %d out of order: %+v", i, messages[i])
		}
	}
}

func TestListMessagesEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	messages, err := store.ListMessages(ctx, 42)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func TestListUserSessionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	for _, title := range []string{"one", "two", "three"} {
		if _, err := store.CreateSession(ctx, 1, title); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}
	if _, err := store.CreateSession(ctx, 2, "other user"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	sessions, err := store.ListUserSessions(ctx, 1)
	if err != nil {
		t.Fatalf("ListUserSessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	want := []string{"three", "two", "one"}
	for i, title := range want {
		if sessions[i].Title != title {
			t.Fatalf("expected %q at index %d, got %q", title, i, sessions[i].Title)
		}
	}
}

func TestPurgeUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	mine, err := store.CreateSession(ctx, 1, "mine")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	theirs, err := store.CreateSession(ctx, 2, "theirs")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := store.AppendMessage(ctx, mine.ID, domain.RoleUser, "mine"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}
	if _, err := store.AppendMessage(ctx, theirs.ID, domain.RoleUser, "theirs"); err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}

	if err := store.PurgeUser(ctx, 1); err != nil {
		t.Fatalf("PurgeUser failed: %v", err)
	}

	sessions, err := store.ListUserSessions(ctx, 1)
	if err != nil {
		t.Fatalf("ListUserSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions after purge, got %d", len(sessions))
	}
	messages, err := store.ListMessages(ctx, mine.ID)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages after purge, got %d", len(messages))
	}

	// Other users are untouched.
	messages, err = store.ListMessages(ctx, theirs.ID)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message for other user, got %d", len(messages))
	}
}

func TestPurgedIDsNotReused(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	old, err := store.CreateSession(ctx, 1, "old")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.PurgeUser(ctx, 1); err != nil {
		t.Fatalf("PurgeUser failed: %v", err)
	}

	fresh, err := store.CreateSession(ctx, 1, "fresh")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if fresh.ID <= old.ID {
		t.Fatalf("expected a brand-new id after purge, got %d after %d", fresh.ID, old.ID)
	}
}
