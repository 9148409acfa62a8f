package chat

import (
	"context"
	"testing"
	"time"

	"github.com/Haider077/CallingJournal/internal/domain/chat"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/testutil"
)

func TestMessageRepo_ListBySessionOldestFirst(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewMessageRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	owner := testutil.SeedUser(t, gdb, "alice@example.com")
	s := testutil.SeedSession(t, gdb, owner.ID, "History")

	base := time.Now().UTC().Add(-time.Minute)
	turns := []struct {
		role    string
		content string
	}{
		{chat.RoleUser, "first"},
		{chat.RoleModel, "second"},
		{chat.RoleUser, "third"},
	}
	for i, turn := range turns {
		if _, err := repo.Create(dbc, &chat.Message{
			SessionID: s.ID,
			Role:      turn.role,
			Content:   turn.content,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := repo.ListBySession(dbc, s.ID, 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, turn := range turns {
		if got[i].Content != turn.content || got[i].Role != turn.role {
			t.Fatalf("position %d: expected %s/%q, got %s/%q", i, turn.role, turn.content, got[i].Role, got[i].Content)
		}
	}
}

func TestMessageRepo_PaginationWindow(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewMessageRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	owner := testutil.SeedUser(t, gdb, "alice@example.com")
	s := testutil.SeedSession(t, gdb, owner.ID, "Long chat")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		if _, err := repo.Create(dbc, &chat.Message{
			SessionID: s.ID,
			Role:      chat.RoleUser,
			Content:   string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := repo.ListBySession(dbc, s.ID, 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected a 2-row window, got %d", len(got))
	}
	if got[0].Content != "b" || got[1].Content != "c" {
		t.Fatalf("unexpected window contents: %q, %q", got[0].Content, got[1].Content)
	}

	count, err := repo.CountBySession(dbc, s.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected count 5, got %d", count)
	}
}
