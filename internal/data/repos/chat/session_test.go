package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Haider077/CallingJournal/internal/domain/chat"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/testutil"
)

func TestSessionRepo_CreateAppliesDefaultTitle(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewSessionRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	owner := testutil.SeedUser(t, gdb, "alice@example.com")

	created, err := repo.Create(dbc, &chat.Session{UserID: owner.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Title != chat.DefaultSessionTitle {
		t.Fatalf("expected default title %q, got %q", chat.DefaultSessionTitle, created.Title)
	}

	named, err := repo.Create(dbc, &chat.Session{UserID: owner.ID, Title: "Trip planning"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if named.Title != "Trip planning" {
		t.Fatalf("explicit title overwritten: %q", named.Title)
	}
}

func TestSessionRepo_GetByIDEnforcesOwnership(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewSessionRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	alice := testutil.SeedUser(t, gdb, "alice@example.com")
	bob := testutil.SeedUser(t, gdb, "bob@example.com")
	s := testutil.SeedSession(t, gdb, alice.ID, "Mine")

	got, err := repo.GetByID(dbc, s.ID, alice.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Mine" {
		t.Fatalf("unexpected title %q", got.Title)
	}

	if _, err := repo.GetByID(dbc, s.ID, bob.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a foreign session, got %v", err)
	}
}

func TestSessionRepo_ListByUserRecentFirst(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewSessionRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	owner := testutil.SeedUser(t, gdb, "alice@example.com")

	older := testutil.SeedSession(t, gdb, owner.ID, "Older")
	newer := testutil.SeedSession(t, gdb, owner.ID, "Newer")
	if err := repo.Touch(dbc, older.ID, time.Now().UTC().Add(-time.Hour)); err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	if err := repo.Touch(dbc, newer.ID, time.Now().UTC()); err != nil {
		t.Fatalf("touch failed: %v", err)
	}

	sessions, err := repo.ListByUser(dbc, owner.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != newer.ID {
		t.Fatalf("expected most recently touched session first")
	}
}

func TestSessionRepo_UpdateTitle(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewSessionRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	alice := testutil.SeedUser(t, gdb, "alice@example.com")
	bob := testutil.SeedUser(t, gdb, "bob@example.com")
	s := testutil.SeedSession(t, gdb, alice.ID, "Old name")

	if err := repo.UpdateTitle(dbc, s.ID, bob.ID, "hijacked"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a foreign rename, got %v", err)
	}
	if err := repo.UpdateTitle(dbc, s.ID, alice.ID, "New name"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	got, err := repo.GetByID(dbc, s.ID, alice.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "New name" {
		t.Fatalf("expected renamed title, got %q", got.Title)
	}
}

func TestSessionRepo_DeleteRemovesMessages(t *testing.T) {
	gdb := testutil.OpenDB(t)
	log := testutil.NewLogger(t)
	sessions := NewSessionRepo(gdb, log)
	messages := NewMessageRepo(gdb, log)
	dbc := dbctx.Context{Ctx: context.Background()}
	owner := testutil.SeedUser(t, gdb, "alice@example.com")
	s := testutil.SeedSession(t, gdb, owner.ID, "Doomed")

	for _, content := range []string{"hello", "hi there"} {
		if _, err := messages.Create(dbc, &chat.Message{
			SessionID: s.ID,
			Role:      chat.RoleUser,
			Content:   content,
		}); err != nil {
			t.Fatalf("message create failed: %v", err)
		}
	}

	if err := sessions.Delete(dbc, s.ID, owner.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := sessions.GetByID(dbc, s.ID, owner.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	count, err := messages.CountBySession(dbc, s.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected messages gone with the session, found %d", count)
	}
}
