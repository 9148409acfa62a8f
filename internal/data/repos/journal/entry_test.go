package journal

import (
	"context"
	"errors"
	"testing"

	"github.com/Haider077/CallingJournal/internal/domain/journal"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/testutil"
)

func TestEntryRepo_CreateAndGetByDate(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewEntryRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	owner := testutil.SeedUser(t, gdb, "alice@example.com")

	created, err := repo.Create(dbc, &journal.Entry{
		OwnerID: owner.ID,
		Date:    testutil.Day(0),
		Title:   "First entry",
		Mood:    "🙂",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByDate(dbc, owner.ID, testutil.Day(0))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected id %s, got %s", created.ID, got.ID)
	}
	if got.Title != "First entry" || got.Mood != "🙂" {
		t.Fatalf("unexpected entry fields: %+v", got)
	}
}

func TestEntryRepo_ListByOwnerNewestFirst(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewEntryRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	owner := testutil.SeedUser(t, gdb, "alice@example.com")

	for _, offset := range []int{2, 0, 1} {
		if _, err := repo.Create(dbc, &journal.Entry{
			OwnerID: owner.ID,
			Date:    testutil.Day(offset),
			Title:   "entry",
			Mood:    "🙂",
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	entries, err := repo.ListByOwner(dbc, owner.ID, 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.After(entries[i-1].Date) {
			t.Fatalf("entries not in date-descending order: %v before %v", entries[i-1].Date, entries[i].Date)
		}
	}
}

func TestEntryRepo_CrossOwnerIsolation(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewEntryRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	alice := testutil.SeedUser(t, gdb, "alice@example.com")
	bob := testutil.SeedUser(t, gdb, "bob@example.com")

	if _, err := repo.Create(dbc, &journal.Entry{
		OwnerID: alice.ID,
		Date:    testutil.Day(0),
		Title:   "private",
		Mood:    "🙂",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := repo.GetByDate(dbc, bob.ID, testutil.Day(0)); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner, got %v", err)
	}
	entries, err := repo.ListByOwner(dbc, bob.ID, 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries for bob, got %d", len(entries))
	}
}

func TestEntryRepo_UpdateFields(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewEntryRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	owner := testutil.SeedUser(t, gdb, "alice@example.com")

	if _, err := repo.Create(dbc, &journal.Entry{
		OwnerID: owner.ID,
		Date:    testutil.Day(0),
		Title:   "before",
		Mood:    "🙂",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := repo.UpdateFields(dbc, owner.ID, testutil.Day(0), map[string]interface{}{
		"title":      "after",
		"is_starred": true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repo.GetByDate(dbc, owner.ID, testutil.Day(0))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "after" || !got.IsStarred {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Mood != "🙂" {
		t.Fatalf("untouched field changed: %q", got.Mood)
	}

	if err := repo.UpdateFields(dbc, owner.ID, testutil.Day(5), map[string]interface{}{"title": "x"}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing date, got %v", err)
	}
}

func TestEntryRepo_Delete(t *testing.T) {
	gdb := testutil.OpenDB(t)
	repo := NewEntryRepo(gdb, testutil.NewLogger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	owner := testutil.SeedUser(t, gdb, "alice@example.com")

	if _, err := repo.Create(dbc, &journal.Entry{
		OwnerID: owner.ID,
		Date:    testutil.Day(0),
		Title:   "gone soon",
		Mood:    "🙂",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(dbc, owner.ID, testutil.Day(0)); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetByDate(dbc, owner.ID, testutil.Day(0)); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(dbc, owner.ID, testutil.Day(0)); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a second delete, got %v", err)
	}
}
