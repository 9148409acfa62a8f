package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	journalRepos "github.com/Haider077/CallingJournal/internal/data/repos/journal"
	"github.com/Haider077/CallingJournal/internal/domain/journal"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/ctxutil"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

// CreateEntryInput mirrors the create payload; nil optionals fall back to the
// entry defaults.
type CreateEntryInput struct {
	Date      time.Time
	Title     *string
	Mood      *string
	Duration  *string
	Content   *string
	IsStarred *bool
	IsHidden  *bool
}

type JournalService interface {
	CreateEntry(ctx context.Context, in CreateEntryInput) (*journal.Entry, error)
	GetEntry(ctx context.Context, date time.Time) (*journal.Entry, error)
	ListEntries(ctx context.Context, offset, limit int) ([]*journal.Entry, error)
	UpdateEntry(ctx context.Context, date time.Time, upd journal.EntryUpdate) (*journal.Entry, error)
	DeleteEntry(ctx context.Context, date time.Time) (*journal.Entry, error)
}

type journalService struct {
	db        *gorm.DB
	log       *logger.Logger
	entryRepo journalRepos.EntryRepo
}

func NewJournalService(db *gorm.DB, log *logger.Logger, entryRepo journalRepos.EntryRepo) JournalService {
	return &journalService{
		db:        db,
		log:       log.With("service", "JournalService"),
		entryRepo: entryRepo,
	}
}

// CreateEntry is idempotent per (owner, date): if an entry already exists it
// is returned unchanged. The existence check races under concurrency; the
// (owner_id, date) unique index backstops it, and a conflicting insert
// degrades into returning the row the other writer committed.
func (js *journalService) CreateEntry(ctx context.Context, in CreateEntryInput) (*journal.Entry, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	date := NormalizeDate(in.Date)
	dbc := dbctx.Context{Ctx: ctx}

	existing, err := js.entryRepo.GetByDate(dbc, rd.UserID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing entry: %w", err)
	}

	e := &journal.Entry{
		OwnerID:  rd.UserID,
		Date:     date,
		Title:    journal.DefaultTitle,
		Mood:     journal.DefaultMood,
		Duration: in.Duration,
		Content:  in.Content,
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Mood != nil {
		e.Mood = *in.Mood
	}
	if in.IsStarred != nil {
		e.IsStarred = *in.IsStarred
	}
	if in.IsHidden != nil {
		e.IsHidden = *in.IsHidden
	}

	created, cErr := js.entryRepo.Create(dbc, e)
	if cErr != nil {
		// Lost the race: another request inserted the same (owner, date)
		// between the check and this insert. Return that row instead.
		if winner, gErr := js.entryRepo.GetByDate(dbc, rd.UserID, date); gErr == nil {
			return winner, nil
		}
		return nil, fmt.Errorf("failed to create entry: %w", cErr)
	}
	return created, nil
}

func (js *journalService) GetEntry(ctx context.Context, date time.Time) (*journal.Entry, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	return js.entryRepo.GetByDate(dbctx.Context{Ctx: ctx}, rd.UserID, NormalizeDate(date))
}

func (js *journalService) ListEntries(ctx context.Context, offset, limit int) ([]*journal.Entry, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	return js.entryRepo.ListByOwner(dbctx.Context{Ctx: ctx}, rd.UserID, offset, limit)
}

func (js *journalService) UpdateEntry(ctx context.Context, date time.Time, upd journal.EntryUpdate) (*journal.Entry, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	date = NormalizeDate(date)
	dbc := dbctx.Context{Ctx: ctx}

	fields := upd.Fields()
	if len(fields) > 0 {
		if err := js.entryRepo.UpdateFields(dbc, rd.UserID, date, fields); err != nil {
			return nil, err
		}
	}
	return js.entryRepo.GetByDate(dbc, rd.UserID, date)
}

func (js *journalService) DeleteEntry(ctx context.Context, date time.Time) (*journal.Entry, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, errs.ErrUnauthorized
	}
	date = NormalizeDate(date)

	var deleted *journal.Entry
	if err := js.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		e, err := js.entryRepo.GetByDate(dbc, rd.UserID, date)
		if err != nil {
			return err
		}
		if err := js.entryRepo.Delete(dbc, rd.UserID, date); err != nil {
			return err
		}
		deleted = e
		return nil
	}); err != nil {
		return nil, err
	}
	return deleted, nil
}

// NormalizeDate truncates to a UTC calendar day so equality works the same
// across drivers.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
