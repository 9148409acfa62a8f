package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Haider077/CallingJournal/internal/domain/journal"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

type EntryRepo interface {
	Create(dbc dbctx.Context, e *journal.Entry) (*journal.Entry, error)
	GetByDate(dbc dbctx.Context, ownerID uuid.UUID, date time.Time) (*journal.Entry, error)
	ListByOwner(dbc dbctx.Context, ownerID uuid.UUID, offset, limit int) ([]*journal.Entry, error)
	UpdateFields(dbc dbctx.Context, ownerID uuid.UUID, date time.Time, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, ownerID uuid.UUID, date time.Time) error
}

type entryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntryRepo(db *gorm.DB, log *logger.Logger) EntryRepo {
	return &entryRepo{db: db, log: log.With("repo", "JournalEntryRepo")}
}

func (r *entryRepo) Create(dbc dbctx.Context, e *journal.Entry) (*journal.Entry, error) {
	if e.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("missing owner_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if err := txx.WithContext(dbc.Ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (r *entryRepo) GetByDate(dbc dbctx.Context, ownerID uuid.UUID, date time.Time) (*journal.Entry, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("missing owner_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out journal.Entry
	if err := txx.WithContext(dbc.Ctx).
		Where("owner_id = ? AND date = ?", ownerID, date).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *entryRepo) ListByOwner(dbc dbctx.Context, ownerID uuid.UUID, offset, limit int) ([]*journal.Entry, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("missing owner_id")
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	out := []*journal.Entry{}
	if err := txx.WithContext(dbc.Ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *entryRepo) UpdateFields(dbc dbctx.Context, ownerID uuid.UUID, date time.Time, updates map[string]interface{}) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("missing owner_id")
	}
	if len(updates) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Model(&journal.Entry{}).
		Where("owner_id = ? AND date = ?", ownerID, date).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *entryRepo) Delete(dbc dbctx.Context, ownerID uuid.UUID, date time.Time) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("missing owner_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Where("owner_id = ? AND date = ?", ownerID, date).
		Delete(&journal.Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
