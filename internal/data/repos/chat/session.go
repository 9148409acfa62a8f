package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Haider077/CallingJournal/internal/domain/chat"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

type SessionRepo interface {
	Create(dbc dbctx.Context, s *chat.Session) (*chat.Session, error)
	GetByID(dbc dbctx.Context, id, userID uuid.UUID) (*chat.Session, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*chat.Session, error)
	UpdateTitle(dbc dbctx.Context, id, userID uuid.UUID, title string) error
	Touch(dbc dbctx.Context, id uuid.UUID, at time.Time) error
	Delete(dbc dbctx.Context, id, userID uuid.UUID) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, log *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: log.With("repo", "ChatSessionRepo")}
}

func (r *sessionRepo) Create(dbc dbctx.Context, s *chat.Session) (*chat.Session, error) {
	if s.UserID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Title == "" {
		s.Title = chat.DefaultSessionTitle
	}
	if err := txx.WithContext(dbc.Ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID filters by user id as well: a session owned by someone else is
// indistinguishable from a missing one.
func (r *sessionRepo) GetByID(dbc dbctx.Context, id, userID uuid.UUID) (*chat.Session, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out chat.Session
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *sessionRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*chat.Session, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	out := []*chat.Session{}
	if err := txx.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sessionRepo) UpdateTitle(dbc dbctx.Context, id, userID uuid.UUID, title string) error {
	if userID == uuid.Nil {
		return fmt.Errorf("missing user_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Model(&chat.Session{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("title", title)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Touch bumps updated_at; callers run it in the same transaction as the
// message append so the two are never observed apart.
func (r *sessionRepo) Touch(dbc dbctx.Context, id uuid.UUID, at time.Time) error {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&chat.Session{}).
		Where("id = ?", id).
		Update("updated_at", at).Error
}

// Delete removes the session and all of its messages in one transaction.
func (r *sessionRepo) Delete(dbc dbctx.Context, id, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("missing user_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&chat.Session{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return tx.Where("session_id = ?", id).Delete(&chat.Message{}).Error
	})
}
