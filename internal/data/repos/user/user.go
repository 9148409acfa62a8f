package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Haider077/CallingJournal/internal/domain/user"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, u *user.User) (*user.User, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*user.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return &userRepo{db: db, log: log.With("repo", "UserRepo")}
}

// Create does not check email uniqueness itself; callers go through
// EmailExists first and the unique index is the storage-level backstop.
func (r *userRepo) Create(dbc dbctx.Context, u *user.User) (*user.User, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if err := txx.WithContext(dbc.Ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*user.User, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out user.User
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*user.User, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out user.User
	if err := txx.WithContext(dbc.Ctx).
		Where("email = ?", email).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&user.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
