package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	userRepos "github.com/Haider077/CallingJournal/internal/data/repos/user"
	"github.com/Haider077/CallingJournal/internal/domain/user"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/ctxutil"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, password string) (*user.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  userRepos.UserRepo
	passwords PasswordService
	tokens    TokenService
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userRepos.UserRepo,
	passwords PasswordService,
	tokens TokenService,
) AuthService {
	return &authService{
		db:        db,
		log:       log.With("service", "AuthService"),
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
	}
}

func (as *authService) RegisterUser(ctx context.Context, email, password string) (*user.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("an email is required to register: %w", errs.ErrInvalidArgument)
	}
	if password == "" {
		return nil, fmt.Errorf("a password is required to register: %w", errs.ErrInvalidArgument)
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := as.userRepo.EmailExists(dbc, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered: %w", errs.ErrConflict)
	}

	digest, err := as.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	var created *user.User
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := &user.User{Email: email, Password: digest}
		var cErr error
		created, cErr = as.userRepo.Create(dbctx.Context{Ctx: ctx, Tx: tx}, u)
		if cErr != nil {
			return fmt.Errorf("failed to create user: %w", cErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	as.log.Info("User registered", "user_id", created.ID.String())
	return created, nil
}

// LoginUser returns a bearer token. An unknown email and a wrong password
// produce the same ErrUnauthorized.
func (as *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", errs.ErrUnauthorized
	}

	u, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrUnauthorized
		}
		return "", fmt.Errorf("failed to load user by email: %w", err)
	}
	if !as.passwords.Verify(password, u.Password) {
		return "", errs.ErrUnauthorized
	}

	token, err := as.tokens.Issue(u.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return token, nil
}

// SetContextFromToken resolves the bearer token to an existing user and
// attaches the request data. Invalid signature, expired token and a subject
// with no matching user row are indistinguishable to the caller.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	subject, err := as.tokens.Validate(tokenString)
	if err != nil {
		return ctx, errs.ErrUnauthorized
	}
	u, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, subject)
	if err != nil {
		return ctx, errs.ErrUnauthorized
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      u.ID,
		Email:       u.Email,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.tokens.AccessTTL()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
