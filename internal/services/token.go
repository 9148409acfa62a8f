package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

// DefaultAccessTTL is the single token lifetime used everywhere. Earlier
// revisions carried a second 15-minute fallback on the low-level issuing
// path; that split default was collapsed into this one constant.
const DefaultAccessTTL = 30 * time.Minute

// TokenService issues and validates signed, time-bound bearer tokens whose
// subject is the user's email.
type TokenService interface {
	Issue(subject string) (string, error)
	IssueWithTTL(subject string, ttl time.Duration) (string, error)
	Validate(tokenString string) (string, error)
	AccessTTL() time.Duration
}

type tokenService struct {
	log       *logger.Logger
	secretKey []byte
	accessTTL time.Duration
}

func NewTokenService(log *logger.Logger, secretKey string, accessTTL time.Duration) TokenService {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	return &tokenService{
		log:       log.With("service", "TokenService"),
		secretKey: []byte(secretKey),
		accessTTL: accessTTL,
	}
}

func (ts *tokenService) Issue(subject string) (string, error) {
	return ts.IssueWithTTL(subject, ts.accessTTL)
}

func (ts *tokenService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = ts.accessTTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secretKey)
}

// Validate returns the token subject. A bad signature, an expired token and a
// malformed token all collapse into the same ErrUnauthorized so callers leak
// nothing about which check failed.
func (ts *tokenService) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return ts.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return "", errs.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errs.ErrUnauthorized
	}
	return claims.Subject, nil
}

func (ts *tokenService) AccessTTL() time.Duration {
	return ts.accessTTL
}
