package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

// PasswordService hashes and verifies user passwords with bcrypt.
type PasswordService interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type passwordService struct {
	log  *logger.Logger
	cost int
}

func NewPasswordService(log *logger.Logger) PasswordService {
	return &passwordService{
		log:  log.With("service", "PasswordService"),
		cost: bcrypt.DefaultCost,
	}
}

func (ps *passwordService) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

func (ps *passwordService) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
