package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Haider077/CallingJournal/internal/domain/chat"
	"github.com/Haider077/CallingJournal/internal/domain/journal"
	"github.com/Haider077/CallingJournal/internal/domain/user"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

// NewLogger returns a quiet logger for tests.
func NewLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("failed to init test logger: %v", err)
	}
	return log
}

// OpenDB returns a migrated database handle. With TEST_POSTGRES_DSN set the
// test runs against Postgres inside a transaction that is rolled back at
// cleanup; otherwise each test gets its own throwaway sqlite file.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	var dialector gorm.Dialector
	usePostgres := false
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		dialector = postgres.Open(dsn)
		usePostgres = true
	} else {
		dialector = sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&user.User{},
		&journal.Entry{},
		&chat.Session{},
		&chat.Message{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	if usePostgres {
		tx := gdb.Begin()
		if tx.Error != nil {
			t.Fatalf("failed to begin test transaction: %v", tx.Error)
		}
		t.Cleanup(func() { tx.Rollback() })
		return tx
	}
	return gdb
}

// SeedUser inserts a user row directly.
func SeedUser(t *testing.T, gdb *gorm.DB, email string) *user.User {
	t.Helper()
	u := &user.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "$2a$10$seeded.digest.not.a.real.password.hashxxxxxxxxxxxxxxx",
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return u
}

// SeedSession inserts a chat session row directly.
func SeedSession(t *testing.T, gdb *gorm.DB, userID uuid.UUID, title string) *chat.Session {
	t.Helper()
	s := &chat.Session{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
	}
	if err := gdb.Create(s).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return s
}

// Day returns a UTC midnight timestamp offset days from a fixed base date.
func Day(offset int) time.Time {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}
