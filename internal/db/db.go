package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Haider077/CallingJournal/internal/domain/chat"
	"github.com/Haider077/CallingJournal/internal/domain/journal"
	"github.com/Haider077/CallingJournal/internal/domain/user"
	"github.com/Haider077/CallingJournal/internal/platform/envutil"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New connects to Postgres by default; DB_DRIVER=sqlite switches to a local
// file database for development.
func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := strings.ToLower(envutil.String("DB_DRIVER", "postgres"))

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		path := envutil.String("SQLITE_PATH", "calling_journal.db")
		dialector = sqlite.Open(path)
	default:
		host := envutil.String("POSTGRES_HOST", "localhost")
		port := envutil.String("POSTGRES_PORT", "5432")
		dbUser := envutil.String("POSTGRES_USER", "postgres")
		password := envutil.String("POSTGRES_PASSWORD", "postgres")
		name := envutil.String("POSTGRES_NAME", "calling_journal")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, password, host, port, name)
		dialector = postgres.Open(dsn)
	}

	serviceLog.Info("Connecting to database...", "driver", driver)
	gdb, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Service{db: gdb, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := s.db.AutoMigrate(
		&user.User{},
		&journal.Entry{},
		&chat.Session{},
		&chat.Message{},
	); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if s.db.Dialector.Name() == "postgres" {
		// Session deletes fall back to an explicit two-step delete in the
		// repo; the constraint keeps messages from ever orphaning.
		if err := s.db.Exec(`
			ALTER TABLE "chat_message"
			DROP CONSTRAINT IF EXISTS "fk_chat_message_session_id";
		`).Error; err != nil {
			return fmt.Errorf("failed to reset fk_chat_message_session_id: %w", err)
		}
		if err := s.db.Exec(`
			ALTER TABLE "chat_message"
			ADD CONSTRAINT "fk_chat_message_session_id"
			FOREIGN KEY ("session_id")
			REFERENCES "chat_session"("id")
			ON DELETE CASCADE
		`).Error; err != nil {
			return fmt.Errorf("failed to add fk_chat_message_session_id: %w", err)
		}
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
