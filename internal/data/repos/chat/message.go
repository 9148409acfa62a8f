package chat

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Haider077/CallingJournal/internal/domain/chat"
	"github.com/Haider077/CallingJournal/internal/pkg/dbctx"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

type MessageRepo interface {
	Create(dbc dbctx.Context, m *chat.Message) (*chat.Message, error)
	ListBySession(dbc dbctx.Context, sessionID uuid.UUID, offset, limit int) ([]*chat.Message, error)
	CountBySession(dbc dbctx.Context, sessionID uuid.UUID) (int64, error)
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, log *logger.Logger) MessageRepo {
	return &messageRepo{db: db, log: log.With("repo", "ChatMessageRepo")}
}

func (r *messageRepo) Create(dbc dbctx.Context, m *chat.Message) (*chat.Message, error) {
	if m.SessionID == uuid.Nil {
		return nil, fmt.Errorf("missing session_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := txx.WithContext(dbc.Ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListBySession returns messages in timestamp-ascending order, the
// authoritative order for reconstructing conversation history.
func (r *messageRepo) ListBySession(dbc dbctx.Context, sessionID uuid.UUID, offset, limit int) ([]*chat.Message, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("missing session_id")
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	out := []*chat.Message{}
	if err := txx.WithContext(dbc.Ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *messageRepo) CountBySession(dbc dbctx.Context, sessionID uuid.UUID) (int64, error) {
	if sessionID == uuid.Nil {
		return 0, fmt.Errorf("missing session_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&chat.Message{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
