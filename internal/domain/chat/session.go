package chat

import (
	"time"

	"github.com/google/uuid"
)

const DefaultSessionTitle = "New Chat"

// Session is one conversation. UpdatedAt is bumped on every message append
// and drives the most-recently-active ordering in session lists.
type Session struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Title string `gorm:"not null;column:title" json:"title"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}

func (Session) TableName() string { return "chat_session" }
