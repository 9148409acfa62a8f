package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is append-only: rows are never updated and only disappear when the
// parent session is deleted. CreatedAt ascending is the authoritative order
// for rebuilding conversation history.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`

	Role     string         `gorm:"not null;column:role" json:"role"`
	Content  string         `gorm:"type:text;not null;column:content" json:"content"`
	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"timestamp"`
}

func (Message) TableName() string { return "chat_message" }
