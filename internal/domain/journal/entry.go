package journal

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTitle = "Journal Entry"
	DefaultMood  = "📝"
)

// Entry is one journal entry. At most one row exists per (owner_id, date);
// the composite unique index backstops the create-time existence check.
type Entry struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_journal_entry_owner_date,unique,priority:1" json:"owner_id"`

	Date      time.Time `gorm:"type:date;not null;index:idx_journal_entry_owner_date,unique,priority:2" json:"date"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	Mood      string    `gorm:"not null;column:mood" json:"mood"`
	Duration  *string   `gorm:"column:duration" json:"duration"`
	Content   *string   `gorm:"type:text;column:content" json:"content"`
	IsStarred bool      `gorm:"not null;default:false;column:is_starred" json:"is_starred"`
	IsHidden  bool      `gorm:"not null;default:false;column:is_hidden" json:"is_hidden"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Entry) TableName() string { return "journal_entry" }

// EntryUpdate is a partial update: nil means "leave the field alone", a
// non-nil pointer overwrites. Only supplied fields ever reach the database.
type EntryUpdate struct {
	Title     *string `json:"title"`
	Mood      *string `json:"mood"`
	Duration  *string `json:"duration"`
	Content   *string `json:"content"`
	IsStarred *bool   `json:"is_starred"`
	IsHidden  *bool   `json:"is_hidden"`
}

// Fields flattens the update into a column map for gorm Updates.
func (u EntryUpdate) Fields() map[string]interface{} {
	out := map[string]interface{}{}
	if u.Title != nil {
		out["title"] = *u.Title
	}
	if u.Mood != nil {
		out["mood"] = *u.Mood
	}
	if u.Duration != nil {
		out["duration"] = *u.Duration
	}
	if u.Content != nil {
		out["content"] = *u.Content
	}
	if u.IsStarred != nil {
		out["is_starred"] = *u.IsStarred
	}
	if u.IsHidden != nil {
		out["is_hidden"] = *u.IsHidden
	}
	return out
}
