package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItemPriority constants
const (
	ActionItemPriorityLow    = "low"
	ActionItemPriorityMedium = "medium"
	ActionItemPriorityHigh   = "high"
	ActionItemPriorityUrgent = "urgent"
)

// ActionItemStatus constants
const (
	ActionItemStatusPending   = "pending"
	ActionItemStatusCompleted = "completed"
	ActionItemStatusCancelled = "cancelled"
)

// ActionItem is a task extracted from a recording's analysis. DueDate keeps
// the model's raw phrasing ("by Friday") rather than a parsed date.
type ActionItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RecordingID uuid.UUID `json:"recording_id" gorm:"type:uuid;not null;index"`
	Task        string    `json:"task" gorm:"type:text;not null"`
	Assignee    *string   `json:"assignee,omitempty" gorm:"type:varchar(255)"`
	Speaker     *string   `json:"speaker,omitempty" gorm:"type:varchar(100)"`
	DueDate     *string   `json:"due_date,omitempty" gorm:"type:varchar(255)"`
	Priority    string    `json:"priority" gorm:"type:varchar(20);default:'medium'"`
	Context     *string   `json:"context,omitempty" gorm:"type:text"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ActionItem) TableName() string {
	return "recording_action_items"
}
