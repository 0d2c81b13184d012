package entities

import (
	"time"

	"github.com/google/uuid"
)

// TaskInsight is a derived task suggestion produced from one action item when
// the recording resolves to a case context. SuggestedAssigneeID is nil when
// the assignee name could not be resolved unambiguously.
type TaskInsight struct {
	ID                   uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RecordingID          uuid.UUID  `json:"recording_id" gorm:"type:uuid;not null;index"`
	ActionItemID         uuid.UUID  `json:"action_item_id" gorm:"type:uuid;not null;index"`
	CaseID               uuid.UUID  `json:"case_id" gorm:"type:uuid;not null;index"`
	SuggestedTitle       string     `json:"suggested_title" gorm:"type:varchar(500);not null"`
	SuggestedDescription *string    `json:"suggested_description,omitempty" gorm:"type:text"`
	SuggestedPriority    string     `json:"suggested_priority" gorm:"type:varchar(20);default:'medium'"`
	SuggestedDueDate     *string    `json:"suggested_due_date,omitempty" gorm:"type:varchar(255)"`
	SuggestedAssigneeID  *uuid.UUID `json:"suggested_assignee_id,omitempty" gorm:"type:uuid"`
	Confidence           float64    `json:"confidence" gorm:"default:0"`
	CreatedAt            time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (TaskInsight) TableName() string {
	return "task_insights"
}
