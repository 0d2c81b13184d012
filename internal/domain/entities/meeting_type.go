package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingTypeOutputFormat values accepted for a meeting type's custom prompt
const (
	MeetingTypeOutputJSON     = "json"
	MeetingTypeOutputMarkdown = "markdown"
	MeetingTypeOutputText     = "text"
)

// MeetingType is a named, member-scoped analysis template. When a recording
// references one with a custom system prompt, analysis uses it instead of the
// default prompt. Name is unique per owning member; delete is a soft
// is_active flip.
type MeetingType struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	MemberID       uuid.UUID `json:"member_id" gorm:"type:uuid;not null;index"`
	Name           string    `json:"name" gorm:"type:varchar(100);not null"`
	DisplayName    string    `json:"display_name" gorm:"type:varchar(255)"`
	SystemPrompt   *string   `json:"system_prompt,omitempty" gorm:"type:text"`
	OutputFormat   string    `json:"output_format" gorm:"type:varchar(20);default:'json'"`
	IsActive       bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MeetingType) TableName() string {
	return "meeting_types"
}

// Deactivate soft-deletes the meeting type
func (m *MeetingType) Deactivate() {
	m.IsActive = false
}
