package entities

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantRole constants
const (
	ParticipantRoleHost        = "host"
	ParticipantRoleParticipant = "participant"
	ParticipantRolePresenter   = "presenter"
	ParticipantRoleObserver    = "observer"
)

// Participant is derived from transcript segments: one row per distinct
// speaker label. Rows are recomputed from segments on every transcription
// run, never incrementally updated.
type Participant struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RecordingID uuid.UUID `json:"recording_id" gorm:"type:uuid;not null;index"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(255);not null"`
	Role        string    `json:"role" gorm:"type:varchar(20);default:'participant'"`
	TalkTime    float64   `json:"talk_time" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Participant) TableName() string {
	return "recording_participants"
}
