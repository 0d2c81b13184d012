package entities

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a discussion topic extracted from a recording's analysis.
// Importance is a 0-1 score; Speakers holds the speaker labels who
// discussed the topic.
type Topic struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RecordingID uuid.UUID `json:"recording_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"type:varchar(500);not null"`
	Importance  float64   `json:"importance" gorm:"default:0"`
	Speakers    []string  `json:"speakers,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Topic) TableName() string {
	return "recording_topics"
}
