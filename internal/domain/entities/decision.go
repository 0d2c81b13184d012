package entities

import (
	"time"

	"github.com/google/uuid"
)

// DecisionImpact constants
const (
	DecisionImpactLow    = "low"
	DecisionImpactMedium = "medium"
	DecisionImpactHigh   = "high"
)

// Decision is a decision extracted from a recording's analysis
type Decision struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RecordingID        uuid.UUID `json:"recording_id" gorm:"type:uuid;not null;index"`
	Decision           string    `json:"decision" gorm:"type:text;not null"`
	DecisionMaker      *string   `json:"decision_maker,omitempty" gorm:"type:varchar(255)"`
	Context            *string   `json:"context,omitempty" gorm:"type:text"`
	Impact             string    `json:"impact" gorm:"type:varchar(20);default:'medium'"`
	ImplementationDate *string   `json:"implementation_date,omitempty" gorm:"type:varchar(255)"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Decision) TableName() string {
	return "recording_decisions"
}
