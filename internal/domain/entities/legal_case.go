package entities

import (
	"time"

	"github.com/google/uuid"
)

// LegalCaseStatus constants
const (
	LegalCaseStatusOpen     = "open"
	LegalCaseStatusPending  = "pending"
	LegalCaseStatusClosed   = "closed"
	LegalCaseStatusArchived = "archived"
)

// LegalCase is a case/matter a recording can belong to. Recordings carrying a
// case reference produce task insights with case provenance.
type LegalCase struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	CaseNumber     string    `json:"case_number" gorm:"type:varchar(100);not null"`
	Title          string    `json:"title" gorm:"type:varchar(500);not null"`
	ClientName     *string   `json:"client_name,omitempty" gorm:"type:varchar(255)"`
	Status         string    `json:"status" gorm:"type:varchar(20);default:'open';index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (LegalCase) TableName() string {
	return "legal_cases"
}
