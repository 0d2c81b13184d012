package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// CaseRepository defines the interface for legal case data access
type CaseRepository interface {
	// FindByID retrieves a case by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.LegalCase, error)

	// FindByCaseNumber retrieves a case by its case number within an organization
	FindByCaseNumber(ctx context.Context, organizationID uuid.UUID, caseNumber string) (*entities.LegalCase, error)
}
