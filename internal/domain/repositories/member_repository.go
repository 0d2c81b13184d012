package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// MemberRepository defines the interface for organization member data access
type MemberRepository interface {
	// FindActiveByName retrieves all active members of an organization whose
	// full name matches (case-insensitive). Callers decide what multiple
	// matches mean.
	FindActiveByName(ctx context.Context, organizationID uuid.UUID, fullName string) ([]*entities.OrganizationMember, error)

	// FindByID retrieves a member by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.OrganizationMember, error)
}
