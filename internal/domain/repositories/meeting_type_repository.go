package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// MeetingTypeRepository defines the interface for meeting type data access
type MeetingTypeRepository interface {
	// Create creates a new meeting type
	Create(ctx context.Context, meetingType *entities.MeetingType) error

	// FindByID retrieves a meeting type by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingType, error)

	// FindByName retrieves an active meeting type by name for a member
	FindByName(ctx context.Context, memberID uuid.UUID, name string) (*entities.MeetingType, error)

	// ListByMember retrieves all active meeting types owned by a member
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*entities.MeetingType, error)

	// Update updates an existing meeting type
	Update(ctx context.Context, meetingType *entities.MeetingType) error

	// Deactivate soft-deletes a meeting type
	Deactivate(ctx context.Context, id uuid.UUID) error
}
