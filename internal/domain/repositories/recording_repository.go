package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// RecordingRepository defines the interface for recording data access
type RecordingRepository interface {
	// Create creates a new recording
	Create(ctx context.Context, recording *entities.Recording) error

	// FindByID retrieves a recording by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Recording, error)

	// Update updates an existing recording
	Update(ctx context.Context, recording *entities.Recording) error

	// List retrieves recordings with filters and pagination
	List(ctx context.Context, filters RecordingFilters) ([]*entities.Recording, int64, error)

	// CountByStatus returns recording counts grouped by status for an organization
	CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[entities.RecordingStatus]int64, error)
}

// RecordingFilters represents filter options for listing recordings
type RecordingFilters struct {
	OrganizationID uuid.UUID
	MemberID       *uuid.UUID
	Status         *entities.RecordingStatus
	MeetingTypeID  *uuid.UUID
	Search         string // Search in title
	StartDate      *time.Time
	EndDate        *time.Time
	Limit          int
	Offset         int
}
