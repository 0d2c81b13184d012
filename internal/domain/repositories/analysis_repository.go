package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// AnalysisRepository persists the fan-out rows of one analysis run
type AnalysisRepository interface {
	// ReplaceFanOut atomically deletes all action items, decisions, topics and
	// task insights for a recording and inserts the given rows. Reprocessing a
	// recording therefore never accumulates duplicate rows.
	ReplaceFanOut(ctx context.Context, recordingID uuid.UUID, actionItems []*entities.ActionItem, decisions []*entities.Decision, topics []*entities.Topic, insights []*entities.TaskInsight) error

	// FindActionItems retrieves all action items of a recording
	FindActionItems(ctx context.Context, recordingID uuid.UUID) ([]*entities.ActionItem, error)

	// FindActionItemByID retrieves a single action item
	FindActionItemByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)

	// UpdateActionItem updates an existing action item
	UpdateActionItem(ctx context.Context, item *entities.ActionItem) error

	// FindDecisions retrieves all decisions of a recording
	FindDecisions(ctx context.Context, recordingID uuid.UUID) ([]*entities.Decision, error)

	// FindTopics retrieves all topics of a recording
	FindTopics(ctx context.Context, recordingID uuid.UUID) ([]*entities.Topic, error)

	// FindTaskInsights retrieves all task insights of a recording
	FindTaskInsights(ctx context.Context, recordingID uuid.UUID) ([]*entities.TaskInsight, error)

	// CountActionItems returns the total action items across an organization's recordings
	CountActionItems(ctx context.Context, organizationID uuid.UUID) (int64, error)

	// CountDecisions returns the total decisions across an organization's recordings
	CountDecisions(ctx context.Context, organizationID uuid.UUID) (int64, error)
}
