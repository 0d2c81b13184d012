package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// QueueRepository defines the interface for processing queue data access
type QueueRepository interface {
	// Create creates a new queue entry
	Create(ctx context.Context, entry *entities.ProcessingQueueEntry) error

	// FindPendingByRecording retrieves the most recent non-terminal entry for
	// a (recording, task) pair
	FindPendingByRecording(ctx context.Context, recordingID uuid.UUID, task entities.ProcessingTask) (*entities.ProcessingQueueEntry, error)

	// Update updates an existing queue entry
	Update(ctx context.Context, entry *entities.ProcessingQueueEntry) error
}
