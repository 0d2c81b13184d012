package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// QueueRepository handles processing queue data operations
type QueueRepository struct {
	db *gorm.DB
}

// NewQueueRepository creates a new queue repository
func NewQueueRepository(db *gorm.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

// Create creates a new queue entry
func (r *QueueRepository) Create(ctx context.Context, entry *entities.ProcessingQueueEntry) error {
	if entry == nil {
		return errors.New("queue entry cannot be nil")
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindPendingByRecording retrieves the most recent non-terminal entry for a
// (recording, task) pair
func (r *QueueRepository) FindPendingByRecording(ctx context.Context, recordingID uuid.UUID, task entities.ProcessingTask) (*entities.ProcessingQueueEntry, error) {
	var entry entities.ProcessingQueueEntry
	if err := r.db.WithContext(ctx).
		Where("recording_id = ? AND task = ? AND status IN ?", recordingID, task,
			[]entities.QueueStatus{entities.QueueStatusPending, entities.QueueStatusProcessing}).
		Order("created_at DESC").
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Update updates a queue entry
func (r *QueueRepository) Update(ctx context.Context, entry *entities.ProcessingQueueEntry) error {
	if entry == nil {
		return errors.New("queue entry cannot be nil")
	}
	return r.db.WithContext(ctx).Save(entry).Error
}
