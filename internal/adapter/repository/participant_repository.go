package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// ParticipantRepository handles participant data operations
type ParticipantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// ReplaceForRecording deletes all participants of a recording and inserts the
// given rows in one transaction. Delete-and-reinsert keeps reruns idempotent.
func (r *ParticipantRepository) ReplaceForRecording(ctx context.Context, recordingID uuid.UUID, participants []*entities.Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recording_id = ?", recordingID).Delete(&entities.Participant{}).Error; err != nil {
			return err
		}
		if len(participants) == 0 {
			return nil
		}
		return tx.Create(participants).Error
	})
}

// FindByRecording retrieves all participants of a recording
func (r *ParticipantRepository) FindByRecording(ctx context.Context, recordingID uuid.UUID) ([]*entities.Participant, error) {
	var participants []*entities.Participant
	if err := r.db.WithContext(ctx).
		Where("recording_id = ?", recordingID).
		Order("talk_time DESC").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}
