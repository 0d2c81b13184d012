package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// AnalysisRepository handles the fan-out rows of analysis runs
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// ReplaceFanOut atomically replaces all fan-out rows of a recording. The
// delete-then-insert runs in one transaction so a crash mid-write cannot
// leave the recording with partial analysis rows.
func (r *AnalysisRepository) ReplaceFanOut(ctx context.Context, recordingID uuid.UUID, actionItems []*entities.ActionItem, decisions []*entities.Decision, topics []*entities.Topic, insights []*entities.TaskInsight) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recording_id = ?", recordingID).Delete(&entities.TaskInsight{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recording_id = ?", recordingID).Delete(&entities.ActionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recording_id = ?", recordingID).Delete(&entities.Decision{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recording_id = ?", recordingID).Delete(&entities.Topic{}).Error; err != nil {
			return err
		}

		if len(actionItems) > 0 {
			if err := tx.Create(actionItems).Error; err != nil {
				return err
			}
		}
		if len(decisions) > 0 {
			if err := tx.Create(decisions).Error; err != nil {
				return err
			}
		}
		if len(topics) > 0 {
			if err := tx.Create(topics).Error; err != nil {
				return err
			}
		}
		if len(insights) > 0 {
			if err := tx.Create(insights).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindActionItems retrieves all action items of a recording
func (r *AnalysisRepository) FindActionItems(ctx context.Context, recordingID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	if err := r.db.WithContext(ctx).
		Where("recording_id = ?", recordingID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindActionItemByID retrieves a single action item
func (r *AnalysisRepository) FindActionItemByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	var item entities.ActionItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// UpdateActionItem updates an existing action item
func (r *AnalysisRepository) UpdateActionItem(ctx context.Context, item *entities.ActionItem) error {
	if item == nil {
		return errors.New("action item cannot be nil")
	}
	return r.db.WithContext(ctx).Save(item).Error
}

// FindDecisions retrieves all decisions of a recording
func (r *AnalysisRepository) FindDecisions(ctx context.Context, recordingID uuid.UUID) ([]*entities.Decision, error) {
	var decisions []*entities.Decision
	if err := r.db.WithContext(ctx).
		Where("recording_id = ?", recordingID).
		Order("created_at ASC").
		Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

// FindTopics retrieves all topics of a recording
func (r *AnalysisRepository) FindTopics(ctx context.Context, recordingID uuid.UUID) ([]*entities.Topic, error) {
	var topics []*entities.Topic
	if err := r.db.WithContext(ctx).
		Where("recording_id = ?", recordingID).
		Order("importance DESC").
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// FindTaskInsights retrieves all task insights of a recording
func (r *AnalysisRepository) FindTaskInsights(ctx context.Context, recordingID uuid.UUID) ([]*entities.TaskInsight, error) {
	var insights []*entities.TaskInsight
	if err := r.db.WithContext(ctx).
		Where("recording_id = ?", recordingID).
		Order("created_at ASC").
		Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

// CountActionItems returns the total action items across an organization's recordings
func (r *AnalysisRepository) CountActionItems(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Joins("JOIN call_recordings ON call_recordings.id = recording_action_items.recording_id").
		Where("call_recordings.organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}

// CountDecisions returns the total decisions across an organization's recordings
func (r *AnalysisRepository) CountDecisions(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Decision{}).
		Joins("JOIN call_recordings ON call_recordings.id = recording_decisions.recording_id").
		Where("call_recordings.organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}
