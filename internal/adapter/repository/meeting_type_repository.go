package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// MeetingTypeRepository handles meeting type data operations
type MeetingTypeRepository struct {
	db *gorm.DB
}

// NewMeetingTypeRepository creates a new meeting type repository
func NewMeetingTypeRepository(db *gorm.DB) *MeetingTypeRepository {
	return &MeetingTypeRepository{db: db}
}

// Create creates a new meeting type
func (r *MeetingTypeRepository) Create(ctx context.Context, meetingType *entities.MeetingType) error {
	if meetingType == nil {
		return errors.New("meeting type cannot be nil")
	}
	return r.db.WithContext(ctx).Create(meetingType).Error
}

// FindByID retrieves a meeting type by ID
func (r *MeetingTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingType, error) {
	var meetingType entities.MeetingType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meetingType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meetingType, nil
}

// FindByName retrieves an active meeting type by name for a member
func (r *MeetingTypeRepository) FindByName(ctx context.Context, memberID uuid.UUID, name string) (*entities.MeetingType, error) {
	var meetingType entities.MeetingType
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND name = ? AND is_active = true", memberID, name).
		First(&meetingType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meetingType, nil
}

// ListByMember retrieves all active meeting types owned by a member
func (r *MeetingTypeRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*entities.MeetingType, error) {
	var meetingTypes []*entities.MeetingType
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND is_active = true", memberID).
		Order("name ASC").
		Find(&meetingTypes).Error; err != nil {
		return nil, err
	}
	return meetingTypes, nil
}

// Update updates a meeting type
func (r *MeetingTypeRepository) Update(ctx context.Context, meetingType *entities.MeetingType) error {
	if meetingType == nil {
		return errors.New("meeting type cannot be nil")
	}
	return r.db.WithContext(ctx).Save(meetingType).Error
}

// Deactivate soft-deletes a meeting type
func (r *MeetingTypeRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.MeetingType{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
