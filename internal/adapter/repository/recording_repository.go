package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
	"github.com/callcaps/callcaps-server/internal/domain/repositories"
)

// RecordingRepository handles recording data operations
type RecordingRepository struct {
	db *gorm.DB
}

// NewRecordingRepository creates a new recording repository
func NewRecordingRepository(db *gorm.DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

// Create creates a new recording
func (r *RecordingRepository) Create(ctx context.Context, recording *entities.Recording) error {
	if recording == nil {
		return errors.New("recording cannot be nil")
	}
	return r.db.WithContext(ctx).Create(recording).Error
}

// FindByID retrieves a recording by ID
func (r *RecordingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Recording, error) {
	var recording entities.Recording
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recording).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recording, nil
}

// Update updates a recording
func (r *RecordingRepository) Update(ctx context.Context, recording *entities.Recording) error {
	if recording == nil {
		return errors.New("recording cannot be nil")
	}
	return r.db.WithContext(ctx).Save(recording).Error
}

// List retrieves recordings with filters and pagination
func (r *RecordingRepository) List(ctx context.Context, filters repositories.RecordingFilters) ([]*entities.Recording, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entities.Recording{}).
		Where("organization_id = ?", filters.OrganizationID)

	if filters.MemberID != nil {
		query = query.Where("member_id = ?", *filters.MemberID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.MeetingTypeID != nil {
		query = query.Where("meeting_type_id = ?", *filters.MeetingTypeID)
	}
	if filters.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filters.Search+"%")
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at <= ?", *filters.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filters.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var recordings []*entities.Recording
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(filters.Offset).
		Find(&recordings).Error; err != nil {
		return nil, 0, err
	}
	return recordings, total, nil
}

// CountByStatus returns recording counts grouped by status for an organization
func (r *RecordingRepository) CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[entities.RecordingStatus]int64, error) {
	type row struct {
		Status entities.RecordingStatus
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&entities.Recording{}).
		Select("status, count(*) as count").
		Where("organization_id = ?", organizationID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[entities.RecordingStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
