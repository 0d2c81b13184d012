package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// MemberRepository handles organization member data operations
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// FindActiveByName retrieves all active members matching a full name
func (r *MemberRepository) FindActiveByName(ctx context.Context, organizationID uuid.UUID, fullName string) ([]*entities.OrganizationMember, error) {
	var members []*entities.OrganizationMember
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = true AND LOWER(full_name) = LOWER(?)", organizationID, fullName).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// FindByID retrieves a member by ID
func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.OrganizationMember, error) {
	var member entities.OrganizationMember
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}
