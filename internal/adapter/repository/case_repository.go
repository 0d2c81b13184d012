package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/callcaps/callcaps-server/internal/domain/entities"
)

// CaseRepository handles legal case data operations
type CaseRepository struct {
	db *gorm.DB
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// FindByID retrieves a case by ID
func (r *CaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.LegalCase, error) {
	var legalCase entities.LegalCase
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&legalCase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &legalCase, nil
}

// FindByCaseNumber retrieves a case by case number within an organization
func (r *CaseRepository) FindByCaseNumber(ctx context.Context, organizationID uuid.UUID, caseNumber string) (*entities.LegalCase, error) {
	var legalCase entities.LegalCase
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND case_number = ?", organizationID, caseNumber).
		First(&legalCase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &legalCase, nil
}
