package repository

import (
	"taraas/internal/models"

	"gorm.io/gorm"
)

type StatementRepository struct {
	db *gorm.DB
}

func NewStatementRepository(db *gorm.DB) *StatementRepository {
	return &StatementRepository{db: db}
}

func (r *StatementRepository) Create(s *models.Statement) error {
	return r.db.Create(s).Error
}

func (r *StatementRepository) GetByID(id uint) (*models.Statement, error) {
	var s models.Statement
	err := r.db.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StatementRepository) Update(s *models.Statement) error {
	return r.db.Save(s).Error
}

func (r *StatementRepository) ListByProvider(providerID uint) ([]models.Statement, error) {
	var statements []models.Statement
	err := r.db.Where("provider_id = ?", providerID).Order("billing_month DESC").Find(&statements).Error
	return statements, err
}

// ExistsForProviderMonth is the settlement idempotency guard.
func (r *StatementRepository) ExistsForProviderMonth(providerID uint, billingMonth string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Statement{}).
		Where("provider_id = ? AND billing_month = ?", providerID, billingMonth).
		Count(&count).Error
	return count > 0, err
}
