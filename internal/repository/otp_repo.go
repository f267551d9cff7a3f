package repository

import (
	"taraas/internal/models"

	"gorm.io/gorm"
)

type OtpRepository struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) *OtpRepository {
	return &OtpRepository{db: db}
}

func (r *OtpRepository) FindByEmail(email string) (*models.OtpRecord, error) {
	var rec models.OtpRecord
	err := r.db.Where("email = ?", email).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save upserts the record; each email keeps exactly one live record.
func (r *OtpRepository) Save(rec *models.OtpRecord) error {
	return r.db.Save(rec).Error
}

func (r *OtpRepository) DeleteByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&models.OtpRecord{}).Error
}
