package repository

import (
	"taraas/internal/models"

	"gorm.io/gorm"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Save(o *models.Offer) error {
	return r.db.Save(o).Error
}

func (r *OfferRepository) GetByID(id uint) (*models.Offer, error) {
	var o models.Offer
	err := r.db.First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepository) ListByProvider(providerID uint) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.Where("provider_id = ?", providerID).Order("created_at DESC").Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) ListActiveByProvider(providerID uint) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.Where("provider_id = ? AND is_active = ?", providerID, true).Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) ListActive() ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.Where("is_active = ?", true).Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) Delete(id uint) error {
	return r.db.Delete(&models.Offer{}, id).Error
}
