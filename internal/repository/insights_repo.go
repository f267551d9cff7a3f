package repository

import (
	"time"

	"taraas/internal/models"

	"gorm.io/gorm"
)

// InsightsRepository persists profile views and lead events and serves the
// range queries behind the provider insights dashboard.
type InsightsRepository struct {
	db *gorm.DB
}

func NewInsightsRepository(db *gorm.DB) *InsightsRepository {
	return &InsightsRepository{db: db}
}

func (r *InsightsRepository) RecordView(v *models.ProfileView) error {
	return r.db.Create(v).Error
}

func (r *InsightsRepository) RecordLead(l *models.LeadEvent) error {
	return r.db.Create(l).Error
}

// HasRecentLead reports whether the same customer already contacted the
// provider through the same method after the cutoff. Used to deduplicate lead
// events.
func (r *InsightsRepository) HasRecentLead(providerID, customerID uint, method string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.LeadEvent{}).
		Where("provider_id = ? AND customer_id = ? AND contact_method = ? AND timestamp > ?",
			providerID, customerID, method, since).
		Count(&count).Error
	return count > 0, err
}

func (r *InsightsRepository) ViewsInRange(providerID uint, start, end time.Time) ([]models.ProfileView, error) {
	var views []models.ProfileView
	err := r.db.
		Where("provider_id = ? AND timestamp >= ? AND timestamp < ?", providerID, start, end).
		Find(&views).Error
	return views, err
}

func (r *InsightsRepository) LeadsInRange(providerID uint, start, end time.Time) ([]models.LeadEvent, error) {
	var leads []models.LeadEvent
	err := r.db.
		Where("provider_id = ? AND timestamp >= ? AND timestamp < ?", providerID, start, end).
		Order("timestamp DESC").
		Find(&leads).Error
	return leads, err
}
