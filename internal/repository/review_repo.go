package repository

import (
	"taraas/internal/models"

	"gorm.io/gorm"
)

// ReviewStats is the review-derived half of a provider's trust metrics.
type ReviewStats struct {
	ProviderID    uint
	ReviewCount   int64
	AverageRating float64
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) ListByProvider(providerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("provider_id = ?", providerID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ListByCustomer(customerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// StatsByProviderIDs batch-computes review count and average rating per
// provider. Providers with no reviews are absent from the map; callers treat
// them as count 0, average 0.
func (r *ReviewRepository) StatsByProviderIDs(providerIDs []uint) (map[uint]ReviewStats, error) {
	stats := make(map[uint]ReviewStats, len(providerIDs))
	if len(providerIDs) == 0 {
		return stats, nil
	}
	var rows []ReviewStats
	err := r.db.Model(&models.Review{}).
		Select("provider_id, COUNT(*) AS review_count, AVG(rating) AS average_rating").
		Where("provider_id IN ?", providerIDs).
		Group("provider_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats[row.ProviderID] = row
	}
	return stats, nil
}
