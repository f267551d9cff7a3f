package repository

import (
	"strings"

	"taraas/internal/models"
	"taraas/pkg/location"

	"gorm.io/gorm"
)

// Candidate is a provider surviving the initial geo/text filter, before
// scoring. DistanceMeters is only meaningful when HasDistance is true.
type Candidate struct {
	Provider       models.Provider
	DistanceMeters float64
	HasDistance    bool
}

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) Create(p *models.Provider) error {
	return r.db.Create(p).Error
}

func (r *ProviderRepository) GetByID(id uint) (*models.Provider, error) {
	var p models.Provider
	err := r.db.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepository) Update(p *models.Provider) error {
	return r.db.Save(p).Error
}

func (r *ProviderRepository) List() ([]models.Provider, error) {
	var providers []models.Provider
	err := r.db.Find(&providers).Error
	return providers, err
}

// ListIDs returns every provider id, for batch jobs that iterate all providers.
func (r *ProviderRepository) ListIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Provider{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

// FindNearby returns providers with delivery type LOCAL or HYBRID within
// radiusMeters of the given point, optionally filtered by service category
// and city. Uses a bounding-box prefilter in SQL and exact Haversine in the
// application layer; distance is retained per candidate for scoring.
func (r *ProviderRepository) FindNearby(lat, lon, radiusMeters float64, service, city string) ([]Candidate, error) {
	delta := location.DegreeDelta(radiusMeters)
	latMin, latMax := lat-delta, lat+delta
	lonMin, lonMax := lon-delta, lon+delta

	query := r.db.
		Where("delivery_type IN ?", []string{"LOCAL", "HYBRID"}).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?", latMin, latMax, lonMin, lonMax)
	query = applyTextFilters(query, service, city)

	var rows []models.Provider
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(rows))
	for _, p := range rows {
		dist := location.HaversineMeters(lat, lon, *p.Latitude, *p.Longitude)
		if dist > radiusMeters {
			continue
		}
		candidates = append(candidates, Candidate{Provider: p, DistanceMeters: dist, HasDistance: true})
	}
	return candidates, nil
}

// FindByText returns providers matching delivery types and the optional
// service/city text filters. No distance is computed.
func (r *ProviderRepository) FindByText(deliveryTypes []string, service, city string) ([]Candidate, error) {
	query := r.db.Where("delivery_type IN ?", deliveryTypes)
	query = applyTextFilters(query, service, city)

	var rows []models.Provider
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	candidates := make([]Candidate, 0, len(rows))
	for _, p := range rows {
		candidates = append(candidates, Candidate{Provider: p})
	}
	return candidates, nil
}

// applyTextFilters adds case-insensitive substring matches; blank values act
// as wildcards.
func applyTextFilters(query *gorm.DB, service, city string) *gorm.DB {
	if s := strings.TrimSpace(service); s != "" {
		query = query.Where("LOWER(service_category) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if c := strings.TrimSpace(city); c != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(c)+"%")
	}
	return query
}
