package service

import (
	"sort"
	"strings"

	"taraas/config"
	"taraas/internal/domain"
	"taraas/internal/models"
	"taraas/internal/repository"

	"go.uber.org/zap"
)

// SearchParams is one provider search query. Lat/Lon are optional; a NEARBY
// query without both coordinates falls back to text matching.
type SearchParams struct {
	Service string
	City    string
	Lat     *float64
	Lon     *float64
	Mode    string // NEARBY | REMOTE
}

// ScoredProvider is a ranked search result: the provider's public fields plus
// its trust metrics. Raw reviews and transactions are never exposed here.
type ScoredProvider struct {
	models.Provider
	ReviewCount     int64    `json:"review_count"`
	AverageRating   float64  `json:"average_rating"`
	CompletedOrders int64    `json:"completed_orders"`
	Score           float64  `json:"score"`
	DistanceMeters  *float64 `json:"distance_meters,omitempty"`
}

// SearchService ranks providers by fusing geo proximity, category text
// matching, and trust signals computed from reviews and completed orders.
type SearchService struct {
	providers    *repository.ProviderRepository
	reviews      *repository.ReviewRepository
	transactions *repository.TransactionRepository
	cfg          config.SearchConfig
	log          *zap.Logger
}

func NewSearchService(
	providers *repository.ProviderRepository,
	reviews *repository.ReviewRepository,
	transactions *repository.TransactionRepository,
	cfg config.SearchConfig,
	log *zap.Logger,
) *SearchService {
	return &SearchService{
		providers:    providers,
		reviews:      reviews,
		transactions: transactions,
		cfg:          cfg,
		log:          log.Named("search"),
	}
}

// Rank runs the full pipeline: candidate filter, trust metrics join, scoring,
// sort. An empty candidate set yields an empty slice, not an error.
func (s *SearchService) Rank(params SearchParams) ([]ScoredProvider, error) {
	isRemote := strings.EqualFold(params.Mode, domain.ModeRemote)

	candidates, err := s.selectCandidates(params, isRemote)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []ScoredProvider{}, nil
	}

	ids := make([]uint, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Provider.ID
	}
	reviewStats, err := s.reviews.StatsByProviderIDs(ids)
	if err != nil {
		return nil, err
	}
	orderCounts, err := s.transactions.CountCompletedByProviderIDs(ids)
	if err != nil {
		return nil, err
	}

	results := make([]ScoredProvider, 0, len(candidates))
	for _, c := range candidates {
		stats := reviewStats[c.Provider.ID] // zero value: no reviews, rating 0
		orders := orderCounts[c.Provider.ID]

		var score float64
		if isRemote {
			score = RemoteScore(stats.AverageRating, orders)
		} else {
			score = NearbyScore(stats.AverageRating, orders, c.DistanceMeters, c.HasDistance, s.cfg)
		}

		r := ScoredProvider{
			Provider:        c.Provider,
			ReviewCount:     stats.ReviewCount,
			AverageRating:   stats.AverageRating,
			CompletedOrders: orders,
			Score:           score,
		}
		if c.HasDistance {
			d := c.DistanceMeters
			r.DistanceMeters = &d
		}
		results = append(results, r)
	}

	// Descending by score; stable keeps candidate order on ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	s.log.Debug("search ranked",
		zap.String("mode", params.Mode),
		zap.String("service", params.Service),
		zap.Int("results", len(results)),
	)
	return results, nil
}

func (s *SearchService) selectCandidates(params SearchParams, isRemote bool) ([]repository.Candidate, error) {
	if !isRemote && params.Lat != nil && params.Lon != nil {
		return s.providers.FindNearby(*params.Lat, *params.Lon, s.cfg.RadiusMeters, params.Service, params.City)
	}
	if isRemote {
		// Remote mode matches category only; city is irrelevant for virtual work.
		return s.providers.FindByText([]string{domain.DeliveryRemote, domain.DeliveryHybrid}, params.Service, "")
	}
	// NEARBY without usable coordinates: text fallback against city and category.
	return s.providers.FindByText([]string{domain.DeliveryLocal, domain.DeliveryHybrid}, params.Service, params.City)
}
