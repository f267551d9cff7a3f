package service

import (
	"fmt"
	"testing"

	"taraas/internal/domain"
	"taraas/internal/models"
	"taraas/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Bangalore city centre, used as the search origin throughout.
const (
	originLat = 12.97
	originLon = 77.59
)

func ptr(f float64) *float64 { return &f }

type searchFixture struct {
	svc      *SearchService
	db       *gorm.DB
	customer models.Customer
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()
	db := newTestDB(t)
	svc := NewSearchService(
		repository.NewProviderRepository(db),
		repository.NewReviewRepository(db),
		repository.NewTransactionRepository(db),
		testSearchCfg,
		zap.NewNop(),
	)
	customer := models.Customer{Name: "Asha", Email: "asha@example.com", Role: domain.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)
	return &searchFixture{svc: svc, db: db, customer: customer}
}

func (f *searchFixture) addProvider(t *testing.T, p models.Provider) models.Provider {
	t.Helper()
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *searchFixture) addReviews(t *testing.T, providerID uint, ratings ...int) {
	t.Helper()
	for _, rating := range ratings {
		require.NoError(t, f.db.Create(&models.Review{
			ProviderID: providerID,
			CustomerID: f.customer.ID,
			Rating:     rating,
		}).Error)
	}
}

func (f *searchFixture) addCompletedOrders(t *testing.T, providerID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.db.Create(&models.Transaction{
			Reference:  fmt.Sprintf("ref-%d-%d", providerID, i),
			ProviderID: providerID,
			CustomerID: f.customer.ID,
			Amount:     100,
			Status:     domain.TxCompleted,
		}).Error)
	}
}

func TestRankNearbyWithCoordinates(t *testing.T) {
	f := newSearchFixture(t)

	// At the origin: rating 4.0 over two reviews, 50 completed orders.
	near := f.addProvider(t, models.Provider{
		Name: "Near Plumber", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryLocal,
		City: "Bangalore", Latitude: ptr(originLat), Longitude: ptr(originLon),
	})
	f.addReviews(t, near.ID, 4, 4)
	f.addCompletedOrders(t, near.ID, 50)

	// ~10 km north: rating 5.0, no completed orders.
	far := f.addProvider(t, models.Provider{
		Name: "Far Plumber", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryLocal,
		City: "Bangalore", Latitude: ptr(originLat + 0.09), Longitude: ptr(originLon),
	})
	f.addReviews(t, far.ID, 5)

	// Inside the bounding box but beyond the radius once measured exactly.
	f.addProvider(t, models.Provider{
		Name: "Corner Plumber", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryLocal,
		City: "Bangalore", Latitude: ptr(originLat + 0.44), Longitude: ptr(originLon + 0.44),
	})

	// Wrong category at the origin.
	f.addProvider(t, models.Provider{
		Name: "Gardener", ServiceCategory: "gardening", DeliveryType: domain.DeliveryLocal,
		City: "Bangalore", Latitude: ptr(originLat), Longitude: ptr(originLon),
	})

	// No coordinates: unreachable via the geo path.
	f.addProvider(t, models.Provider{
		Name: "Unlocated Plumber", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryLocal,
		City: "Bangalore",
	})

	results, err := f.svc.Rank(SearchParams{
		Service: "plumbing", City: "Bangalore",
		Lat: ptr(originLat), Lon: ptr(originLon),
		Mode: domain.ModeNearby,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// near: 4.0*6 + min(50*0.2, 20) + 30 + 20
	assert.Equal(t, near.ID, results[0].ID)
	assert.InDelta(t, 84.0, results[0].Score, 0.0001)
	require.NotNil(t, results[0].DistanceMeters)
	assert.InDelta(t, 0, *results[0].DistanceMeters, 1)

	// far: 5.0*6 + 0 + 10 + 20
	assert.Equal(t, far.ID, results[1].ID)
	assert.InDelta(t, 60.0, results[1].Score, 0.0001)
	require.NotNil(t, results[1].DistanceMeters)
	assert.InDelta(t, 10000, *results[1].DistanceMeters, 50)
}

func TestRankNearbyTextFallback(t *testing.T) {
	f := newSearchFixture(t)

	located := f.addProvider(t, models.Provider{
		Name: "Located", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryLocal,
		City: "Bangalore", Latitude: ptr(originLat), Longitude: ptr(originLon),
	})
	unlocated := f.addProvider(t, models.Provider{
		Name: "Unlocated", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryHybrid,
		City: "Bangalore",
	})
	f.addProvider(t, models.Provider{
		Name: "Elsewhere", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryLocal,
		City: "Mumbai",
	})
	f.addProvider(t, models.Provider{
		Name: "Remote Only", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryRemote,
		City: "Bangalore",
	})
	f.addReviews(t, located.ID, 5)

	results, err := f.svc.Rank(SearchParams{
		Service: "plumbing", City: "Bangalore", Mode: domain.ModeNearby,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// With a rating, located outranks unlocated; neither carries a distance,
	// both get the far proximity bonus.
	assert.Equal(t, located.ID, results[0].ID)
	assert.InDelta(t, 60.0, results[0].Score, 0.0001)
	assert.Nil(t, results[0].DistanceMeters)

	assert.Equal(t, unlocated.ID, results[1].ID)
	assert.InDelta(t, 30.0, results[1].Score, 0.0001)
	assert.Nil(t, results[1].DistanceMeters)
}

func TestRankRemoteIgnoresCity(t *testing.T) {
	f := newSearchFixture(t)

	remote := f.addProvider(t, models.Provider{
		Name: "Remote Designer", ServiceCategory: "design", DeliveryType: domain.DeliveryRemote,
		City: "Delhi",
	})
	f.addReviews(t, remote.ID, 4)
	f.addProvider(t, models.Provider{
		Name: "Local Designer", ServiceCategory: "design", DeliveryType: domain.DeliveryLocal,
		City: "Bangalore",
	})

	results, err := f.svc.Rank(SearchParams{
		Service: "design", City: "Bangalore", Mode: domain.ModeRemote,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// 4.0*8 + 0 + 20; the city filter does not apply in remote mode.
	assert.Equal(t, remote.ID, results[0].ID)
	assert.InDelta(t, 52.0, results[0].Score, 0.0001)
	assert.Nil(t, results[0].DistanceMeters)
}

func TestRankNoMatchesReturnsEmptySlice(t *testing.T) {
	f := newSearchFixture(t)
	f.addProvider(t, models.Provider{
		Name: "Plumber", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryLocal,
		City: "Bangalore",
	})

	results, err := f.svc.Rank(SearchParams{Service: "astrology", Mode: domain.ModeNearby})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRankUnreviewedProviderScoresZeroAverage(t *testing.T) {
	f := newSearchFixture(t)
	p := f.addProvider(t, models.Provider{
		Name: "New Plumber", ServiceCategory: "plumbing", DeliveryType: domain.DeliveryLocal,
		City: "Bangalore", Latitude: ptr(originLat), Longitude: ptr(originLon),
	})

	results, err := f.svc.Rank(SearchParams{
		Service: "plumbing", Lat: ptr(originLat), Lon: ptr(originLon), Mode: domain.ModeNearby,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, p.ID, results[0].ID)
	assert.Zero(t, results[0].ReviewCount)
	assert.Zero(t, results[0].AverageRating)
	// 0 + 0 + 30 + 20: proximity and base only.
	assert.InDelta(t, 50.0, results[0].Score, 0.0001)
}
