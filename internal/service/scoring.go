package service

import (
	"math"

	"taraas/config"
)

// RemoteScore weighs global trust: ratings dominate, order volume is capped.
func RemoteScore(averageRating float64, completedOrders int64) float64 {
	return averageRating*8 + math.Min(float64(completedOrders)*0.3, 30) + 20
}

// NearbyScore adds a proximity bonus on top of trust. Candidates without a
// computed distance (text fallback) get the far bonus.
func NearbyScore(averageRating float64, completedOrders int64, distanceMeters float64, hasDistance bool, cfg config.SearchConfig) float64 {
	bonus := cfg.ProximityBonusFar
	if hasDistance && distanceMeters < cfg.NearBonusMeters {
		bonus = cfg.ProximityBonusNear
	}
	return averageRating*6 + math.Min(float64(completedOrders)*0.2, 20) + bonus + 20
}
