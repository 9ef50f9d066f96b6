// Package calculator is the pure derivation layer: dashboard statistics and
// filtered/grouped views computed from the canonical item list. Nothing here
// has side effects; the same inputs always derive the same outputs.
package calculator

import (
	"time"

	"github.com/wellhouse/stockroom/internal/models"
)

// ExpiryWindowDays is the lookahead for the "expiring soon" bucket.
const ExpiryWindowDays = 7

// ComputeStats derives the dashboard aggregates from the item list.
// today anchors the expiring-soon window.
func ComputeStats(items []models.Item, today time.Time) models.Stats {
	stats := models.Stats{TotalItems: len(items)}

	for _, item := range items {
		if item.LowStock() {
			stats.LowStockCount++
			stats.LowStockItems = append(stats.LowStockItems, item)
		}
		if Expiring(item, today) {
			stats.ExpiringCount++
		}
	}

	stats.HealthyCount = stats.TotalItems - stats.LowStockCount
	return stats
}

// Expiring reports whether the item's expiry date falls within
// ExpiryWindowDays of today-at-midnight. The day difference is signed, so an
// already-expired item still counts as expiring. Items without an expiry
// date, or with one that does not parse, are never expiring.
func Expiring(item models.Item, today time.Time) bool {
	if item.ExpiryDate == "" {
		return false
	}
	exp, err := time.ParseInLocation(models.DateFormat, item.ExpiryDate, today.Location())
	if err != nil {
		return false
	}
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	diffDays := exp.Sub(midnight).Hours() / 24
	return diffDays <= ExpiryWindowDays
}
