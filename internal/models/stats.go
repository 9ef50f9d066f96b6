package models

// Stats holds the dashboard aggregates derived from the canonical item
// list. Stats are recomputed on every change, never stored.
type Stats struct {
	// TotalItems is the count of all tracked items.
	TotalItems int

	// LowStockCount / LowStockItems cover items with Quantity <= Threshold.
	LowStockCount int
	LowStockItems []Item

	// HealthyCount is TotalItems minus LowStockCount.
	HealthyCount int

	// ExpiringCount covers items whose expiry date falls within seven days
	// of the reference day (already-expired items included).
	ExpiringCount int
}
