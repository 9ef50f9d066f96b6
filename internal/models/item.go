package models

import (
	"time"

	"github.com/google/uuid"
)

// DateFormat is the format for calendar-date fields (ISO-8601, day granularity).
const DateFormat = "2006-01-02"

// Item represents one tracked unit of stock.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	// It is assigned at creation, never changes, and is the primary key
	// in both the local and the remote store.
	ID string `json:"id"`

	// Name is the display name, always a plain non-empty string.
	Name string `json:"name"`

	// Category is the display category, always a plain non-empty string.
	Category string `json:"category"`

	// Icon is an optional single-glyph visual marker; empty means none.
	Icon string `json:"icon,omitempty"`

	// Quantity is the current stock count. Never negative; decrements
	// clamp at zero.
	Quantity int `json:"quantity"`

	// Unit is the counting unit, e.g. "pcs" or "kg".
	Unit string `json:"unit"`

	// Threshold is the low-stock cutoff: the item is low stock whenever
	// Quantity <= Threshold.
	Threshold int `json:"threshold"`

	// PurchaseDate is an ISO calendar date (no time component).
	// Defaults to the day the item was created.
	PurchaseDate string `json:"purchaseDate"`

	// ExpiryDate is an optional ISO calendar date; empty means the item
	// does not expire or expiry is not tracked.
	ExpiryDate string `json:"expiryDate,omitempty"`

	// LastUpdated is refreshed on every mutation.
	LastUpdated time.Time `json:"lastUpdated"`
}

// LowStock reports whether the item is at or below its threshold.
func (i Item) LowStock() bool {
	return i.Quantity <= i.Threshold
}

// NewItem builds an Item from a draft, applying the coercion rules and
// defaults, assigning a fresh id and stamping LastUpdated.
func NewItem(d Draft, now time.Time) Item {
	item := Item{
		ID:           uuid.New().String(),
		Name:         EnsureString(d.Name, "Untitled"),
		Category:     EnsureString(d.Category, "General"),
		Icon:         EnsureString(d.Icon, ""),
		Quantity:     Count(d.Quantity),
		Unit:         EnsureString(d.Unit, "pcs"),
		Threshold:    Count(d.Threshold),
		PurchaseDate: d.PurchaseDate,
		ExpiryDate:   EnsureString(d.ExpiryDate, ""),
		LastUpdated:  now,
	}
	if item.PurchaseDate == "" {
		item.PurchaseDate = now.Format(DateFormat)
	}
	return item
}

// Apply merges the supplied draft fields over the item, re-applying the
// string coercion rules, and refreshes LastUpdated. Fields the draft leaves
// nil (or empty, for the purchase date) are untouched; a non-nil empty
// ExpiryDate clears the expiry.
func (i *Item) Apply(d Draft, now time.Time) {
	if d.Name != nil {
		i.Name = EnsureString(d.Name, i.Name)
	}
	if d.Category != nil {
		i.Category = EnsureString(d.Category, i.Category)
	}
	if d.Icon != nil {
		i.Icon = EnsureString(d.Icon, "")
	}
	if d.Quantity != nil {
		i.Quantity = Count(d.Quantity)
	}
	if d.Unit != nil {
		i.Unit = EnsureString(d.Unit, i.Unit)
	}
	if d.Threshold != nil {
		i.Threshold = Count(d.Threshold)
	}
	if d.PurchaseDate != "" {
		i.PurchaseDate = d.PurchaseDate
	}
	if d.ExpiryDate != nil {
		i.ExpiryDate = EnsureString(d.ExpiryDate, "")
	}
	i.LastUpdated = now
}
