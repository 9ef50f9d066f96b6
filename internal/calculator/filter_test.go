package calculator

import (
	"testing"
	"time"

	"github.com/wellhouse/stockroom/internal/models"
)

var today = time.Date(2025, 6, 15, 9, 45, 0, 0, time.UTC)

func day(offset int) string {
	return today.AddDate(0, 0, offset).Format(models.DateFormat)
}

func TestFilterStatus(t *testing.T) {
	items := []models.Item{
		{ID: "a", Name: "A", Category: "Pantry", Quantity: 2, Threshold: 5},
		{ID: "b", Name: "B", Category: "Pantry", Quantity: 5, Threshold: 2},
	}

	t.Run("low returns items at or below threshold", func(t *testing.T) {
		got := Filter(items, Query{Status: StatusLow, Today: today})
		if len(got) != 1 || got[0].ID != "a" {
			t.Errorf("Expected [a], got %v", ids(got))
		}
	})

	t.Run("healthy returns items above threshold", func(t *testing.T) {
		got := Filter(items, Query{Status: StatusHealthy, Today: today})
		if len(got) != 1 || got[0].ID != "b" {
			t.Errorf("Expected [b], got %v", ids(got))
		}
	})

	t.Run("all returns everything", func(t *testing.T) {
		got := Filter(items, Query{Today: today})
		if len(got) != 2 {
			t.Errorf("Expected 2 items, got %v", ids(got))
		}
	})
}

func TestFilterExpiring(t *testing.T) {
	cases := []struct {
		name   string
		expiry string
		want   bool
	}{
		{"seven days out is expiring", day(7), true},
		{"eight days out is not", day(8), false},
		{"yesterday still counts", day(-1), true},
		{"no expiry date never expires", "", false},
		{"unparseable date never expires", "soonish", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := models.Item{ID: "x", Name: "X", ExpiryDate: tc.expiry}
			got := Filter([]models.Item{item}, Query{Status: StatusExpiring, Today: today})
			if (len(got) == 1) != tc.want {
				t.Errorf("Expiring filter with expiry %q: got %v, want included=%v", tc.expiry, ids(got), tc.want)
			}
		})
	}
}

func TestFilterSearch(t *testing.T) {
	items := []models.Item{
		{ID: "milk", Name: "Milk", Category: "Dairy"},
		{ID: "soap", Name: "Soap", Category: "Body Care"},
	}

	t.Run("matches name case-insensitively", func(t *testing.T) {
		got := Filter(items, Query{Search: "mIlK", Today: today})
		if len(got) != 1 || got[0].ID != "milk" {
			t.Errorf("Expected [milk], got %v", ids(got))
		}
	})

	t.Run("matches category substring", func(t *testing.T) {
		got := Filter(items, Query{Search: "body", Today: today})
		if len(got) != 1 || got[0].ID != "soap" {
			t.Errorf("Expected [soap], got %v", ids(got))
		}
	})

	t.Run("search and status combine", func(t *testing.T) {
		low := []models.Item{
			{ID: "1", Name: "Milk", Category: "Dairy", Quantity: 1, Threshold: 3},
			{ID: "2", Name: "Milk Powder", Category: "Dairy", Quantity: 9, Threshold: 3},
		}
		got := Filter(low, Query{Search: "milk", Status: StatusLow, Today: today})
		if len(got) != 1 || got[0].ID != "1" {
			t.Errorf("Expected [1], got %v", ids(got))
		}
	})
}

func TestGroupByCategory(t *testing.T) {
	items := []models.Item{
		{ID: "1", Name: "Zucchini", Category: "Vegetables"},
		{ID: "2", Name: "Milk", Category: "Dairy"},
		{ID: "3", Name: "Butter", Category: "Dairy"},
		{ID: "4", Name: "Mystery"},
	}

	groups := GroupByCategory(items)

	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}
	if groups[0].Category != "Dairy" || groups[1].Category != "Uncategorized" || groups[2].Category != "Vegetables" {
		t.Errorf("Expected lexicographic group order, got %q %q %q",
			groups[0].Category, groups[1].Category, groups[2].Category)
	}
	if groups[0].Items[0].Name != "Butter" || groups[0].Items[1].Name != "Milk" {
		t.Errorf("Expected items sorted by name within group, got %v", ids(groups[0].Items))
	}
}

func TestComputeStats(t *testing.T) {
	items := []models.Item{
		{ID: "1", Name: "Milk", Quantity: 2, Threshold: 3},
		{ID: "2", Name: "Soap", Quantity: 9, Threshold: 3},
		{ID: "3", Name: "Yogurt", Quantity: 5, Threshold: 1, ExpiryDate: day(2)},
	}

	stats := ComputeStats(items, today)

	if stats.TotalItems != 3 {
		t.Errorf("Expected TotalItems 3, got %d", stats.TotalItems)
	}
	if stats.LowStockCount != 1 || len(stats.LowStockItems) != 1 || stats.LowStockItems[0].ID != "1" {
		t.Errorf("Expected low stock {1}, got count=%d items=%v", stats.LowStockCount, ids(stats.LowStockItems))
	}
	if stats.HealthyCount != 2 {
		t.Errorf("Expected HealthyCount 2, got %d", stats.HealthyCount)
	}
	if stats.ExpiringCount != 1 {
		t.Errorf("Expected ExpiringCount 1, got %d", stats.ExpiringCount)
	}
}

func ids(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
