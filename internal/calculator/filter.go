package calculator

import (
	"sort"
	"strings"
	"time"

	"github.com/wellhouse/stockroom/internal/models"
)

// Status selects which stock bucket a filtered view shows.
type Status string

const (
	StatusAll      Status = "all"
	StatusLow      Status = "low"
	StatusHealthy  Status = "healthy"
	StatusExpiring Status = "expiring"
)

// Query describes a filtered view of the item list.
type Query struct {
	// Search is matched case-insensitively as a substring of the item
	// name OR category. Empty matches everything.
	Search string

	// Status picks the stock bucket; the zero value means StatusAll.
	Status Status

	// Today anchors the expiring-soon window.
	Today time.Time
}

// Filter returns the items matching the query, preserving input order.
func Filter(items []models.Item, q Query) []models.Item {
	search := strings.ToLower(q.Search)

	var matched []models.Item
	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Category), search) {
			continue
		}
		if !matchesStatus(item, q.Status, q.Today) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

func matchesStatus(item models.Item, status Status, today time.Time) bool {
	switch status {
	case StatusLow:
		return item.LowStock()
	case StatusHealthy:
		return !item.LowStock()
	case StatusExpiring:
		return Expiring(item, today)
	default:
		return true
	}
}

// Group is one shelf of the grouped view: a category and its items.
type Group struct {
	Category string
	Items    []models.Item
}

// GroupByCategory partitions items by category, sorting groups by category
// name and items within each group by name. Items without a category land
// under "Uncategorized".
func GroupByCategory(items []models.Item) []Group {
	byCategory := make(map[string][]models.Item)
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "Uncategorized"
		}
		byCategory[category] = append(byCategory[category], item)
	}

	groups := make([]Group, 0, len(byCategory))
	for category, members := range byCategory {
		sort.Slice(members, func(i, j int) bool {
			return members[i].Name < members[j].Name
		})
		groups = append(groups, Group{Category: category, Items: members})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})
	return groups
}
