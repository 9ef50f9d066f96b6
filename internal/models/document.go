package models

import "time"

// Doc renders the item as a document for the remote store. Field names match
// the JSON encoding so a document round-trips identically through either
// backend.
func (i Item) Doc() map[string]any {
	doc := map[string]any{
		"id":           i.ID,
		"name":         i.Name,
		"category":     i.Category,
		"quantity":     i.Quantity,
		"unit":         i.Unit,
		"threshold":    i.Threshold,
		"purchaseDate": i.PurchaseDate,
		"lastUpdated":  i.LastUpdated.Format(time.RFC3339Nano),
	}
	if i.Icon != "" {
		doc["icon"] = i.Icon
	}
	if i.ExpiryDate != "" {
		doc["expiryDate"] = i.ExpiryDate
	}
	return doc
}

// ItemFromDoc rebuilds an Item from a stored document, running every field
// through the coercion shim. Records written by buggy historical versions
// (object-valued name/category/icon) come back repaired.
func ItemFromDoc(doc map[string]any) Item {
	item := Item{
		ID:           EnsureString(doc["id"], ""),
		Name:         EnsureString(doc["name"], "Untitled"),
		Category:     EnsureString(doc["category"], "General"),
		Icon:         EnsureString(doc["icon"], ""),
		Quantity:     Count(doc["quantity"]),
		Unit:         EnsureString(doc["unit"], "pcs"),
		Threshold:    Count(doc["threshold"]),
		PurchaseDate: EnsureString(doc["purchaseDate"], ""),
		ExpiryDate:   EnsureString(doc["expiryDate"], ""),
	}
	if raw := EnsureString(doc["lastUpdated"], ""); raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			item.LastUpdated = ts
		}
	}
	return item
}

// SettingsDoc renders the personalization fields as a merge-friendly
// document: only set fields appear, so a merge write never blanks a sibling.
func (s Settings) SettingsDoc() map[string]any {
	doc := make(map[string]any, 4)
	if s.OwnerName != "" {
		doc["ownerName"] = s.OwnerName
	}
	if s.ShopName != "" {
		doc["shopName"] = s.ShopName
	}
	if s.ThemeColor != "" {
		doc["themeColor"] = s.ThemeColor
	}
	if s.ThemeName != "" {
		doc["themeName"] = s.ThemeName
	}
	return doc
}

// SettingsFromDoc extracts the personalization fields of a settings
// document, ignoring unrelated fields stored alongside them.
func SettingsFromDoc(doc map[string]any) Settings {
	return Settings{
		OwnerName:  EnsureString(doc["ownerName"], ""),
		ShopName:   EnsureString(doc["shopName"], ""),
		ThemeColor: EnsureString(doc["themeColor"], ""),
		ThemeName:  EnsureString(doc["themeName"], ""),
	}
}
