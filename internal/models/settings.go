package models

// Settings is the per-shop personalization record. One record exists per
// user (or per anonymous local session) and updates merge into it rather
// than replacing it.
type Settings struct {
	OwnerName  string `json:"ownerName,omitempty"`
	ShopName   string `json:"shopName,omitempty"`
	ThemeColor string `json:"themeColor,omitempty"`
	ThemeName  string `json:"themeName,omitempty"`
}

// DefaultSettings returns the out-of-the-box shop personalization.
func DefaultSettings() Settings {
	return Settings{
		OwnerName:  "Friend",
		ShopName:   "Wellhouse",
		ThemeColor: "#14b8a6",
		ThemeName:  "Mint",
	}
}

// Merge applies the non-empty fields of partial over s (upsert semantics).
func (s *Settings) Merge(partial Settings) {
	if partial.OwnerName != "" {
		s.OwnerName = partial.OwnerName
	}
	if partial.ShopName != "" {
		s.ShopName = partial.ShopName
	}
	if partial.ThemeColor != "" {
		s.ThemeColor = partial.ThemeColor
	}
	if partial.ThemeName != "" {
		s.ThemeName = partial.ThemeName
	}
}

// IsZero reports whether no field is set.
func (s Settings) IsZero() bool {
	return s == Settings{}
}
