// Package models defines the core domain records for Stockroom.
//
// # Records
//
//   - Item: one tracked unit of stock, with quantity, unit, low-stock
//     threshold and purchase/expiry dates
//   - Draft: caller-supplied fields for creating or partially updating an
//     Item, before coercion and defaults are applied
//   - Settings: the per-shop personalization record (owner, shop name, theme)
//   - User: a signed-in identity
//   - Stats: dashboard aggregates derived from the item list
//
// # Design Principles
//
// 1. **Plain strings after every write path**: Name, Category and Icon are
// always plain strings once an Item exists, no matter what shape the caller
// supplied. See the coercion notes on Draft.
//
// 2. **Storage-agnostic**: the same Item record is persisted as a JSON value
// in the local key-value store and as a document in the remote store, keyed
// by its ID in both.
//
// 3. **Calendar dates as strings**: PurchaseDate and ExpiryDate carry
// day-granularity ISO dates ("2006-01-02") with no time component; an empty
// ExpiryDate means the item does not expire or is not tracked.
package models
