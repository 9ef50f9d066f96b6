// Package storage defines the backend-selection abstraction the sync cores
// write through. Two implementations exist for each interface: a
// local-store-backed one for anonymous sessions (localstore) and a remote
// document-store-backed one for signed-in sessions (remotestore). The sync
// cores swap backends on identity transitions instead of branching on the
// current user inside every operation.
package storage

import (
	"context"

	"github.com/wellhouse/stockroom/internal/models"
)

// KV is the durable key-value persistence the local backends sit on: a
// synchronous mapping from string keys to JSON-serializable values, with a
// lifetime equal to the underlying store's retention.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error.
	Delete(key string) error
}

// ItemBackend stores the item collection and the category-icon map.
//
// Watch registers a callback fired after every change the backend observes.
// The local implementation echoes its own writes synchronously; the remote
// implementation fires only when the document store pushes a change, so a
// caller must not assume its write is visible before the next notification.
type ItemBackend interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	PutItem(ctx context.Context, item models.Item) error

	// DeleteItem removes the record; deleting a nonexistent id is a no-op.
	DeleteItem(ctx context.Context, id string) error

	CategoryIcons(ctx context.Context) (map[string]string, error)

	// PutCategoryIcon upserts one category-icon entry, last write wins.
	PutCategoryIcon(ctx context.Context, category, icon string) error

	Watch(onChange func()) (stop func())
}

// SettingsBackend stores the single personalization record.
type SettingsBackend interface {
	// LoadSettings returns the record and whether one exists.
	LoadSettings(ctx context.Context) (models.Settings, bool, error)

	// SaveSettings persists the record with upsert semantics.
	SaveSettings(ctx context.Context, settings models.Settings) error

	Watch(onChange func()) (stop func())
}
