// Package localstore implements the storage backends for anonymous
// sessions on top of the local key-value store. Writes are synchronous and
// echo to watchers immediately (optimistic local apply); the same keys the
// browser build of the app used are kept so existing data keeps working.
package localstore

import (
	"context"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/wellhouse/stockroom/internal/models"
	"github.com/wellhouse/stockroom/internal/storage"
)

const (
	keyItems         = "inventory-items"
	keyCategoryIcons = "inventory-category-icons"
	keySettings      = "wellhouse_settings"
)

var json = jsoniter.ConfigFastest

// Ensure Items implements storage.ItemBackend
var _ storage.ItemBackend = (*Items)(nil)

// Items is the local item backend: the item list and category-icon map
// stored as two JSON values in the KV store.
type Items struct {
	kv storage.KV

	mu       sync.Mutex
	watchers map[int]func()
	nextID   int
}

// NewItems creates the local item backend over kv.
func NewItems(kv storage.KV) *Items {
	return &Items{kv: kv, watchers: make(map[int]func())}
}

// ListItems reads the stored item list. Records are decoded through the
// coercion shim, so entries corrupted by historical versions (object-valued
// name/category) come back repaired.
func (b *Items) ListItems(_ context.Context) ([]models.Item, error) {
	raw, ok, err := b.kv.Get(keyItems)
	if err != nil {
		return nil, fmt.Errorf("failed to read item list: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode item list: %w", err)
	}

	items := make([]models.Item, 0, len(docs))
	for _, doc := range docs {
		item := models.ItemFromDoc(doc)
		if item.ID == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// PutItem inserts or replaces the item with the same id.
func (b *Items) PutItem(ctx context.Context, item models.Item) error {
	items, err := b.ListItems(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}

	if err := b.writeItems(items); err != nil {
		return err
	}
	b.notify()
	return nil
}

// DeleteItem removes the item with the given id; unknown ids are a no-op.
func (b *Items) DeleteItem(ctx context.Context, id string) error {
	items, err := b.ListItems(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}

	if err := b.writeItems(kept); err != nil {
		return err
	}
	b.notify()
	return nil
}

// CategoryIcons reads the category-icon map.
func (b *Items) CategoryIcons(_ context.Context) (map[string]string, error) {
	raw, ok, err := b.kv.Get(keyCategoryIcons)
	if err != nil {
		return nil, fmt.Errorf("failed to read category icons: %w", err)
	}
	if !ok {
		return map[string]string{}, nil
	}

	var icons map[string]string
	if err := json.Unmarshal(raw, &icons); err != nil {
		return nil, fmt.Errorf("failed to decode category icons: %w", err)
	}
	return icons, nil
}

// PutCategoryIcon upserts one category-icon entry.
func (b *Items) PutCategoryIcon(ctx context.Context, category, icon string) error {
	icons, err := b.CategoryIcons(ctx)
	if err != nil {
		return err
	}
	icons[category] = icon

	raw, err := json.Marshal(icons)
	if err != nil {
		return fmt.Errorf("failed to encode category icons: %w", err)
	}
	if err := b.kv.Set(keyCategoryIcons, raw); err != nil {
		return fmt.Errorf("failed to write category icons: %w", err)
	}
	b.notify()
	return nil
}

// Clear drains the item list and icon map. Called after a migration commits
// so a later sign-in finds nothing left to migrate.
func (b *Items) Clear(_ context.Context) error {
	if err := b.kv.Delete(keyItems); err != nil {
		return fmt.Errorf("failed to clear item list: %w", err)
	}
	if err := b.kv.Delete(keyCategoryIcons); err != nil {
		return fmt.Errorf("failed to clear category icons: %w", err)
	}
	return nil
}

// Watch registers a callback fired synchronously after every local write.
func (b *Items) Watch(onChange func()) (stop func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.watchers[id] = onChange
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.watchers, id)
		b.mu.Unlock()
	}
}

func (b *Items) writeItems(items []models.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode item list: %w", err)
	}
	if err := b.kv.Set(keyItems, raw); err != nil {
		return fmt.Errorf("failed to write item list: %w", err)
	}
	return nil
}

func (b *Items) notify() {
	b.mu.Lock()
	watchers := make([]func(), 0, len(b.watchers))
	for _, fn := range b.watchers {
		watchers = append(watchers, fn)
	}
	b.mu.Unlock()

	for _, fn := range watchers {
		fn()
	}
}
