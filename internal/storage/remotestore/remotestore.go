// Package remotestore implements the storage backends for signed-in
// sessions on top of the remote document store, scoped to one user id.
// Mutations go straight to the document store; canonical state is expected
// to follow through the subscription echo, never from the write itself.
//
// Layout per user: items live as one document each under the "items"
// collection; the category-icon map and the personalization fields share
// the single settings document, written with merge semantics so neither
// concern clobbers the other.
package remotestore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wellhouse/stockroom/internal/docstore"
	"github.com/wellhouse/stockroom/internal/models"
	"github.com/wellhouse/stockroom/internal/storage"
)

const (
	itemsCollection    = "items"
	settingsCollection = "settings"
	settingsDoc        = "shop"

	iconsField = "categoryIcons"
)

// Ensure Items implements storage.ItemBackend
var _ storage.ItemBackend = (*Items)(nil)

// Items is the remote item backend for one signed-in user.
type Items struct {
	store  docstore.Store
	owner  string
	logger *slog.Logger
}

// NewItems creates the remote item backend scoped to the given user id.
func NewItems(store docstore.Store, owner string, logger *slog.Logger) *Items {
	return &Items{store: store, owner: owner, logger: logger}
}

func (b *Items) itemPath(id string) docstore.Path {
	return docstore.Path{Owner: b.owner, Collection: itemsCollection, Doc: id}
}

func settingsPath(owner string) docstore.Path {
	return docstore.Path{Owner: owner, Collection: settingsCollection, Doc: settingsDoc}
}

// ListItems reads the user's item collection.
func (b *Items) ListItems(ctx context.Context) ([]models.Item, error) {
	docs, err := b.store.ListCollection(ctx, b.owner, itemsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote items: %w", err)
	}
	return itemsFromDocs(docs), nil
}

// PutItem writes the item as one document keyed by its id.
func (b *Items) PutItem(ctx context.Context, item models.Item) error {
	if err := b.store.SetDocument(ctx, b.itemPath(item.ID), item.Doc(), false); err != nil {
		return fmt.Errorf("failed to write remote item: %w", err)
	}
	return nil
}

// DeleteItem removes the item's document; unknown ids are a no-op.
func (b *Items) DeleteItem(ctx context.Context, id string) error {
	if err := b.store.DeleteDocument(ctx, b.itemPath(id)); err != nil {
		return fmt.Errorf("failed to delete remote item: %w", err)
	}
	return nil
}

// CategoryIcons reads the icon map from the settings document.
func (b *Items) CategoryIcons(ctx context.Context) (map[string]string, error) {
	data, ok, err := b.store.GetDocument(ctx, settingsPath(b.owner))
	if err != nil {
		return nil, fmt.Errorf("failed to read remote settings: %w", err)
	}
	if !ok {
		return map[string]string{}, nil
	}
	return iconsFromDoc(data), nil
}

// PutCategoryIcon merge-writes one icon entry into the settings document,
// leaving the other icons and the personalization fields intact.
func (b *Items) PutCategoryIcon(ctx context.Context, category, icon string) error {
	patch := map[string]any{iconsField: map[string]any{category: icon}}
	if err := b.store.SetDocument(ctx, settingsPath(b.owner), patch, true); err != nil {
		return fmt.Errorf("failed to write category icon: %w", err)
	}
	return nil
}

// Import writes a migrated local snapshot in one atomic batch: every item
// keyed by its existing id plus a merge-upsert of the icon map. Either the
// whole batch commits or the remote store is untouched.
func (b *Items) Import(ctx context.Context, items []models.Item, icons map[string]string) error {
	batch := b.store.Batch()
	for _, item := range items {
		batch.Set(b.itemPath(item.ID), item.Doc(), false)
	}
	if len(icons) > 0 {
		iconDoc := make(map[string]any, len(icons))
		for category, icon := range icons {
			iconDoc[category] = icon
		}
		batch.Set(settingsPath(b.owner), map[string]any{iconsField: iconDoc}, true)
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to import local inventory: %w", err)
	}
	return nil
}

// Watch subscribes to the item collection and the settings document;
// onChange fires on every pushed change, initial snapshots included.
func (b *Items) Watch(onChange func()) (stop func()) {
	ctx := context.Background()

	stopItems, err := b.store.SubscribeCollection(ctx, b.owner, itemsCollection, func([]docstore.Document) {
		onChange()
	})
	if err != nil {
		b.logger.Error("failed to subscribe to remote items", "owner", b.owner, "error", err)
		return func() {}
	}
	stopSettings, err := b.store.SubscribeDocument(ctx, settingsPath(b.owner), func(map[string]any) {
		onChange()
	})
	if err != nil {
		b.logger.Error("failed to subscribe to remote settings", "owner", b.owner, "error", err)
		stopItems()
		return func() {}
	}

	return func() {
		stopItems()
		stopSettings()
	}
}

func itemsFromDocs(docs []docstore.Document) []models.Item {
	items := make([]models.Item, 0, len(docs))
	for _, doc := range docs {
		item := models.ItemFromDoc(doc.Data)
		if item.ID == "" {
			item.ID = doc.ID
		}
		items = append(items, item)
	}
	return items
}

func iconsFromDoc(data map[string]any) map[string]string {
	icons := map[string]string{}
	raw, _ := data[iconsField].(map[string]any)
	for category, icon := range raw {
		if glyph, ok := icon.(string); ok {
			icons[category] = glyph
		}
	}
	return icons
}
