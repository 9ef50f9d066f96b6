package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/wellhouse/stockroom/internal/models"
)

// mapKV is an in-memory storage.KV for tests.
type mapKV struct {
	values map[string][]byte
}

func newMapKV() *mapKV {
	return &mapKV{values: make(map[string][]byte)}
}

func (m *mapKV) Get(key string) ([]byte, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *mapKV) Set(key string, value []byte) error {
	m.values[key] = value
	return nil
}

func (m *mapKV) Delete(key string) error {
	delete(m.values, key)
	return nil
}

func TestItemsBackend(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("put, list, delete round-trip", func(t *testing.T) {
		backend := NewItems(newMapKV())

		item := models.NewItem(models.Draft{Name: "Milk", Category: "Dairy", Quantity: 2}, now)
		if err := backend.PutItem(ctx, item); err != nil {
			t.Fatalf("PutItem failed: %v", err)
		}

		items, err := backend.ListItems(ctx)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 1 || items[0].ID != item.ID || items[0].Quantity != 2 {
			t.Errorf("Expected stored item back, got %+v", items)
		}

		// put with same id replaces, not appends
		item.Quantity = 5
		if err := backend.PutItem(ctx, item); err != nil {
			t.Fatalf("PutItem failed: %v", err)
		}
		items, _ = backend.ListItems(ctx)
		if len(items) != 1 || items[0].Quantity != 5 {
			t.Errorf("Expected replaced item, got %+v", items)
		}

		if err := backend.DeleteItem(ctx, item.ID); err != nil {
			t.Fatalf("DeleteItem failed: %v", err)
		}
		if err := backend.DeleteItem(ctx, item.ID); err != nil {
			t.Fatalf("second DeleteItem failed: %v", err)
		}
		items, _ = backend.ListItems(ctx)
		if len(items) != 0 {
			t.Errorf("Expected empty list after delete, got %+v", items)
		}
	})

	t.Run("repairs legacy object-valued fields on load", func(t *testing.T) {
		kv := newMapKV()
		corrupted := `[{"id":"x","name":{"label":"Milk","icon":"🥛"},"category":{"name":"Dairy"},"quantity":3}]`
		if err := kv.Set("inventory-items", []byte(corrupted)); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		items, err := NewItems(kv).ListItems(ctx)
		if err != nil {
			t.Fatalf("ListItems failed: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("Expected 1 item, got %d", len(items))
		}
		if items[0].Name != "Milk" || items[0].Category != "Dairy" {
			t.Errorf("Expected repaired strings, got name=%q category=%q", items[0].Name, items[0].Category)
		}
		if items[0].Quantity != 3 {
			t.Errorf("Expected quantity 3, got %d", items[0].Quantity)
		}
	})

	t.Run("category icons upsert", func(t *testing.T) {
		backend := NewItems(newMapKV())

		if err := backend.PutCategoryIcon(ctx, "Dairy", "🥛"); err != nil {
			t.Fatalf("PutCategoryIcon failed: %v", err)
		}
		if err := backend.PutCategoryIcon(ctx, "Dairy", "🧀"); err != nil {
			t.Fatalf("PutCategoryIcon failed: %v", err)
		}

		icons, err := backend.CategoryIcons(ctx)
		if err != nil {
			t.Fatalf("CategoryIcons failed: %v", err)
		}
		if icons["Dairy"] != "🧀" {
			t.Errorf("Expected last write to win, got %q", icons["Dairy"])
		}
	})

	t.Run("watch echoes writes synchronously", func(t *testing.T) {
		backend := NewItems(newMapKV())

		var fired int
		stop := backend.Watch(func() { fired++ })
		defer stop()

		item := models.NewItem(models.Draft{Name: "Soap"}, now)
		if err := backend.PutItem(ctx, item); err != nil {
			t.Fatalf("PutItem failed: %v", err)
		}
		if fired != 1 {
			t.Errorf("Expected 1 notification, got %d", fired)
		}

		stop()
		_ = backend.DeleteItem(ctx, item.ID)
		if fired != 1 {
			t.Errorf("Expected no notifications after stop, got %d", fired)
		}
	})

	t.Run("clear drains items and icons", func(t *testing.T) {
		backend := NewItems(newMapKV())
		_ = backend.PutItem(ctx, models.NewItem(models.Draft{Name: "Milk"}, now))
		_ = backend.PutCategoryIcon(ctx, "Dairy", "🥛")

		if err := backend.Clear(ctx); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}

		items, _ := backend.ListItems(ctx)
		icons, _ := backend.CategoryIcons(ctx)
		if len(items) != 0 || len(icons) != 0 {
			t.Errorf("Expected drained store, got items=%v icons=%v", items, icons)
		}
	})
}

func TestSettingsBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("load before save reports absent", func(t *testing.T) {
		_, ok, err := NewSettings(newMapKV()).LoadSettings(ctx)
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if ok {
			t.Error("Expected ok=false before any save")
		}
	})

	t.Run("save, load, clear round-trip", func(t *testing.T) {
		backend := NewSettings(newMapKV())

		settings := models.DefaultSettings()
		settings.ShopName = "Corner Shop"
		if err := backend.SaveSettings(ctx, settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}

		loaded, ok, err := backend.LoadSettings(ctx)
		if err != nil || !ok {
			t.Fatalf("LoadSettings: ok=%v err=%v", ok, err)
		}
		if loaded != settings {
			t.Errorf("Expected %+v, got %+v", settings, loaded)
		}

		if err := backend.Clear(ctx); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		if _, ok, _ := backend.LoadSettings(ctx); ok {
			t.Error("Expected settings gone after clear")
		}
	})
}
