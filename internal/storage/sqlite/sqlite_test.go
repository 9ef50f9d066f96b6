package sqlite

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "stockroom-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	t.Run("missing key reports absent", func(t *testing.T) {
		_, ok, err := store.Get("inventory-items")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("Expected ok=false for missing key")
		}
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		if err := store.Set("inventory-items", []byte(`[{"id":"a"}]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, ok, err := store.Get("inventory-items")
		if err != nil || !ok {
			t.Fatalf("Get: ok=%v err=%v", ok, err)
		}
		if string(value) != `[{"id":"a"}]` {
			t.Errorf("Expected stored value back, got %q", value)
		}
	})

	t.Run("set replaces previous value", func(t *testing.T) {
		if err := store.Set("inventory-items", []byte(`[]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, _, err := store.Get("inventory-items")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(value) != `[]` {
			t.Errorf("Expected replaced value, got %q", value)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		if err := store.Delete("inventory-items"); err != nil {
			t.Fatalf("first delete failed: %v", err)
		}
		if err := store.Delete("inventory-items"); err != nil {
			t.Fatalf("second delete failed: %v", err)
		}
		if _, ok, _ := store.Get("inventory-items"); ok {
			t.Error("Expected key gone after delete")
		}
	})

	t.Run("values survive close and reopen", func(t *testing.T) {
		if err := store.Set("wellhouse_settings", []byte(`{"shopName":"Wellhouse"}`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		reopened, err := New(dbPath)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		defer reopened.Close()

		value, ok, err := reopened.Get("wellhouse_settings")
		if err != nil || !ok {
			t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
		}
		if string(value) != `{"shopName":"Wellhouse"}` {
			t.Errorf("Expected persisted value, got %q", value)
		}
	})
}
