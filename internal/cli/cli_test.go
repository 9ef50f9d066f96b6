package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/wellhouse/stockroom/internal/calculator"
	"github.com/wellhouse/stockroom/internal/models"
)

func TestOpenAppWithoutRemoteStore(t *testing.T) {
	ctx := context.Background()
	t.Setenv("STOCKROOM_DB", filepath.Join(t.TempDir(), "stockroom.db"))
	t.Setenv("DATABASE_URL", "")

	// First invocation: stock an item anonymously and leave a session
	// token behind, as a crashed or downgraded deployment might.
	app, err := openApp(ctx)
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	if err := app.requireRemote(); err == nil {
		t.Error("expected sign-in to be refused without DATABASE_URL")
	}
	if err := app.Inventory.AddItem(ctx, models.Draft{Name: "Milk"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := app.saveSession("stale-token"); err != nil {
		t.Fatalf("saveSession: %v", err)
	}
	app.Close()

	// Second invocation: the stored session must not pull the core off
	// the local backend, and the item must still be there.
	app, err = openApp(ctx)
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer app.Close()

	if user := app.Auth.CurrentUser(); user != nil {
		t.Errorf("expected anonymous session without a remote store, got %+v", user)
	}
	items := app.Inventory.Items()
	if len(items) != 1 || items[0].Name != "Milk" {
		t.Errorf("expected the locally stocked item to survive reopen, got %+v", items)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    calculator.Status
		wantErr bool
	}{
		{"all", calculator.StatusAll, false},
		{"low", calculator.StatusLow, false},
		{"healthy", calculator.StatusHealthy, false},
		{"expiring", calculator.StatusExpiring, false},
		{"stale", calculator.StatusAll, true},
	}
	for _, tt := range tests {
		got, err := parseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFindItem(t *testing.T) {
	items := []models.Item{
		{ID: "id-1", Name: "Milk"},
		{ID: "id-2", Name: "milk"},
		{ID: "Milk", Name: "Rice"},
	}

	t.Run("id wins over name", func(t *testing.T) {
		item, err := findItem(items, "Milk")
		if err != nil {
			t.Fatalf("findItem: %v", err)
		}
		if item.Name != "Rice" {
			t.Errorf("expected id match, got %q", item.Name)
		}
	})

	t.Run("name match is case-insensitive", func(t *testing.T) {
		item, err := findItem(items, "MILK")
		if err != nil {
			t.Fatalf("findItem: %v", err)
		}
		if item.ID != "id-1" {
			t.Errorf("expected first name match, got %q", item.ID)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, err := findItem(items, "Bread"); err == nil {
			t.Error("expected an error for an unknown reference")
		}
	})
}
