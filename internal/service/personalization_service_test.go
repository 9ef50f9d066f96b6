package service

import (
	"context"
	"testing"

	"github.com/wellhouse/stockroom/internal/auth"
	"github.com/wellhouse/stockroom/internal/docstore"
	"github.com/wellhouse/stockroom/internal/docstore/memory"
	"github.com/wellhouse/stockroom/internal/models"
	"github.com/wellhouse/stockroom/internal/storage/localstore"
)

type personalizationFixture struct {
	local  *localstore.Settings
	docs   *memory.Store
	signal *auth.Signal
	svc    *PersonalizationService
}

func newPersonalizationFixture(t *testing.T) *personalizationFixture {
	t.Helper()
	f := &personalizationFixture{
		local:  localstore.NewSettings(newMapKV()),
		docs:   memory.New(),
		signal: auth.NewSignal(),
	}
	f.svc = NewPersonalizationService(f.local, f.docs, f.signal, discardLogger())
	t.Cleanup(f.svc.Close)
	return f
}

func TestSettingsDefaults(t *testing.T) {
	f := newPersonalizationFixture(t)

	got := f.svc.Settings()
	want := models.DefaultSettings()
	if got != want {
		t.Errorf("expected defaults %+v, got %+v", want, got)
	}
	if f.svc.Loading() {
		t.Error("expected Loading() false after the initial read")
	}
}

func TestUpdateSettingsMerges(t *testing.T) {
	ctx := context.Background()
	f := newPersonalizationFixture(t)

	if err := f.svc.UpdateSettings(ctx, models.Settings{OwnerName: "Rita"}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if err := f.svc.UpdateSettings(ctx, models.Settings{ThemeName: "Ocean", ThemeColor: "#0ea5e9"}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	got := f.svc.Settings()
	if got.OwnerName != "Rita" {
		t.Errorf("OwnerName = %q, want Rita", got.OwnerName)
	}
	if got.ThemeName != "Ocean" || got.ThemeColor != "#0ea5e9" {
		t.Errorf("theme = %q/%q, want Ocean/#0ea5e9", got.ThemeName, got.ThemeColor)
	}
	if got.ShopName != models.DefaultSettings().ShopName {
		t.Errorf("ShopName = %q, want default", got.ShopName)
	}
}

func TestSettingsCopiedUpOnSignIn(t *testing.T) {
	ctx := context.Background()
	f := newPersonalizationFixture(t)

	if err := f.svc.UpdateSettings(ctx, models.Settings{ShopName: "Corner Shop"}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	f.signal.Set(&models.User{ID: "user-1"})

	if got := f.svc.Settings().ShopName; got != "Corner Shop" {
		t.Errorf("ShopName = %q after sign-in, want Corner Shop", got)
	}
	if _, ok, err := f.local.LoadSettings(ctx); err != nil || ok {
		t.Errorf("expected local settings cleared after copy, ok=%v err=%v", ok, err)
	}
	doc, ok, err := f.docs.GetDocument(ctx, docstore.Path{Owner: "user-1", Collection: "settings", Doc: "shop"})
	if err != nil || !ok {
		t.Fatalf("expected remote settings document, ok=%v err=%v", ok, err)
	}
	if doc["shopName"] != "Corner Shop" {
		t.Errorf("remote shopName = %v, want Corner Shop", doc["shopName"])
	}
}

func TestRemoteSettingsTakePrecedence(t *testing.T) {
	ctx := context.Background()
	f := newPersonalizationFixture(t)

	path := docstore.Path{Owner: "user-1", Collection: "settings", Doc: "shop"}
	if err := f.docs.SetDocument(ctx, path, map[string]any{"shopName": "Remote Shop"}, false); err != nil {
		t.Fatalf("SetDocument: %v", err)
	}
	if err := f.svc.UpdateSettings(ctx, models.Settings{ShopName: "Local Shop"}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	f.signal.Set(&models.User{ID: "user-1"})

	if got := f.svc.Settings().ShopName; got != "Remote Shop" {
		t.Errorf("ShopName = %q after sign-in, want Remote Shop", got)
	}
	doc, _, err := f.docs.GetDocument(ctx, path)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc["shopName"] != "Remote Shop" {
		t.Errorf("remote shopName overwritten to %v", doc["shopName"])
	}
}

func TestIconsOnlyDocDoesNotBlockCopy(t *testing.T) {
	ctx := context.Background()
	f := newPersonalizationFixture(t)

	// An inventory migration writes category icons into the settings
	// document before any personalization exists there.
	path := docstore.Path{Owner: "user-1", Collection: "settings", Doc: "shop"}
	icons := map[string]any{"categoryIcons": map[string]any{"Dairy": "🥛"}}
	if err := f.docs.SetDocument(ctx, path, icons, false); err != nil {
		t.Fatalf("SetDocument: %v", err)
	}
	if err := f.svc.UpdateSettings(ctx, models.Settings{OwnerName: "Rita"}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	f.signal.Set(&models.User{ID: "user-1"})

	if got := f.svc.Settings().OwnerName; got != "Rita" {
		t.Errorf("OwnerName = %q after sign-in, want Rita", got)
	}
	doc, _, err := f.docs.GetDocument(ctx, path)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	iconsAfter, _ := doc["categoryIcons"].(map[string]any)
	if iconsAfter["Dairy"] != "🥛" {
		t.Errorf("settings copy clobbered category icons: %v", doc["categoryIcons"])
	}
}

func TestSettingsSignOutRestoresDefaults(t *testing.T) {
	ctx := context.Background()
	f := newPersonalizationFixture(t)

	f.signal.Set(&models.User{ID: "user-1"})
	if err := f.svc.UpdateSettings(ctx, models.Settings{OwnerName: "Rita"}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	f.signal.Set(nil)

	got := f.svc.Settings()
	if got != models.DefaultSettings() {
		t.Errorf("expected defaults after sign-out, got %+v", got)
	}
}
