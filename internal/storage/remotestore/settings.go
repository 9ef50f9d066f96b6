package remotestore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wellhouse/stockroom/internal/docstore"
	"github.com/wellhouse/stockroom/internal/models"
	"github.com/wellhouse/stockroom/internal/storage"
)

// Ensure Settings implements storage.SettingsBackend
var _ storage.SettingsBackend = (*Settings)(nil)

// Settings is the remote personalization backend for one signed-in user. It
// owns only the personalization fields of the shared settings document; the
// icon map stored alongside belongs to the item backend.
type Settings struct {
	store  docstore.Store
	owner  string
	logger *slog.Logger
}

// NewSettings creates the remote settings backend scoped to the given user id.
func NewSettings(store docstore.Store, owner string, logger *slog.Logger) *Settings {
	return &Settings{store: store, owner: owner, logger: logger}
}

// LoadSettings reads the personalization fields. ok is true only when at
// least one personalization field is present, so a settings document that
// exists solely because icons migrated into it does not count as "has
// remote settings".
func (b *Settings) LoadSettings(ctx context.Context) (models.Settings, bool, error) {
	data, exists, err := b.store.GetDocument(ctx, settingsPath(b.owner))
	if err != nil {
		return models.Settings{}, false, fmt.Errorf("failed to read remote settings: %w", err)
	}
	if !exists {
		return models.Settings{}, false, nil
	}

	settings := models.SettingsFromDoc(data)
	return settings, !settings.IsZero(), nil
}

// SaveSettings merge-writes the personalization fields into the settings
// document, preserving the icon map stored alongside.
func (b *Settings) SaveSettings(ctx context.Context, settings models.Settings) error {
	if err := b.store.SetDocument(ctx, settingsPath(b.owner), settings.SettingsDoc(), true); err != nil {
		return fmt.Errorf("failed to write remote settings: %w", err)
	}
	return nil
}

// Watch subscribes to the settings document.
func (b *Settings) Watch(onChange func()) (stop func()) {
	stopDoc, err := b.store.SubscribeDocument(context.Background(), settingsPath(b.owner), func(map[string]any) {
		onChange()
	})
	if err != nil {
		b.logger.Error("failed to subscribe to remote settings", "owner", b.owner, "error", err)
		return func() {}
	}
	return stopDoc
}
