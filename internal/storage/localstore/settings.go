package localstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/wellhouse/stockroom/internal/models"
	"github.com/wellhouse/stockroom/internal/storage"
)

// Ensure Settings implements storage.SettingsBackend
var _ storage.SettingsBackend = (*Settings)(nil)

// Settings is the local personalization backend: one JSON record in the KV
// store.
type Settings struct {
	kv storage.KV

	mu       sync.Mutex
	watchers map[int]func()
	nextID   int
}

// NewSettings creates the local settings backend over kv.
func NewSettings(kv storage.KV) *Settings {
	return &Settings{kv: kv, watchers: make(map[int]func())}
}

// LoadSettings reads the stored record, reporting whether one exists.
func (b *Settings) LoadSettings(_ context.Context) (models.Settings, bool, error) {
	raw, ok, err := b.kv.Get(keySettings)
	if err != nil {
		return models.Settings{}, false, fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok {
		return models.Settings{}, false, nil
	}

	var settings models.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.Settings{}, false, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, true, nil
}

// SaveSettings persists the record, replacing any previous one.
func (b *Settings) SaveSettings(_ context.Context, settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := b.kv.Set(keySettings, raw); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	b.notify()
	return nil
}

// Clear removes the stored record. Called after the record migrates to the
// remote store on first sign-in.
func (b *Settings) Clear(_ context.Context) error {
	if err := b.kv.Delete(keySettings); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	return nil
}

// Watch registers a callback fired synchronously after every local write.
func (b *Settings) Watch(onChange func()) (stop func()) {
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

func (b *Settings) notify() {
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
