package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wellhouse/stockroom/internal/auth"
	"github.com/wellhouse/stockroom/internal/docstore"
	"github.com/wellhouse/stockroom/internal/models"
	"github.com/wellhouse/stockroom/internal/storage"
	"github.com/wellhouse/stockroom/internal/storage/localstore"
	"github.com/wellhouse/stockroom/internal/storage/remotestore"
)

// PersonalizationService mirrors InventoryService for the settings record:
// it owns the effective settings (defaults overlaid with whatever the active
// backend stores), follows the identity signal between backends, and copies
// local settings up on sign-in.
//
// Unlike the inventory migration, remote settings take precedence: a
// signed-in user's stored personalization survives whatever the anonymous
// session wrote locally.
type PersonalizationService struct {
	local  *localstore.Settings
	docs   docstore.Store
	logger *slog.Logger

	mu          sync.Mutex
	backend     storage.SettingsBackend
	settings    models.Settings
	loading     bool
	stopWatch   func()
	stopSignal  func()
	subscribers map[int]func()
	nextSub     int
}

// NewPersonalizationService creates the core and binds it to the identity
// signal.
func NewPersonalizationService(local *localstore.Settings, docs docstore.Store, signal *auth.Signal, logger *slog.Logger) *PersonalizationService {
	s := &PersonalizationService{
		local:       local,
		docs:        docs,
		logger:      logger,
		settings:    models.DefaultSettings(),
		loading:     true,
		subscribers: make(map[int]func()),
	}
	s.stopSignal = signal.OnChange(s.handleIdentity)
	s.handleIdentity(signal.Current())
	return s
}

// Close detaches the core from the identity signal and any backend watch.
func (s *PersonalizationService) Close() {
	if s.stopSignal != nil {
		s.stopSignal()
	}
	s.mu.Lock()
	stop := s.stopWatch
	s.stopWatch = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (s *PersonalizationService) handleIdentity(user *models.User) {
	ctx := context.Background()

	s.mu.Lock()
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	s.mu.Unlock()

	if user == nil {
		s.switchTo(s.local)
		return
	}

	remote := remotestore.NewSettings(s.docs, user.ID, s.logger)
	s.copyLocalUp(ctx, remote, user.ID)
	s.switchTo(remote)
}

// copyLocalUp seeds the remote settings document from the local one on
// sign-in. Remote fields win: the local snapshot is written first as a
// merge, so anything already stored remotely is re-asserted on top by the
// subsequent reload. Local settings are cleared only after a successful
// copy.
func (s *PersonalizationService) copyLocalUp(ctx context.Context, remote *remotestore.Settings, userID string) {
	localSettings, ok, err := s.local.LoadSettings(ctx)
	if err != nil {
		s.logger.Error("failed to read local settings on sign-in", "error", err)
		return
	}
	if !ok {
		return
	}

	_, remoteExists, err := remote.LoadSettings(ctx)
	if err != nil {
		s.logger.Error("failed to read remote settings on sign-in", "error", err)
		return
	}
	if remoteExists {
		// Stored personalization wins. Drop the local copy so it
		// cannot shadow a later sign-out session's fresh defaults.
		if err := s.local.Clear(ctx); err != nil {
			s.logger.Warn("failed to clear local settings", "error", err)
		}
		return
	}

	if err := remote.SaveSettings(ctx, localSettings); err != nil {
		writeFailures.Inc()
		s.logger.Error("failed to copy local settings to remote", "user_id", userID, "error", err)
		return
	}
	if err := s.local.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear local settings after copy", "error", err)
	}
	s.logger.Info("local settings copied to remote", "user_id", userID)
}

func (s *PersonalizationService) switchTo(backend storage.SettingsBackend) {
	s.mu.Lock()
	s.backend = backend
	s.loading = true
	s.mu.Unlock()

	stop := backend.Watch(s.reload)
	s.mu.Lock()
	s.stopWatch = stop
	s.mu.Unlock()

	s.reload()
}

// reload rebuilds the effective settings: defaults first, stored fields
// merged on top. Missing or partial records therefore always yield a
// complete settings value.
func (s *PersonalizationService) reload() {
	ctx := context.Background()

	s.mu.Lock()
	backend := s.backend
	s.mu.Unlock()
	if backend == nil {
		return
	}

	stored, ok, err := backend.LoadSettings(ctx)
	if err != nil {
		s.logger.Error("failed to load settings", "error", err)
		return
	}

	effective := models.DefaultSettings()
	if ok {
		effective.Merge(stored)
	}

	s.mu.Lock()
	s.settings = effective
	s.loading = false
	s.mu.Unlock()

	s.notifySubscribers()
}

// UpdateSettings merges the non-empty fields of partial over the effective
// settings and persists the result to the active backend.
func (s *PersonalizationService) UpdateSettings(ctx context.Context, partial models.Settings) error {
	s.mu.Lock()
	backend := s.backend
	next := s.settings
	s.mu.Unlock()

	next.Merge(partial)

	if err := backend.SaveSettings(ctx, next); err != nil {
		writeFailures.Inc()
		s.logger.Error("settings update failed", "error", err)
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// Settings returns the effective settings.
func (s *PersonalizationService) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Loading reports whether the settings have not yet been read from the
// active backend.
func (s *PersonalizationService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subscribe registers a callback fired after every effective-settings
// change. The returned func unsubscribes.
func (s *PersonalizationService) Subscribe(fn func()) (stop func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *PersonalizationService) notifySubscribers() {
	s.mu.Lock()
	subscribers := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}
