// Package service holds the synchronization cores: the inventory and
// personalization services that own canonical in-memory state, select a
// storage backend from the sign-in state, run the one-time local-to-remote
// migration, and notify observers on every change.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wellhouse/stockroom/internal/auth"
	"github.com/wellhouse/stockroom/internal/calculator"
	"github.com/wellhouse/stockroom/internal/docstore"
	"github.com/wellhouse/stockroom/internal/models"
	"github.com/wellhouse/stockroom/internal/storage"
	"github.com/wellhouse/stockroom/internal/storage/localstore"
	"github.com/wellhouse/stockroom/internal/storage/remotestore"
)

// InventoryService is the inventory synchronization core. It owns the
// canonical item list and category-icon map, sourced from whichever backend
// the sign-in state selects, and exposes the mutation operations the
// presentation layer calls.
//
// Canonical state updates only through backend change notifications: the
// local backend echoes writes synchronously, the remote backend echoes them
// when the document store pushes the change back. A remote mutation is
// therefore not guaranteed visible the moment the call returns.
type InventoryService struct {
	local  *localstore.Items
	docs   docstore.Store
	logger *slog.Logger
	now    func() time.Time

	mu          sync.Mutex
	state       State
	backend     storage.ItemBackend
	items       []models.Item
	icons       map[string]string
	loading     bool
	stopWatch   func()
	stopSignal  func()
	subscribers map[int]func()
	nextSub     int
}

// NewInventoryService creates the core, binds it to the identity signal and
// loads the backend matching the current sign-in state.
func NewInventoryService(local *localstore.Items, docs docstore.Store, signal *auth.Signal, logger *slog.Logger) *InventoryService {
	s := &InventoryService{
		local:       local,
		docs:        docs,
		logger:      logger,
		now:         time.Now,
		state:       StateAnonymous,
		backend:     local,
		icons:       map[string]string{},
		loading:     true,
		subscribers: make(map[int]func()),
	}
	s.stopSignal = signal.OnChange(s.handleIdentity)
	s.handleIdentity(signal.Current())
	return s
}

// Close detaches the core from the identity signal and any backend watch.
func (s *InventoryService) Close() {
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

// handleIdentity runs on every sign-in/sign-out transition and selects the
// backend: local for anonymous sessions, remote (after the one-time
// migration) for signed-in ones.
func (s *InventoryService) handleIdentity(user *models.User) {
	ctx := context.Background()

	s.mu.Lock()
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	s.mu.Unlock()

	if user == nil {
		s.switchToLocal()
		return
	}

	remote := remotestore.NewItems(s.docs, user.ID, s.logger)

	localItems, err := s.local.ListItems(ctx)
	if err != nil {
		s.logger.Error("failed to read local items before migration", "error", err)
		localItems = nil
	}

	if len(localItems) > 0 {
		if !s.migrate(ctx, remote, localItems, user.ID) {
			// Local data is intact; stay anonymous so the next
			// sign-in retries the migration.
			s.switchToLocal()
			return
		}
	}

	s.mu.Lock()
	s.state = StateSynced
	s.backend = remote
	s.loading = true
	s.mu.Unlock()
	backendSwitches.WithLabelValues(string(StateSynced)).Inc()

	stop := remote.Watch(s.reload)
	s.mu.Lock()
	s.stopWatch = stop
	s.mu.Unlock()
	s.logger.Info("inventory backend switched", "state", StateSynced, "user_id", user.ID)
}

// migrate moves the local snapshot into the user's remote collection as one
// atomic batch, then drains local storage so a later sign-in finds nothing
// to migrate. Reports whether the batch committed.
func (s *InventoryService) migrate(ctx context.Context, remote *remotestore.Items, items []models.Item, userID string) bool {
	s.mu.Lock()
	s.state = StateMigrating
	s.loading = true
	s.mu.Unlock()
	backendSwitches.WithLabelValues(string(StateMigrating)).Inc()
	s.notifySubscribers()

	icons, err := s.local.CategoryIcons(ctx)
	if err != nil {
		s.logger.Error("failed to read local category icons before migration", "error", err)
		icons = nil
	}

	if err := remote.Import(ctx, items, icons); err != nil {
		migrationFailures.Inc()
		s.logger.Error("inventory migration failed, keeping local data",
			"user_id", userID, "items", len(items), "error", err)
		return false
	}
	migrationsTotal.Inc()

	if err := s.local.Clear(ctx); err != nil {
		// Item ids survive migration unchanged, so if this clear is
		// lost the next sign-in re-imports the same documents as
		// harmless overwrites.
		s.logger.Warn("failed to clear local store after migration", "error", err)
	}

	s.logger.Info("local inventory migrated", "user_id", userID, "items", len(items))
	return true
}

func (s *InventoryService) switchToLocal() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.backend = s.local
	s.mu.Unlock()
	backendSwitches.WithLabelValues(string(StateAnonymous)).Inc()

	stop := s.local.Watch(s.reload)
	s.mu.Lock()
	s.stopWatch = stop
	s.mu.Unlock()

	s.reload()
	s.logger.Info("inventory backend switched", "state", StateAnonymous)
}

// reload re-reads canonical state from the active backend. Invoked by the
// backend watch on every change, in the order changes are observed.
func (s *InventoryService) reload() {
	ctx := context.Background()

	s.mu.Lock()
	backend := s.backend
	s.mu.Unlock()
	if backend == nil {
		return
	}

	items, err := backend.ListItems(ctx)
	if err != nil {
		s.logger.Error("failed to load items", "error", err)
		return
	}
	icons, err := backend.CategoryIcons(ctx)
	if err != nil {
		s.logger.Error("failed to load category icons", "error", err)
		return
	}
	if icons == nil {
		icons = map[string]string{}
	}

	s.mu.Lock()
	s.items = items
	s.icons = icons
	s.loading = false
	s.mu.Unlock()

	s.notifySubscribers()
}

// AddItem creates a new item from the draft and appends it to the active
// backend. A categoryIcon supplied alongside the category also upserts the
// icon map.
func (s *InventoryService) AddItem(ctx context.Context, draft models.Draft) error {
	item := models.NewItem(draft, s.now())
	backend := s.activeBackend()

	if err := backend.PutItem(ctx, item); err != nil {
		writeFailures.Inc()
		s.logger.Error("add item failed", "item_id", item.ID, "error", err)
		return fmt.Errorf("add item: %w", err)
	}

	if icon := models.EnsureString(draft.CategoryIcon, ""); icon != "" && draft.Category != nil {
		if err := backend.PutCategoryIcon(ctx, item.Category, icon); err != nil {
			writeFailures.Inc()
			s.logger.Error("category icon write failed", "category", item.Category, "error", err)
			return fmt.Errorf("set category icon: %w", err)
		}
	}

	s.logger.Debug("item added", "item_id", item.ID, "name", item.Name)
	return nil
}

// UpdateItem merges the draft over the stored item. Unknown ids are a
// no-op. Supplying both a new category and a categoryIcon also updates the
// icon map.
func (s *InventoryService) UpdateItem(ctx context.Context, id string, draft models.Draft) error {
	s.mu.Lock()
	backend := s.backend
	var updated *models.Item
	for i := range s.items {
		if s.items[i].ID == id {
			clone := s.items[i]
			updated = &clone
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		s.logger.Debug("update for unknown item ignored", "item_id", id)
		return nil
	}

	updated.Apply(draft, s.now())

	if err := backend.PutItem(ctx, *updated); err != nil {
		writeFailures.Inc()
		s.logger.Error("update item failed", "item_id", id, "error", err)
		return fmt.Errorf("update item: %w", err)
	}

	if icon := models.EnsureString(draft.CategoryIcon, ""); icon != "" && draft.Category != nil {
		if err := backend.PutCategoryIcon(ctx, updated.Category, icon); err != nil {
			writeFailures.Inc()
			s.logger.Error("category icon write failed", "category", updated.Category, "error", err)
			return fmt.Errorf("set category icon: %w", err)
		}
	}
	return nil
}

// DeleteItem removes the item. Deleting an id that does not exist is not an
// error, so the operation is idempotent.
func (s *InventoryService) DeleteItem(ctx context.Context, id string) error {
	if err := s.activeBackend().DeleteItem(ctx, id); err != nil {
		writeFailures.Inc()
		s.logger.Error("delete item failed", "item_id", id, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// IncrementItem raises the item's quantity by one.
func (s *InventoryService) IncrementItem(ctx context.Context, id string) error {
	quantity, ok := s.quantityOf(id)
	if !ok {
		return nil
	}
	return s.UpdateItem(ctx, id, models.Draft{Quantity: quantity + 1})
}

// DecrementItem lowers the item's quantity by one, clamping at zero.
func (s *InventoryService) DecrementItem(ctx context.Context, id string) error {
	quantity, ok := s.quantityOf(id)
	if !ok {
		return nil
	}
	next := quantity - 1
	if next < 0 {
		next = 0
	}
	return s.UpdateItem(ctx, id, models.Draft{Quantity: next})
}

// SetCategoryIcon upserts one category-icon entry, independent of any item
// mutation.
func (s *InventoryService) SetCategoryIcon(ctx context.Context, category, icon string) error {
	if err := s.activeBackend().PutCategoryIcon(ctx, category, icon); err != nil {
		writeFailures.Inc()
		s.logger.Error("category icon write failed", "category", category, "error", err)
		return fmt.Errorf("set category icon: %w", err)
	}
	return nil
}

// Items returns a copy of the canonical item list.
func (s *InventoryService) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.Item, len(s.items))
	copy(items, s.items)
	return items
}

// CategoryIcons returns a copy of the canonical category-icon map.
func (s *InventoryService) CategoryIcons() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	icons := make(map[string]string, len(s.icons))
	for category, icon := range s.icons {
		icons[category] = icon
	}
	return icons
}

// Stats derives the dashboard aggregates from the canonical item list.
func (s *InventoryService) Stats() models.Stats {
	return calculator.ComputeStats(s.Items(), s.now())
}

// State reports the current backend-selection state.
func (s *InventoryService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether the canonical state has not yet caught up with
// the active backend.
func (s *InventoryService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Subscribe registers a callback fired after every canonical state change.
// The returned func unsubscribes.
func (s *InventoryService) Subscribe(fn func()) (stop func()) {
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

func (s *InventoryService) activeBackend() storage.ItemBackend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend
}

func (s *InventoryService) quantityOf(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item.Quantity, true
		}
	}
	return 0, false
}

func (s *InventoryService) notifySubscribers() {
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
