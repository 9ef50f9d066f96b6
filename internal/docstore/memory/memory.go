// Package memory provides an in-memory docstore.Store, used by tests and by
// wiring code that runs without a remote backend. Writes notify subscribers
// synchronously, so a caller observes its own change as soon as the write
// returns.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/wellhouse/stockroom/internal/docstore"
)

// ErrWritesDisabled is returned for every write while FailWrites is set.
var ErrWritesDisabled = errors.New("memory docstore: writes disabled")

// Ensure Store implements docstore.Store
var _ docstore.Store = (*Store)(nil)

type collectionKey struct {
	owner      string
	collection string
}

type subscriber struct {
	id         int
	collection func([]docstore.Document)
	document   func(map[string]any)
	path       docstore.Path
	key        collectionKey
}

// Store is a mutex-guarded in-memory document store.
type Store struct {
	mu         sync.Mutex
	docs       map[string]map[string]any // Path.String() -> data
	subs       map[int]*subscriber
	nextSub    int
	writes     int
	failWrites bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		docs: make(map[string]map[string]any),
		subs: make(map[int]*subscriber),
	}
}

// SetFailWrites makes every subsequent write (including batch commits) fail
// with ErrWritesDisabled. Used to exercise failure paths in tests.
func (s *Store) SetFailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

// Writes reports how many documents have been written since creation.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// GetDocument returns the document at path, with ok=false when absent.
func (s *Store) GetDocument(_ context.Context, path docstore.Path) (map[string]any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[path.String()]
	if !ok {
		return nil, false, nil
	}
	return docstore.CloneDoc(data), true, nil
}

// SetDocument writes (or merge-writes) the document at path and notifies
// subscribers of the affected collection and document.
func (s *Store) SetDocument(_ context.Context, path docstore.Path, data map[string]any, merge bool) error {
	s.mu.Lock()
	if s.failWrites {
		s.mu.Unlock()
		return ErrWritesDisabled
	}
	s.apply(path, data, merge)
	notify := s.pendingNotifications(path)
	s.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	return nil
}

// DeleteDocument removes the document at path; deleting a missing document
// is a no-op that still succeeds (and notifies nobody).
func (s *Store) DeleteDocument(_ context.Context, path docstore.Path) error {
	s.mu.Lock()
	if s.failWrites {
		s.mu.Unlock()
		return ErrWritesDisabled
	}
	if _, ok := s.docs[path.String()]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.docs, path.String())
	s.writes++
	notify := s.pendingNotifications(path)
	s.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	return nil
}

// ListCollection returns all documents under owner/collection, ordered by id.
func (s *Store) ListCollection(_ context.Context, owner, collection string) ([]docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotCollection(collectionKey{owner, collection}), nil
}

// SubscribeCollection registers onChange for every change to the collection
// and delivers the current snapshot immediately.
func (s *Store) SubscribeCollection(_ context.Context, owner, collection string, onChange func([]docstore.Document)) (func(), error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	key := collectionKey{owner, collection}
	s.subs[id] = &subscriber{id: id, collection: onChange, key: key}
	snapshot := s.snapshotCollection(key)
	s.mu.Unlock()

	onChange(snapshot)
	return func() { s.unsubscribe(id) }, nil
}

// SubscribeDocument registers onChange for every change to one document and
// delivers the current contents immediately (nil when absent).
func (s *Store) SubscribeDocument(_ context.Context, path docstore.Path, onChange func(map[string]any)) (func(), error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = &subscriber{id: id, document: onChange, path: path}
	snapshot := docstore.CloneDoc(s.docs[path.String()])
	s.mu.Unlock()

	onChange(snapshot)
	return func() { s.unsubscribe(id) }, nil
}

// Batch starts an atomic write batch.
func (s *Store) Batch() docstore.Batch {
	return &batch{store: s}
}

func (s *Store) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// apply mutates the store; caller holds the lock.
func (s *Store) apply(path docstore.Path, data map[string]any, merge bool) {
	key := path.String()
	if merge {
		s.docs[key] = docstore.MergeDoc(s.docs[key], data)
	} else {
		s.docs[key] = docstore.CloneDoc(data)
	}
	s.writes++
}

// pendingNotifications builds the callback invocations for a changed path.
// Caller holds the lock; the returned closures are invoked after release so
// a callback may re-enter the store.
func (s *Store) pendingNotifications(path docstore.Path) []func() {
	var notify []func()
	key := collectionKey{path.Owner, path.Collection}
	for _, sub := range s.subs {
		switch {
		case sub.collection != nil && sub.key == key:
			fn := sub.collection
			snapshot := s.snapshotCollection(key)
			notify = append(notify, func() { fn(snapshot) })
		case sub.document != nil && sub.path == path:
			fn := sub.document
			snapshot := docstore.CloneDoc(s.docs[path.String()])
			notify = append(notify, func() { fn(snapshot) })
		}
	}
	return notify
}

// snapshotCollection copies a collection ordered by document id; caller
// holds the lock.
func (s *Store) snapshotCollection(key collectionKey) []docstore.Document {
	prefix := key.owner + "/" + key.collection + "/"
	var docs []docstore.Document
	for stored, data := range s.docs {
		if len(stored) > len(prefix) && stored[:len(prefix)] == prefix {
			docs = append(docs, docstore.Document{
				ID:   stored[len(prefix):],
				Data: docstore.CloneDoc(data),
			})
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

type batchOp struct {
	path   docstore.Path
	data   map[string]any
	merge  bool
	remove bool
}

type batch struct {
	store *Store
	ops   []batchOp
}

func (b *batch) Set(path docstore.Path, data map[string]any, merge bool) {
	b.ops = append(b.ops, batchOp{path: path, data: docstore.CloneDoc(data), merge: merge})
}

func (b *batch) Delete(path docstore.Path) {
	b.ops = append(b.ops, batchOp{path: path, remove: true})
}

// Commit applies every queued operation under one lock: all or nothing.
func (b *batch) Commit(_ context.Context) error {
	s := b.store

	s.mu.Lock()
	if s.failWrites {
		s.mu.Unlock()
		return ErrWritesDisabled
	}
	touched := make(map[docstore.Path]struct{})
	for _, op := range b.ops {
		if op.remove {
			delete(s.docs, op.path.String())
			s.writes++
		} else {
			s.apply(op.path, op.data, op.merge)
		}
		touched[op.path] = struct{}{}
	}
	var notify []func()
	for path := range touched {
		notify = append(notify, s.pendingNotifications(path)...)
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	return nil
}
