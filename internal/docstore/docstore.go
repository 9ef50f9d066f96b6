// Package docstore defines the remote document-store capability the sync
// cores depend on: per-owner collections of JSON-like documents with reads,
// merge-aware writes, deletes, change subscriptions, and atomic batches.
//
// This abstraction allows swapping document backends (in-memory, Postgres,
// a hosted document database) without changing the sync cores.
package docstore

import "context"

// Path addresses a single document: owner scopes everything to one user,
// collection names the group, doc identifies the document within it.
type Path struct {
	Owner      string
	Collection string
	Doc        string
}

func (p Path) String() string {
	return p.Owner + "/" + p.Collection + "/" + p.Doc
}

// Document is one stored document together with its id within the collection.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the document-store capability.
//
// Merge semantics: SetDocument with merge=true deep-merges the supplied data
// into the existing document, nested map values included, leaving untouched
// fields intact; merge=false replaces the document wholesale. Deleting a
// missing document is a no-op.
//
// Subscriptions deliver an initial snapshot on registration and then fire,
// in the order writes are applied, on every change to the watched
// collection or document. The returned func unsubscribes.
type Store interface {
	GetDocument(ctx context.Context, path Path) (map[string]any, bool, error)
	SetDocument(ctx context.Context, path Path, data map[string]any, merge bool) error
	DeleteDocument(ctx context.Context, path Path) error
	ListCollection(ctx context.Context, owner, collection string) ([]Document, error)
	SubscribeCollection(ctx context.Context, owner, collection string, onChange func([]Document)) (func(), error)
	SubscribeDocument(ctx context.Context, path Path, onChange func(map[string]any)) (func(), error)

	// Batch starts an atomic write batch: queued sets and deletes commit
	// together or not at all.
	Batch() Batch
}

// Batch queues document writes for a single atomic commit.
type Batch interface {
	Set(path Path, data map[string]any, merge bool)
	Delete(path Path)
	Commit(ctx context.Context) error
}
