// Package postgres provides a Postgres-backed docstore.Store on top of
// pgx/v5, with SQL built by goqu. Documents live in a single jsonb table
// keyed by (owner, collection, doc_id); batches commit inside one
// transaction; subscriptions poll for changes.
package postgres

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"

	"github.com/wellhouse/stockroom/internal/docstore"
)

const (
	defaultTableName    = "documents"
	defaultPollInterval = 2 * time.Second

	colOwner      = "owner"
	colCollection = "collection"
	colDocID      = "doc_id"
	colData       = "data"
	colUpdatedAt  = "updated_at"

	dialectPostgres = "postgres"
	castJsonb       = "?::jsonb"
)

var json = jsoniter.ConfigFastest

// Ensure Store implements docstore.Store
var _ docstore.Store = (*Store)(nil)

// Store is a Postgres document store.
type Store struct {
	pool         *pgxpool.Pool
	tableName    string
	pollInterval time.Duration
	logger       *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTableName overrides the documents table name.
func WithTableName(name string) Option {
	return func(s *Store) { s.tableName = name }
}

// WithPollInterval overrides how often subscriptions poll for changes.
func WithPollInterval(interval time.Duration) Option {
	return func(s *Store) { s.pollInterval = interval }
}

// WithLogger sets the logger for subscription poll failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a Store over an existing pgx pool.
func New(pool *pgxpool.Pool, options ...Option) *Store {
	store := &Store{
		pool:         pool,
		tableName:    defaultTableName,
		pollInterval: defaultPollInterval,
		logger:       slog.Default(),
	}
	for _, option := range options {
		option(store)
	}
	return store
}

// EnsureSchema creates the documents table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		%s text NOT NULL,
		%s text NOT NULL,
		%s text NOT NULL,
		%s jsonb NOT NULL,
		%s timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (%s, %s, %s)
	)`, s.tableName, colOwner, colCollection, colDocID, colData, colUpdatedAt,
		colOwner, colCollection, colDocID)

	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

// GetDocument returns the document at path, with ok=false when absent.
func (s *Store) GetDocument(ctx context.Context, path docstore.Path) (map[string]any, bool, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(colData).
		Where(s.pathClause(path)).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build select query: %w", err)
	}

	var raw []byte
	row := s.pool.QueryRow(ctx, query)
	if scanErr := row.Scan(&raw); scanErr != nil {
		if scanErr == pgx.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get document: %w", scanErr)
	}

	data, err := decodeDoc(raw)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// SetDocument writes (or merge-writes) the document at path. Merge writes
// run read-modify-write inside a transaction so concurrent merges do not
// lose fields.
func (s *Store) SetDocument(ctx context.Context, path docstore.Path, data map[string]any, merge bool) error {
	if !merge {
		query, err := s.upsertSQL(path, data)
		if err != nil {
			return err
		}
		if _, execErr := s.pool.Exec(ctx, query); execErr != nil {
			return fmt.Errorf("failed to set document: %w", execErr)
		}
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err = s.mergeInTx(ctx, tx, path, data); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteDocument removes the document at path; missing documents are a no-op.
func (s *Store) DeleteDocument(ctx context.Context, path docstore.Path) error {
	query, _, err := goqu.Dialect(dialectPostgres).
		Delete(s.tableName).
		Where(s.pathClause(path)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}
	if _, execErr := s.pool.Exec(ctx, query); execErr != nil {
		return fmt.Errorf("failed to delete document: %w", execErr)
	}
	return nil
}

// ListCollection returns all documents under owner/collection ordered by id.
func (s *Store) ListCollection(ctx context.Context, owner, collection string) ([]docstore.Document, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(colDocID, colData).
		Where(goqu.Ex{colOwner: owner, colCollection: collection}).
		Order(goqu.I(colDocID).Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var id string
		var raw []byte
		if scanErr := rows.Scan(&id, &raw); scanErr != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", scanErr)
		}
		data, decodeErr := decodeDoc(raw)
		if decodeErr != nil {
			return nil, decodeErr
		}
		docs = append(docs, docstore.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

// SubscribeCollection polls the collection and invokes onChange whenever its
// contents differ from the last observed snapshot. The initial snapshot is
// delivered before SubscribeCollection returns.
func (s *Store) SubscribeCollection(ctx context.Context, owner, collection string, onChange func([]docstore.Document)) (func(), error) {
	docs, err := s.ListCollection(ctx, owner, collection)
	if err != nil {
		return nil, err
	}
	onChange(docs)
	last := fingerprintDocs(docs)

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				current, listErr := s.ListCollection(ctx, owner, collection)
				if listErr != nil {
					s.logger.Warn("collection poll failed",
						"owner", owner, "collection", collection, "error", listErr)
					continue
				}
				fp := fingerprintDocs(current)
				if !bytes.Equal(fp, last) {
					last = fp
					onChange(current)
				}
			}
		}
	}()
	return func() { close(stop) }, nil
}

// SubscribeDocument polls a single document; onChange receives nil when the
// document is absent.
func (s *Store) SubscribeDocument(ctx context.Context, path docstore.Path, onChange func(map[string]any)) (func(), error) {
	data, _, err := s.GetDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	onChange(data)
	last := fingerprintDoc(data)

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				current, _, getErr := s.GetDocument(ctx, path)
				if getErr != nil {
					s.logger.Warn("document poll failed", "path", path.String(), "error", getErr)
					continue
				}
				fp := fingerprintDoc(current)
				if !bytes.Equal(fp, last) {
					last = fp
					onChange(current)
				}
			}
		}
	}()
	return func() { close(stop) }, nil
}

// Batch starts a write batch that commits inside one transaction.
func (s *Store) Batch() docstore.Batch {
	return &batch{store: s}
}

func (s *Store) pathClause(path docstore.Path) goqu.Ex {
	return goqu.Ex{colOwner: path.Owner, colCollection: path.Collection, colDocID: path.Doc}
}

// upsertSQL builds the INSERT ... ON CONFLICT DO UPDATE statement for a full
// document write.
func (s *Store) upsertSQL(path docstore.Path, data map[string]any) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	query, _, err := goqu.Dialect(dialectPostgres).
		Insert(s.tableName).
		Rows(goqu.Record{
			colOwner:      path.Owner,
			colCollection: path.Collection,
			colDocID:      path.Doc,
			colData:       goqu.L(castJsonb, string(payload)),
			colUpdatedAt:  goqu.L("now()"),
		}).
		OnConflict(goqu.DoUpdate(
			fmt.Sprintf("%s, %s, %s", colOwner, colCollection, colDocID),
			goqu.Record{
				colData:      goqu.L(castJsonb, string(payload)),
				colUpdatedAt: goqu.L("now()"),
			},
		)).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("failed to build upsert query: %w", err)
	}
	return query, nil
}

// mergeInTx performs a locked read-modify-write merge of data into the
// document at path.
func (s *Store) mergeInTx(ctx context.Context, tx pgx.Tx, path docstore.Path, data map[string]any) error {
	selectSQL, _, err := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(colData).
		Where(s.pathClause(path)).
		ForUpdate(goqu.Wait).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build select query: %w", err)
	}

	existing := map[string]any{}
	var raw []byte
	scanErr := tx.QueryRow(ctx, selectSQL).Scan(&raw)
	switch scanErr {
	case nil:
		if existing, err = decodeDoc(raw); err != nil {
			return err
		}
	case pgx.ErrNoRows:
		// first write for this path
	default:
		return fmt.Errorf("failed to read document for merge: %w", scanErr)
	}

	merged := docstore.MergeDoc(existing, data)
	upsert, err := s.upsertSQL(path, merged)
	if err != nil {
		return err
	}
	if _, execErr := tx.Exec(ctx, upsert); execErr != nil {
		return fmt.Errorf("failed to write merged document: %w", execErr)
	}
	return nil
}

func decodeDoc(raw []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return data, nil
}

func fingerprintDocs(docs []docstore.Document) []byte {
	fp, _ := json.Marshal(docs)
	return fp
}

func fingerprintDoc(doc map[string]any) []byte {
	fp, _ := json.Marshal(doc)
	return fp
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
	b.ops = append(b.ops, batchOp{path: path, data: data, merge: merge})
}

func (b *batch) Delete(path docstore.Path) {
	b.ops = append(b.ops, batchOp{path: path, remove: true})
}

// Commit applies every queued operation in one transaction.
func (b *batch) Commit(ctx context.Context) error {
	s := b.store

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, op := range b.ops {
		switch {
		case op.remove:
			deleteSQL, _, buildErr := goqu.Dialect(dialectPostgres).
				Delete(s.tableName).
				Where(s.pathClause(op.path)).
				ToSQL()
			if buildErr != nil {
				return fmt.Errorf("failed to build delete query: %w", buildErr)
			}
			if _, execErr := tx.Exec(ctx, deleteSQL); execErr != nil {
				return fmt.Errorf("failed to delete document in batch: %w", execErr)
			}
		case op.merge:
			if mergeErr := s.mergeInTx(ctx, tx, op.path, op.data); mergeErr != nil {
				return mergeErr
			}
		default:
			upsert, buildErr := s.upsertSQL(op.path, op.data)
			if buildErr != nil {
				return buildErr
			}
			if _, execErr := tx.Exec(ctx, upsert); execErr != nil {
				return fmt.Errorf("failed to set document in batch: %w", execErr)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}
