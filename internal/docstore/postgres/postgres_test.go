package postgres

import (
	"strings"
	"testing"

	"github.com/wellhouse/stockroom/internal/docstore"
)

func TestUpsertSQL(t *testing.T) {
	store := New(nil)
	path := docstore.Path{Owner: "user-1", Collection: "items", Doc: "abc"}

	query, err := store.upsertSQL(path, map[string]any{"name": "Milk"})
	if err != nil {
		t.Fatalf("upsertSQL: %v", err)
	}

	for _, fragment := range []string{
		`INSERT INTO "documents"`,
		`ON CONFLICT (owner, collection, doc_id) DO UPDATE`,
		`::jsonb`,
		`{"name":"Milk"}`,
		`'user-1'`,
		`'abc'`,
	} {
		if !strings.Contains(query, fragment) {
			t.Errorf("upsert SQL missing %q:\n%s", fragment, query)
		}
	}
}

func TestUpsertSQLCustomTable(t *testing.T) {
	store := New(nil, WithTableName("inventory_docs"))
	path := docstore.Path{Owner: "u", Collection: "settings", Doc: "shop"}

	query, err := store.upsertSQL(path, map[string]any{})
	if err != nil {
		t.Fatalf("upsertSQL: %v", err)
	}
	if !strings.Contains(query, `INSERT INTO "inventory_docs"`) {
		t.Errorf("expected custom table name in SQL:\n%s", query)
	}
}
