package db

import (
	"path/filepath"
	"testing"
)

func TestInitSQLite_CreatesSchemaAndEnablesForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chaset.db")
	db, d, err := Open("sqlite", path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if d != SQLite {
		t.Fatalf("dialect = %q, want sqlite", d)
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys;").Scan(&fk); err != nil {
		t.Fatalf("query pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d, want 1", fk)
	}

	for _, table := range []string{"users", "transactions", "credentials"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// schema creation is idempotent
	db2, err := InitSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = db2.Close()
}
