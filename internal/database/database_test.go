package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/playperu/geoguess/internal/database"
)

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "geoguess.db")

	db, err := database.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal mode = %q, want wal", mode)
	}
}

func TestMemoryDatabaseSharesState(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.Memory)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `CREATE TABLE t (v INTEGER)`); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO t (v) VALUES (1)`); err != nil {
		t.Fatalf("inserting: %v", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM t`).Scan(&n); err != nil {
		t.Fatalf("counting: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}

	if err := (database.Checker{DB: db}).Check(ctx); err != nil {
		t.Errorf("check: %v", err)
	}
}
