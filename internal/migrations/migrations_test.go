package migrations_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/playperu/geoguess/internal/database"
	"github.com/playperu/geoguess/internal/migrations"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestMigrations(t *testing.T) {
	db, err := database.Open(context.Background(), database.Memory)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	version, err := migrations.Run(context.Background(), db, discard)
	if err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}

	want := []string{"questions", "goose_db_version"}

	for _, table := range want {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db, err := database.Open(context.Background(), database.Memory)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if _, err := migrations.Run(context.Background(), db, discard); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := migrations.Run(context.Background(), db, discard); err != nil {
		t.Fatalf("second run (should be no-op): %v", err)
	}
}
