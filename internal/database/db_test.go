package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNewDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "planner.db")

	db, err := NewDB(dbPath, zap.NewNop())
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer db.Close()

	t.Run("SeedsUnits", func(t *testing.T) {
		var count int
		if err := db.SQL.QueryRow("SELECT COUNT(*) FROM units").Scan(&count); err != nil {
			t.Fatalf("Failed to count units: %v", err)
		}
		if count != 8 {
			t.Errorf("Expected 8 seeded units, got %d", count)
		}
	})

	t.Run("ForeignKeysEnabled", func(t *testing.T) {
		var enabled int
		if err := db.SQL.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("Failed to read pragma: %v", err)
		}
		if enabled != 1 {
			t.Errorf("Expected foreign_keys=1, got %d", enabled)
		}
	})

	t.Run("MigrationsAreIdempotent", func(t *testing.T) {
		if err := RunMigrations(dbPath, zap.NewNop()); err != nil {
			t.Fatalf("Second migration run failed: %v", err)
		}
	})
}

func TestWithTx(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "tx.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	countUnits := func() int {
		t.Helper()
		var n int
		if err := db.SQL.QueryRow("SELECT COUNT(*) FROM units").Scan(&n); err != nil {
			t.Fatalf("Failed to count units: %v", err)
		}
		return n
	}
	before := countUnits()

	t.Run("Commit", func(t *testing.T) {
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO units (name) VALUES ('pinch')")
			return err
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}
		if got := countUnits(); got != before+1 {
			t.Errorf("Expected %d units after commit, got %d", before+1, got)
		}
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "INSERT INTO units (name) VALUES ('dash')"); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected boom, got %v", err)
		}
		if got := countUnits(); got != before+1 {
			t.Errorf("Expected rollback to keep %d units, got %d", before+1, got)
		}
	})

	t.Run("RollbackOnCancel", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		err := db.WithTx(cctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(cctx, "INSERT INTO units (name) VALUES ('handful')"); err != nil {
				return err
			}
			cancel()
			return cctx.Err()
		})
		if err == nil {
			t.Fatal("Expected an error for cancelled transaction, got nil")
		}
		if got := countUnits(); got != before+1 {
			t.Errorf("Expected cancelled tx to keep %d units, got %d", before+1, got)
		}
	})
}
