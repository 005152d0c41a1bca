// Package dbtest opens throwaway migrated databases for package tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"recipe-planner/internal/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// New returns a migrated database living in the test's temp dir.
func New(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// CreateUser inserts a user row and returns its id.
func CreateUser(t *testing.T, db *database.DB, username string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.SQL.Exec(
		"INSERT INTO users (id, username, created_at) VALUES (?, ?, ?)",
		id.String(), username, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return id
}

// UnitID looks up a seeded unit by name.
func UnitID(t *testing.T, db *database.DB, name string) int64 {
	t.Helper()
	var id int64
	if err := db.SQL.QueryRow("SELECT id FROM units WHERE name = ?", name).Scan(&id); err != nil {
		t.Fatalf("Failed to find unit %s: %v", name, err)
	}
	return id
}

// CreateIngredient appends an ingredient (unit "g") to the owner's list.
func CreateIngredient(t *testing.T, db *database.DB, owner uuid.UUID, name string) int64 {
	t.Helper()
	var id int64
	err := db.SQL.QueryRow(`
		INSERT INTO ingredients (user_id, name, unit_id, sort)
		VALUES (?, ?, (SELECT id FROM units WHERE name = 'g'),
		        (SELECT COALESCE(MAX(sort), 0) + 1 FROM ingredients WHERE user_id = ?))
		RETURNING id`,
		owner.String(), name, owner.String(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create ingredient %s: %v", name, err)
	}
	return id
}

// CreateRecipe inserts a recipe with the given ingredient quantities.
func CreateRecipe(t *testing.T, db *database.DB, owner uuid.UUID, name string, quantities map[int64]int) int64 {
	t.Helper()
	now := time.Now().UTC()
	var id int64
	err := db.SQL.QueryRow(
		"INSERT INTO recipes (user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id",
		owner.String(), name, now, now,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create recipe %s: %v", name, err)
	}
	for ingredientID, qty := range quantities {
		if _, err := db.SQL.Exec(
			"INSERT INTO recipe_quantities (recipe_id, ingredient_id, quantity) VALUES (?, ?, ?)",
			id, ingredientID, qty,
		); err != nil {
			t.Fatalf("Failed to add quantity to recipe %s: %v", name, err)
		}
	}
	return id
}

// Count runs a COUNT(*) style query and returns the result.
func Count(t *testing.T, db *database.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.SQL.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	return n
}
