package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"recipe-planner/internal/recipe"
	"recipe-planner/internal/shared"

	"github.com/google/go-cmp/cmp"
)

func TestRecipeStore(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewRecipeStore(filepath.Join(tempDir, "export"))
	if err != nil {
		t.Fatalf("Failed to create RecipeStore: %v", err)
	}

	v1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &recipe.Recipe{
		ID:        7,
		Name:      "Pancakes",
		CreatedAt: v1,
		UpdatedAt: v1,
		Items: []recipe.Item{
			{IngredientID: 1, Name: "flour", Unit: "g", Quantity: 200},
			{IngredientID: 2, Name: "eggs", Unit: "pcs", Quantity: 2},
		},
	}

	t.Run("CheckExists-False", func(t *testing.T) {
		if store.Exists(rec.ID, v1) {
			t.Errorf("Expected recipe %d to not exist, but it does", rec.ID)
		}
	})

	t.Run("Save", func(t *testing.T) {
		if err := store.Save(rec); err != nil {
			t.Fatalf("Failed to save recipe: %v", err)
		}
		if !store.Exists(rec.ID, v1) {
			t.Errorf("Expected recipe %d to exist, but it doesn't", rec.ID)
		}
	})

	t.Run("Load", func(t *testing.T) {
		loaded, err := store.Load(rec.ID, v1)
		if err != nil {
			t.Fatalf("Failed to load recipe: %v", err)
		}
		if diff := cmp.Diff(rec, loaded); diff != "" {
			t.Errorf("loaded recipe mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("NewVersionReplacesOld", func(t *testing.T) {
		v2 := v1.Add(time.Hour)
		next := *rec
		next.Name = "Fluffy Pancakes"
		next.UpdatedAt = v2
		if err := store.Save(&next); err != nil {
			t.Fatalf("Failed to save recipe: %v", err)
		}

		if store.Exists(rec.ID, v1) {
			t.Error("Expected the old version to be removed")
		}
		files, _ := os.ReadDir(filepath.Join(tempDir, "export"))
		if len(files) != 1 {
			t.Errorf("Expected 1 file, got %d", len(files))
		}
	})

	t.Run("All", func(t *testing.T) {
		other := &recipe.Recipe{ID: 3, Name: "Soup", UpdatedAt: v1}
		if err := store.Save(other); err != nil {
			t.Fatalf("Failed to save recipe: %v", err)
		}

		all, err := store.All()
		if err != nil {
			t.Fatalf("Failed to list recipes: %v", err)
		}
		if len(all) != 2 || all[0].Name != "Soup" || all[1].Name != "Fluffy Pancakes" {
			t.Errorf("unexpected recipes: %+v", all)
		}
	})

	t.Run("Load-NotFound", func(t *testing.T) {
		_, err := store.Load(99, v1)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})
}
