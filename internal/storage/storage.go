// Package storage keeps JSON snapshots of recipes on disk, one file per
// recipe version.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"recipe-planner/internal/recipe"
	"recipe-planner/internal/shared"
)

// versionLayout names a snapshot after the recipe's last update.
const versionLayout = "20060102T150405.000000000Z"

// RecipeStore provides a file-based storage for recipe snapshots.
type RecipeStore struct {
	basePath string
}

// NewRecipeStore creates a new RecipeStore and ensures the base directory exists.
func NewRecipeStore(basePath string) (*RecipeStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &RecipeStore{basePath: basePath}, nil
}

// getVersionedPath returns the full path for a given recipe ID and version.
func (s *RecipeStore) getVersionedPath(recipeID int64, updatedAt time.Time) string {
	filename := fmt.Sprintf("%d_%s.json", recipeID, updatedAt.UTC().Format(versionLayout))
	return filepath.Join(s.basePath, filename)
}

// Save writes a snapshot of rec, replacing older versions of the same recipe.
func (s *RecipeStore) Save(rec *recipe.Recipe) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := s.RemoveStaleVersions(rec.ID); err != nil {
		return err
	}

	filePath := s.getVersionedPath(rec.ID, rec.UpdatedAt)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load reads a specific snapshot.
func (s *RecipeStore) Load(recipeID int64, updatedAt time.Time) (*recipe.Recipe, error) {
	return s.load(s.getVersionedPath(recipeID, updatedAt))
}

// Exists checks if a specific version of a recipe has been written.
func (s *RecipeStore) Exists(recipeID int64, updatedAt time.Time) bool {
	_, err := os.Stat(s.getVersionedPath(recipeID, updatedAt))
	return err == nil
}

// RemoveStaleVersions removes all files associated with a recipeID.
func (s *RecipeStore) RemoveStaleVersions(recipeID int64) error {
	matches, err := s.versions(recipeID)
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", match, err)
		}
	}
	return nil
}

// All loads the newest snapshot of every stored recipe, ordered by recipe id.
func (s *RecipeStore) All() ([]recipe.Recipe, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, "*_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob recipe files: %w", err)
	}
	// Versions sort lexically, so the last file per id wins.
	sort.Strings(matches)

	latest := make(map[int64]string)
	for _, m := range matches {
		prefix, _, _ := strings.Cut(filepath.Base(m), "_")
		id, err := strconv.ParseInt(prefix, 10, 64)
		if err != nil {
			continue
		}
		latest[id] = m
	}

	ids := make([]int64, 0, len(latest))
	for id := range latest {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	recipes := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		rec, err := s.load(latest[id])
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	return recipes, nil
}

func (s *RecipeStore) versions(recipeID int64) ([]string, error) {
	pattern := filepath.Join(s.basePath, fmt.Sprintf("%d_*.json", recipeID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob stale files: %w", err)
	}
	return matches, nil
}

func (s *RecipeStore) load(filePath string) (*recipe.Recipe, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, shared.NotFound("recipe snapshot")
		}
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var rec recipe.Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &rec, nil
}
