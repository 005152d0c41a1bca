package app

import (
	"context"
	"time"

	"recipe-planner/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportResult counts what an export wrote.
type ExportResult struct {
	Written   int `json:"written"`
	Unchanged int `json:"unchanged"`
}

// ExportRecipes writes a snapshot of every recipe to store. Recipes whose
// current version is already there are skipped.
func (a *App) ExportRecipes(ctx context.Context, owner uuid.UUID, store *storage.RecipeStore) (res ExportResult, err error) {
	defer a.track("export recipes", time.Now(), &err)

	list, err := a.recipes.List(ctx, owner)
	if err != nil {
		return res, err
	}

	for _, summary := range list {
		if store.Exists(summary.ID, summary.UpdatedAt) {
			res.Unchanged++
			continue
		}
		rec, err := a.recipes.Get(ctx, owner, summary.ID)
		if err != nil {
			return res, err
		}
		if err := store.Save(rec); err != nil {
			return res, err
		}
		res.Written++
	}

	a.logger.Info("recipes exported",
		zap.Int("written", res.Written),
		zap.Int("unchanged", res.Unchanged),
	)
	return res, nil
}
