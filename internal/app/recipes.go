package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-planner/internal/clipper"
	"recipe-planner/internal/ingredient"
	"recipe-planner/internal/recipe"
	"recipe-planner/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRecipe stores a recipe.
func (a *App) CreateRecipe(ctx context.Context, owner uuid.UUID, name string, items []recipe.ItemInput) (rec *recipe.Recipe, err error) {
	defer a.track("create recipe", time.Now(), &err)
	return a.recipes.Create(ctx, owner, name, items)
}

// Recipes lists the owner's recipes.
func (a *App) Recipes(ctx context.Context, owner uuid.UUID) (list []recipe.Summary, err error) {
	defer a.track("list recipes", time.Now(), &err)
	return a.recipes.List(ctx, owner)
}

// Recipe returns a recipe with its items.
func (a *App) Recipe(ctx context.Context, owner uuid.UUID, id int64) (rec *recipe.Recipe, err error) {
	defer a.track("get recipe", time.Now(), &err)
	return a.recipes.Get(ctx, owner, id)
}

// RenameRecipe renames a recipe.
func (a *App) RenameRecipe(ctx context.Context, owner uuid.UUID, id int64, name string) (err error) {
	defer a.track("rename recipe", time.Now(), &err)
	return a.recipes.Rename(ctx, owner, id, name)
}

// SetRecipeItems replaces a recipe's ingredient lines.
func (a *App) SetRecipeItems(ctx context.Context, owner uuid.UUID, id int64, items []recipe.ItemInput) (err error) {
	defer a.track("set recipe items", time.Now(), &err)
	return a.recipes.SetItems(ctx, owner, id, items)
}

// DeleteRecipe deletes a recipe together with whatever it contributed to
// the owner's shopping lists, in one transaction.
func (a *App) DeleteRecipe(ctx context.Context, owner uuid.UUID, id int64) (err error) {
	defer a.track("delete recipe", time.Now(), &err)
	return a.recipes.Delete(ctx, owner, id, func(ctx context.Context, tx *sql.Tx, owner uuid.UUID, id int64) error {
		res, err := a.ledger.ForgetRecipeTx(ctx, tx, owner, id)
		if err != nil {
			return err
		}
		a.logger.Debug("recipe contributions removed",
			zap.Int64("recipe_id", id),
			zap.Int("entries", res.EntriesDeleted),
			zap.Int("ingredients", res.ParentsDeleted),
		)
		return nil
	})
}

// ImportResult describes a recipe created from a web page.
type ImportResult struct {
	Recipe    *recipe.Recipe `json:"recipe"`
	Created   []string       `json:"created,omitempty"`
	Unmatched []string       `json:"unmatched,omitempty"`
}

// ImportRecipe clips a recipe page and stores it. Lines are matched to the
// owner's ingredients by name; with createMissing the rest become new
// ingredients, otherwise they are reported as unmatched. New ingredients and
// the recipe are written in one transaction.
func (a *App) ImportRecipe(ctx context.Context, owner uuid.UUID, url string, createMissing bool) (res *ImportResult, err error) {
	defer a.track("import recipe", time.Now(), &err)

	clipped, err := a.clipper.ClipURL(ctx, url)
	if err != nil {
		if errors.Is(err, clipper.ErrNoRecipe) {
			return nil, shared.Invalid(err.Error())
		}
		return nil, fmt.Errorf("failed to clip recipe: %w", err)
	}

	for _, line := range clipped.Lines {
		if line.Quantity < 1 {
			return nil, shared.Invalid(fmt.Sprintf("unusable quantity in %q", line.Raw))
		}
	}

	existing, err := a.ingredients.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	// Units are resolved up front so the write transaction only writes.
	units := make(map[string]int64)
	if createMissing {
		for _, line := range clipped.Lines {
			if _, ok := units[line.Unit]; !ok {
				units[line.Unit] = a.unitFor(ctx, line)
			}
		}
	}

	name := clipped.Title
	if name == "" {
		name = url
	}

	var id int64
	err = a.db.WithTx(ctx, func(tx *sql.Tx) error {
		res = &ImportResult{}
		known := append([]ingredient.Ingredient(nil), existing...)

		var items []recipe.ItemInput
		for _, line := range clipped.Lines {
			if ing := matchIngredient(known, line.Name); ing != nil {
				items = append(items, recipe.ItemInput{IngredientID: ing.ID, Quantity: line.Quantity})
				continue
			}
			if !createMissing {
				res.Unmatched = append(res.Unmatched, line.Raw)
				continue
			}

			created, err := a.sequencer.InsertTx(ctx, tx, owner, ingredient.NewIngredient{
				Name:   line.Name,
				UnitID: units[line.Unit],
			})
			if err != nil {
				return err
			}
			known = append(known, *created)
			res.Created = append(res.Created, created.Name)
			items = append(items, recipe.ItemInput{IngredientID: created.ID, Quantity: line.Quantity})
		}

		if len(items) == 0 {
			return shared.Invalid("none of the recipe's ingredients are known")
		}

		var err error
		id, err = a.recipes.CreateTx(ctx, tx, owner, name, items)
		return err
	})
	if err != nil {
		return nil, shared.Classify("import recipe", err)
	}

	res.Recipe, err = a.recipes.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("recipe imported",
		zap.Int64("recipe_id", id),
		zap.Int("created", len(res.Created)),
		zap.Int("unmatched", len(res.Unmatched)),
	)
	return res, nil
}

func (a *App) unitFor(ctx context.Context, line clipper.Line) int64 {
	for _, name := range []string{line.Unit, "pcs"} {
		if name == "" {
			continue
		}
		if u, err := a.ingredients.UnitByName(ctx, name); err == nil {
			return u.ID
		}
	}
	return 0
}

// matchIngredient prefers an exact name match, then the longest ingredient
// name contained in the line.
func matchIngredient(list []ingredient.Ingredient, name string) *ingredient.Ingredient {
	name = strings.ToLower(strings.TrimSpace(name))
	var best *ingredient.Ingredient
	for i := range list {
		candidate := strings.ToLower(list[i].Name)
		if candidate == name {
			return &list[i]
		}
		if strings.Contains(name, candidate) && (best == nil || len(candidate) > len(best.Name)) {
			best = &list[i]
		}
	}
	return best
}

// ResolveRecipe finds a recipe by id or by case-insensitive name.
func (a *App) ResolveRecipe(ctx context.Context, owner uuid.UUID, ref string) (*recipe.Summary, error) {
	list, err := a.recipes.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if matchesRef(ref, list[i].ID, list[i].Name) {
			return &list[i], nil
		}
	}
	return nil, shared.NotFound(fmt.Sprintf("recipe %q", strings.TrimSpace(ref)))
}
