package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"recipe-planner/internal/ingredient"
	"recipe-planner/internal/shared"

	"github.com/google/uuid"
)

// Units lists the known units.
func (a *App) Units(ctx context.Context) ([]ingredient.Unit, error) {
	return a.ingredients.Units(ctx)
}

// UnitByName resolves a unit name.
func (a *App) UnitByName(ctx context.Context, name string) (*ingredient.Unit, error) {
	return a.ingredients.UnitByName(ctx, name)
}

// Ingredients returns the owner's ingredients in list order.
func (a *App) Ingredients(ctx context.Context, owner uuid.UUID) (list []ingredient.Ingredient, err error) {
	defer a.track("list ingredients", time.Now(), &err)
	return a.ingredients.List(ctx, owner)
}

// AddIngredient inserts an ingredient, appending when no position is given.
func (a *App) AddIngredient(ctx context.Context, owner uuid.UUID, in ingredient.NewIngredient) (ing *ingredient.Ingredient, err error) {
	defer a.track("insert ingredient", time.Now(), &err)
	return a.sequencer.Insert(ctx, owner, in)
}

// MoveIngredient moves an ingredient and returns its new position.
func (a *App) MoveIngredient(ctx context.Context, owner uuid.UUID, id int64, position int) (pos int, err error) {
	defer a.track("move ingredient", time.Now(), &err)
	return a.sequencer.Move(ctx, owner, id, position)
}

// UpdateIngredient renames an ingredient or changes its unit.
func (a *App) UpdateIngredient(ctx context.Context, owner uuid.UUID, id int64, upd ingredient.IngredientUpdate) (err error) {
	defer a.track("update ingredient", time.Now(), &err)
	return a.ingredients.Update(ctx, owner, id, upd)
}

// DeleteIngredient removes an ingredient everywhere, including shopping lists.
func (a *App) DeleteIngredient(ctx context.Context, owner uuid.UUID, id int64) (err error) {
	defer a.track("delete ingredient", time.Now(), &err)
	return a.sequencer.Delete(ctx, owner, id)
}

// ResolveIngredient finds an ingredient by id or by case-insensitive name.
func (a *App) ResolveIngredient(ctx context.Context, owner uuid.UUID, ref string) (*ingredient.Ingredient, error) {
	list, err := a.ingredients.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if matchesRef(ref, list[i].ID, list[i].Name) {
			return &list[i], nil
		}
	}
	return nil, shared.NotFound(fmt.Sprintf("ingredient %q", strings.TrimSpace(ref)))
}

// matchesRef reports whether ref is the numeric id or the name.
func matchesRef(ref string, id int64, name string) bool {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return n == id
	}
	return strings.EqualFold(ref, name)
}
