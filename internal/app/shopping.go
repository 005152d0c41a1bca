package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-planner/internal/shared"
	"recipe-planner/internal/shopping"

	"github.com/google/uuid"
)

// CreateList creates an empty shopping list.
func (a *App) CreateList(ctx context.Context, owner uuid.UUID, name string) (list *shopping.ShoppingList, err error) {
	defer a.track("create list", time.Now(), &err)
	return a.ledger.CreateList(ctx, owner, name)
}

// RenameList renames a shopping list.
func (a *App) RenameList(ctx context.Context, owner uuid.UUID, listID int64, name string) (err error) {
	defer a.track("rename list", time.Now(), &err)
	return a.ledger.RenameList(ctx, owner, listID, name)
}

// DeleteList deletes a shopping list and everything on it.
func (a *App) DeleteList(ctx context.Context, owner uuid.UUID, listID int64) (err error) {
	defer a.track("delete list", time.Now(), &err)
	return a.ledger.DeleteList(ctx, owner, listID)
}

// Lists returns the owner's shopping lists with item counts.
func (a *App) Lists(ctx context.Context, owner uuid.UUID) (lists []shopping.Summary, err error) {
	defer a.track("list lists", time.Now(), &err)
	return a.ledger.Lists(ctx, owner)
}

// List returns one shopping list with all of its items.
func (a *App) List(ctx context.Context, owner uuid.UUID, listID int64) (list *shopping.ShoppingList, err error) {
	defer a.track("get list", time.Now(), &err)
	return a.ledger.List(ctx, owner, listID)
}

// AddQuantity merges amount of an ingredient into a list for source.
func (a *App) AddQuantity(ctx context.Context, owner uuid.UUID, listID, ingredientID int64, source shopping.Source, amount int) (entry *shopping.QuantityEntry, err error) {
	defer a.track("add quantity", time.Now(), &err)
	return a.ledger.AddQuantity(ctx, owner, listID, ingredientID, source, amount)
}

// AddRecipeToList adds a recipe's ingredients to a list. With no items the
// recipe's stored quantities are used.
func (a *App) AddRecipeToList(ctx context.Context, owner uuid.UUID, listID, recipeID int64, items []shopping.Contribution) (entries []shopping.QuantityEntry, err error) {
	defer a.track("add recipe", time.Now(), &err)
	return a.ledger.AddRecipe(ctx, owner, listID, recipeID, items)
}

// UpdateQuantity overwrites a quantity entry.
func (a *App) UpdateQuantity(ctx context.Context, owner uuid.UUID, listID, entryID int64, amount int) (err error) {
	defer a.track("update quantity", time.Now(), &err)
	return a.ledger.UpdateQuantity(ctx, owner, listID, entryID, amount)
}

// RemoveQuantity deletes one quantity entry.
func (a *App) RemoveQuantity(ctx context.Context, owner uuid.UUID, listID, entryID int64) (res shopping.CleanupResult, err error) {
	defer a.track("remove quantity", time.Now(), &err)
	return a.ledger.RemoveQuantity(ctx, owner, listID, entryID)
}

// RemoveSource deletes everything source contributed to a list.
func (a *App) RemoveSource(ctx context.Context, owner uuid.UUID, listID int64, source shopping.Source) (n int, err error) {
	defer a.track("remove source", time.Now(), &err)
	return a.ledger.RemoveAllForSource(ctx, owner, listID, source)
}

// RemoveFromList drops an ingredient and all its quantities from a list.
func (a *App) RemoveFromList(ctx context.Context, owner uuid.UUID, listID, ingredientID int64) (err error) {
	defer a.track("remove ingredient", time.Now(), &err)
	return a.ledger.RemoveIngredient(ctx, owner, listID, ingredientID)
}

// ToggleChecked flips the checked flag of an ingredient on a list.
func (a *App) ToggleChecked(ctx context.Context, owner uuid.UUID, listID, ingredientID int64) (checked bool, err error) {
	defer a.track("toggle checked", time.Now(), &err)
	return a.ledger.ToggleChecked(ctx, owner, listID, ingredientID)
}

// ResolveList finds a shopping list by id or by case-insensitive name.
func (a *App) ResolveList(ctx context.Context, owner uuid.UUID, ref string) (*shopping.Summary, error) {
	lists, err := a.ledger.Lists(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if matchesRef(ref, lists[i].ID, lists[i].Name) {
			return &lists[i], nil
		}
	}
	return nil, shared.NotFound(fmt.Sprintf("shopping list %q", strings.TrimSpace(ref)))
}
