package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recipe-planner/internal/database"
	"recipe-planner/internal/shared"
	shoppingdb "recipe-planner/internal/shopping/db"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuantityEntry is one source's contribution to a list ingredient.
type QuantityEntry struct {
	ID               int64  `json:"id"`
	ListIngredientID int64  `json:"list_ingredient_id"`
	IngredientID     int64  `json:"ingredient_id"`
	Source           Source `json:"source"`
	RecipeName       string `json:"recipe_name,omitempty"`
	Quantity         int    `json:"quantity"`
}

// Contribution is a quantity of one ingredient to add on behalf of a recipe.
type Contribution struct {
	IngredientID int64 `json:"ingredient_id"`
	Quantity     int   `json:"quantity"`
}

// Ledger consolidates quantities on shopping lists. Each (list, ingredient,
// source) has at most one entry; repeated adds are summed into it.
type Ledger struct {
	queries *shoppingdb.Queries
	db      *database.DB
	cleanup *Cleanup
	logger  *zap.Logger
}

// NewLedger creates a new Ledger.
func NewLedger(d *database.DB, logger *zap.Logger) *Ledger {
	return &Ledger{
		queries: shoppingdb.New(d.SQL),
		db:      d,
		cleanup: NewCleanup(logger),
		logger:  logger,
	}
}

// AddQuantity adds amount of an ingredient to a list on behalf of source,
// merging into the existing entry for that source.
func (l *Ledger) AddQuantity(ctx context.Context, owner uuid.UUID, listID, ingredientID int64, source Source, amount int) (*QuantityEntry, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}

	var entry *QuantityEntry
	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := l.queries.WithTx(tx)

		if err := checkList(ctx, q, owner, listID); err != nil {
			return err
		}
		if err := checkIngredient(ctx, q, owner, ingredientID); err != nil {
			return err
		}
		if recipeID, ok := source.RecipeID(); ok {
			if err := checkRecipe(ctx, q, owner, recipeID); err != nil {
				return err
			}
		}

		var err error
		entry, err = l.merge(ctx, q, listID, ingredientID, source, int64(amount))
		return err
	})
	if err != nil {
		return nil, l.fail("add quantity", err)
	}
	return entry, nil
}

// AddRecipe adds every item on behalf of the recipe in one transaction. With
// no items the recipe's stored quantities are used.
func (l *Ledger) AddRecipe(ctx context.Context, owner uuid.UUID, listID, recipeID int64, items []Contribution) ([]QuantityEntry, error) {
	for _, item := range items {
		if err := validAmount(item.Quantity); err != nil {
			return nil, err
		}
	}

	var entries []QuantityEntry
	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := l.queries.WithTx(tx)

		if err := checkList(ctx, q, owner, listID); err != nil {
			return err
		}
		if err := checkRecipe(ctx, q, owner, recipeID); err != nil {
			return err
		}

		if len(items) == 0 {
			stored, err := q.ListRecipeStoredQuantities(ctx, recipeID)
			if err != nil {
				return fmt.Errorf("failed to load recipe quantities: %w", err)
			}
			for _, row := range stored {
				items = append(items, Contribution{IngredientID: row.IngredientID, Quantity: int(row.Quantity)})
			}
		}
		if len(items) == 0 {
			return shared.Invalid("recipe has no ingredients to add")
		}

		source := FromRecipe(recipeID)
		for _, item := range items {
			if err := checkIngredient(ctx, q, owner, item.IngredientID); err != nil {
				return err
			}
			entry, err := l.merge(ctx, q, listID, item.IngredientID, source, int64(item.Quantity))
			if err != nil {
				return err
			}
			entries = append(entries, *entry)
		}
		return nil
	})
	if err != nil {
		return nil, l.fail("add recipe", err)
	}

	l.logger.Debug("recipe added to shopping list",
		zap.Int64("list_id", listID),
		zap.Int64("recipe_id", recipeID),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}

// UpdateQuantity overwrites an entry's quantity.
func (l *Ledger) UpdateQuantity(ctx context.Context, owner uuid.UUID, listID, entryID int64, amount int) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := l.queries.WithTx(tx)

		if err := checkList(ctx, q, owner, listID); err != nil {
			return err
		}
		if _, err := getEntry(ctx, q, listID, entryID); err != nil {
			return err
		}
		if err := q.SetQuantity(ctx, shoppingdb.SetQuantityParams{Quantity: int64(amount), ID: entryID}); err != nil {
			return fmt.Errorf("failed to set quantity: %w", err)
		}
		return nil
	})
	return l.fail("update quantity", err)
}

// RemoveQuantity deletes a single entry, and its list ingredient when it was
// the last one.
func (l *Ledger) RemoveQuantity(ctx context.Context, owner uuid.UUID, listID, entryID int64) (CleanupResult, error) {
	var res CleanupResult
	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := l.queries.WithTx(tx)

		if err := checkList(ctx, q, owner, listID); err != nil {
			return err
		}
		entry, err := getEntry(ctx, q, listID, entryID)
		if err != nil {
			return err
		}

		res, err = l.cleanup.Remove(ctx, q, []QuantityRef{{EntryID: entry.ID, ListIngredientID: entry.ShoppingListIngredientID}})
		return err
	})
	if err != nil {
		return CleanupResult{}, l.fail("remove quantity", err)
	}
	return res, nil
}

// RemoveAllForSource deletes every entry source contributed to the list and
// returns how many went.
func (l *Ledger) RemoveAllForSource(ctx context.Context, owner uuid.UUID, listID int64, source Source) (int, error) {
	var res CleanupResult
	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := l.queries.WithTx(tx)

		if err := checkList(ctx, q, owner, listID); err != nil {
			return err
		}
		if recipeID, ok := source.RecipeID(); ok {
			if err := checkRecipe(ctx, q, owner, recipeID); err != nil {
				return err
			}
		}

		rows, err := q.ListQuantityRefsBySource(ctx, shoppingdb.ListQuantityRefsBySourceParams{
			ShoppingListID: listID,
			RecipeID:       source.nullable(),
		})
		if err != nil {
			return fmt.Errorf("failed to list quantities for %s: %w", source, err)
		}

		refs := make([]QuantityRef, 0, len(rows))
		for _, row := range rows {
			refs = append(refs, QuantityRef{EntryID: row.ID, ListIngredientID: row.ShoppingListIngredientID})
		}
		res, err = l.cleanup.Remove(ctx, q, refs)
		return err
	})
	if err != nil {
		return 0, l.fail("remove source", err)
	}

	l.logger.Debug("source removed from shopping list",
		zap.Int64("list_id", listID),
		zap.Stringer("source", source),
		zap.Int("entries", res.EntriesDeleted),
		zap.Int("ingredients", res.ParentsDeleted),
	)
	return res.EntriesDeleted, nil
}

// ToggleChecked flips the checked flag of an ingredient on a list and
// returns the new state.
func (l *Ledger) ToggleChecked(ctx context.Context, owner uuid.UUID, listID, ingredientID int64) (bool, error) {
	var checked bool
	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := l.queries.WithTx(tx)

		if err := checkList(ctx, q, owner, listID); err != nil {
			return err
		}
		link, err := q.GetListIngredient(ctx, shoppingdb.GetListIngredientParams{
			ShoppingListID: listID,
			IngredientID:   ingredientID,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return shared.NotFound("shopping list ingredient")
			}
			return fmt.Errorf("failed to get list ingredient: %w", err)
		}

		checked = !link.Checked
		if err := q.SetListIngredientChecked(ctx, shoppingdb.SetListIngredientCheckedParams{Checked: checked, ID: link.ID}); err != nil {
			return fmt.Errorf("failed to set checked: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, l.fail("toggle checked", err)
	}
	return checked, nil
}

// RemoveIngredient drops an ingredient and all of its entries from a list.
func (l *Ledger) RemoveIngredient(ctx context.Context, owner uuid.UUID, listID, ingredientID int64) error {
	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := l.queries.WithTx(tx)

		if err := checkList(ctx, q, owner, listID); err != nil {
			return err
		}
		n, err := q.DeleteListIngredientByIngredient(ctx, shoppingdb.DeleteListIngredientByIngredientParams{
			ShoppingListID: listID,
			IngredientID:   ingredientID,
		})
		if err != nil {
			return fmt.Errorf("failed to delete list ingredient: %w", err)
		}
		if n == 0 {
			return shared.NotFound("shopping list ingredient")
		}
		return nil
	})
	return l.fail("remove ingredient", err)
}

// ForgetRecipeTx removes a recipe's contributions from all of the owner's
// lists, on the caller's transaction.
func (l *Ledger) ForgetRecipeTx(ctx context.Context, tx *sql.Tx, owner uuid.UUID, recipeID int64) (CleanupResult, error) {
	q := l.queries.WithTx(tx)

	rows, err := q.ListRecipeQuantityRefs(ctx, shoppingdb.ListRecipeQuantityRefsParams{
		RecipeID: FromRecipe(recipeID).nullable(),
		UserID:   owner.String(),
	})
	if err != nil {
		return CleanupResult{}, fmt.Errorf("failed to list recipe contributions: %w", err)
	}

	refs := make([]QuantityRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, QuantityRef{EntryID: row.ID, ListIngredientID: row.ShoppingListIngredientID})
	}
	return l.cleanup.Remove(ctx, q, refs)
}

// merge finds or creates the list ingredient, then adds amount to the
// entry for source or creates it.
func (l *Ledger) merge(ctx context.Context, q *shoppingdb.Queries, listID, ingredientID int64, source Source, amount int64) (*QuantityEntry, error) {
	link, err := q.GetListIngredient(ctx, shoppingdb.GetListIngredientParams{
		ShoppingListID: listID,
		IngredientID:   ingredientID,
	})
	linkID := link.ID
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to get list ingredient: %w", err)
		}
		linkID, err = q.InsertListIngredient(ctx, shoppingdb.InsertListIngredientParams{
			ShoppingListID: listID,
			IngredientID:   ingredientID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to insert list ingredient: %w", err)
		}
	}

	entry := &QuantityEntry{ListIngredientID: linkID, IngredientID: ingredientID, Source: source}

	existing, err := q.GetQuantityBySource(ctx, shoppingdb.GetQuantityBySourceParams{
		ShoppingListIngredientID: linkID,
		RecipeID:                 source.nullable(),
	})
	switch {
	case err == nil:
		total, err := q.AddToQuantity(ctx, shoppingdb.AddToQuantityParams{Quantity: amount, ID: existing.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to add to quantity: %w", err)
		}
		entry.ID = existing.ID
		entry.Quantity = int(total)
	case errors.Is(err, sql.ErrNoRows):
		id, err := q.InsertQuantity(ctx, shoppingdb.InsertQuantityParams{
			ShoppingListIngredientID: linkID,
			RecipeID:                 source.nullable(),
			Quantity:                 amount,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to insert quantity: %w", err)
		}
		entry.ID = id
		entry.Quantity = int(amount)
	default:
		return nil, fmt.Errorf("failed to get quantity: %w", err)
	}
	return entry, nil
}

func (l *Ledger) fail(op string, err error) error {
	err = shared.Classify(op, err)
	if errors.Is(err, shared.ErrStore) {
		l.logger.Error("shopping store failure", zap.String("op", op), zap.Error(err))
	}
	return err
}

func validAmount(amount int) error {
	if amount < 1 {
		return shared.Invalid("quantity has to be at least 1")
	}
	return nil
}

func checkList(ctx context.Context, q *shoppingdb.Queries, owner uuid.UUID, listID int64) error {
	if _, err := q.GetShoppingList(ctx, shoppingdb.GetShoppingListParams{ID: listID, UserID: owner.String()}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return shared.NotFound("shopping list")
		}
		return fmt.Errorf("failed to get shopping list: %w", err)
	}
	return nil
}

func checkIngredient(ctx context.Context, q *shoppingdb.Queries, owner uuid.UUID, ingredientID int64) error {
	if _, err := q.GetOwnedIngredientID(ctx, shoppingdb.GetOwnedIngredientIDParams{ID: ingredientID, UserID: owner.String()}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return shared.NotFound("ingredient")
		}
		return fmt.Errorf("failed to get ingredient: %w", err)
	}
	return nil
}

func checkRecipe(ctx context.Context, q *shoppingdb.Queries, owner uuid.UUID, recipeID int64) error {
	if _, err := q.GetOwnedRecipeID(ctx, shoppingdb.GetOwnedRecipeIDParams{ID: recipeID, UserID: owner.String()}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return shared.NotFound("recipe")
		}
		return fmt.Errorf("failed to get recipe: %w", err)
	}
	return nil
}

func getEntry(ctx context.Context, q *shoppingdb.Queries, listID, entryID int64) (shoppingdb.GetListQuantityRow, error) {
	entry, err := q.GetListQuantity(ctx, shoppingdb.GetListQuantityParams{ID: entryID, ShoppingListID: listID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry, shared.NotFound("quantity")
		}
		return entry, fmt.Errorf("failed to get quantity: %w", err)
	}
	return entry, nil
}
