package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-planner/internal/shared"
	shoppingdb "recipe-planner/internal/shopping/db"

	"github.com/google/uuid"
)

// ShoppingList is a named list with its consolidated items.
type ShoppingList struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Items     []Item    `json:"items,omitempty"`
}

// Item is one ingredient on a list with every source's contribution.
type Item struct {
	ListIngredientID int64           `json:"list_ingredient_id"`
	IngredientID     int64           `json:"ingredient_id"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	Checked          bool            `json:"checked"`
	Total            int             `json:"total"`
	Entries          []QuantityEntry `json:"entries"`
}

// Summary is a list without its items.
type Summary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	Ingredients int       `json:"ingredients"`
	Checked     int       `json:"checked"`
}

// CreateList creates an empty shopping list.
func (l *Ledger) CreateList(ctx context.Context, owner uuid.UUID, name string) (*ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Invalid("shopping list name must not be empty")
	}

	createdAt := time.Now().UTC()
	id, err := l.queries.InsertShoppingList(ctx, shoppingdb.InsertShoppingListParams{
		UserID:    owner.String(),
		Name:      name,
		CreatedAt: createdAt,
	})
	if err != nil {
		return nil, l.fail("create list", fmt.Errorf("failed to insert shopping list: %w", err))
	}
	return &ShoppingList{ID: id, Name: name, CreatedAt: createdAt}, nil
}

// RenameList changes a list's name.
func (l *Ledger) RenameList(ctx context.Context, owner uuid.UUID, listID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Invalid("shopping list name must not be empty")
	}

	n, err := l.queries.RenameShoppingList(ctx, shoppingdb.RenameShoppingListParams{
		Name:   name,
		ID:     listID,
		UserID: owner.String(),
	})
	if err != nil {
		return l.fail("rename list", fmt.Errorf("failed to rename shopping list: %w", err))
	}
	if n == 0 {
		return shared.NotFound("shopping list")
	}
	return nil
}

// DeleteList removes a list together with its ingredients and entries.
func (l *Ledger) DeleteList(ctx context.Context, owner uuid.UUID, listID int64) error {
	n, err := l.queries.DeleteShoppingList(ctx, shoppingdb.DeleteShoppingListParams{ID: listID, UserID: owner.String()})
	if err != nil {
		return l.fail("delete list", fmt.Errorf("failed to delete shopping list: %w", err))
	}
	if n == 0 {
		return shared.NotFound("shopping list")
	}
	return nil
}

// Lists returns the owner's lists, oldest first.
func (l *Ledger) Lists(ctx context.Context, owner uuid.UUID) ([]Summary, error) {
	rows, err := l.queries.ListShoppingListSummaries(ctx, owner.String())
	if err != nil {
		return nil, l.fail("list lists", fmt.Errorf("failed to list shopping lists: %w", err))
	}

	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, Summary{
			ID:          row.ID,
			Name:        row.Name,
			CreatedAt:   row.CreatedAt,
			Ingredients: int(row.IngredientCount),
			Checked:     int(row.CheckedCount),
		})
	}
	return summaries, nil
}

// List returns a list with its items in ingredient order. The reads share a
// transaction so totals and entries agree.
func (l *Ledger) List(ctx context.Context, owner uuid.UUID, listID int64) (*ShoppingList, error) {
	var list *ShoppingList
	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := l.queries.WithTx(tx)

		row, err := q.GetShoppingList(ctx, shoppingdb.GetShoppingListParams{ID: listID, UserID: owner.String()})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return shared.NotFound("shopping list")
			}
			return fmt.Errorf("failed to get shopping list: %w", err)
		}
		list = &ShoppingList{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}

		items, err := q.ListShoppingListItems(ctx, listID)
		if err != nil {
			return fmt.Errorf("failed to list shopping list items: %w", err)
		}
		entries, err := q.ListShoppingListEntries(ctx, listID)
		if err != nil {
			return fmt.Errorf("failed to list shopping list entries: %w", err)
		}

		byLink := make(map[int64]int, len(items))
		list.Items = make([]Item, len(items))
		for i, it := range items {
			byLink[it.ID] = i
			list.Items[i] = Item{
				ListIngredientID: it.ID,
				IngredientID:     it.IngredientID,
				Name:             it.Name,
				Unit:             it.Unit,
				Checked:          it.Checked,
			}
		}
		for _, e := range entries {
			idx, ok := byLink[e.ShoppingListIngredientID]
			if !ok {
				continue
			}
			item := &list.Items[idx]
			item.Entries = append(item.Entries, QuantityEntry{
				ID:               e.ID,
				ListIngredientID: e.ShoppingListIngredientID,
				IngredientID:     item.IngredientID,
				Source:           sourceOf(e.RecipeID),
				RecipeName:       e.RecipeName.String,
				Quantity:         int(e.Quantity),
			})
			item.Total += int(e.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, l.fail("get list", err)
	}
	return list, nil
}
