package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-planner/internal/database"
	recipedb "recipe-planner/internal/recipe/db"
	"recipe-planner/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BeforeDeleteFunc runs inside the delete transaction, after ownership has
// been checked and before the recipe row goes.
type BeforeDeleteFunc func(ctx context.Context, tx *sql.Tx, owner uuid.UUID, recipeID int64) error

// Repository is a database-backed repository for recipes.
type Repository struct {
	queries *recipedb.Queries
	db      *database.DB
	logger  *zap.Logger
}

// NewRepository creates a new Repository.
func NewRepository(d *database.DB, logger *zap.Logger) *Repository {
	return &Repository{
		queries: recipedb.New(d.SQL),
		db:      d,
		logger:  logger,
	}
}

// Create stores a new recipe. Every ingredient must belong to owner.
func (r *Repository) Create(ctx context.Context, owner uuid.UUID, name string, items []ItemInput) (*Recipe, error) {
	var id int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = r.CreateTx(ctx, tx, owner, name, items)
		return err
	})
	if err != nil {
		return nil, r.fail("create recipe", err)
	}
	return r.Get(ctx, owner, id)
}

// CreateTx is Create inside the caller's transaction and returns the new id.
func (r *Repository) CreateTx(ctx context.Context, tx *sql.Tx, owner uuid.UUID, name string, items []ItemInput) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, shared.Invalid("recipe name must not be empty")
	}
	merged, err := mergeItems(items)
	if err != nil {
		return 0, err
	}
	q := r.queries.WithTx(tx)

	now := time.Now().UTC()
	id, err := q.InsertRecipe(ctx, recipedb.InsertRecipeParams{
		UserID:    owner.String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipe: %w", err)
	}
	if err := insertItems(ctx, q, owner, id, merged); err != nil {
		return 0, err
	}

	r.logger.Debug("recipe created", zap.Int64("id", id), zap.Int("items", len(merged)))
	return id, nil
}

// Get returns a recipe with its items in ingredient order.
func (r *Repository) Get(ctx context.Context, owner uuid.UUID, id int64) (*Recipe, error) {
	row, err := r.queries.GetRecipe(ctx, recipedb.GetRecipeParams{ID: id, UserID: owner.String()})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.NotFound("recipe")
		}
		return nil, r.fail("get recipe", fmt.Errorf("failed to get recipe: %w", err))
	}

	rows, err := r.queries.ListRecipeItems(ctx, id)
	if err != nil {
		return nil, r.fail("get recipe", fmt.Errorf("failed to list recipe items: %w", err))
	}

	rec := &Recipe{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Items:     make([]Item, 0, len(rows)),
	}
	for _, it := range rows {
		rec.Items = append(rec.Items, Item{
			IngredientID: it.IngredientID,
			Name:         it.Name,
			Unit:         it.Unit,
			Quantity:     int(it.Quantity),
		})
	}
	return rec, nil
}

// List returns the owner's recipes ordered by name.
func (r *Repository) List(ctx context.Context, owner uuid.UUID) ([]Summary, error) {
	rows, err := r.queries.ListRecipes(ctx, owner.String())
	if err != nil {
		return nil, r.fail("list recipes", fmt.Errorf("failed to list recipes: %w", err))
	}
	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, Summary{
			ID:        row.ID,
			Name:      row.Name,
			Items:     int(row.ItemCount),
			UpdatedAt: row.UpdatedAt,
		})
	}
	return summaries, nil
}

// Exists reports whether owner has a recipe with this id.
func (r *Repository) Exists(ctx context.Context, owner uuid.UUID, id int64) (bool, error) {
	_, err := r.queries.GetRecipe(ctx, recipedb.GetRecipeParams{ID: id, UserID: owner.String()})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, r.fail("get recipe", fmt.Errorf("failed to get recipe: %w", err))
	}
	return true, nil
}

// Rename changes a recipe's name.
func (r *Repository) Rename(ctx context.Context, owner uuid.UUID, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Invalid("recipe name must not be empty")
	}
	n, err := r.queries.RenameRecipe(ctx, recipedb.RenameRecipeParams{
		Name:      name,
		UpdatedAt: time.Now().UTC(),
		ID:        id,
		UserID:    owner.String(),
	})
	if err != nil {
		return r.fail("rename recipe", fmt.Errorf("failed to rename recipe: %w", err))
	}
	if n == 0 {
		return shared.NotFound("recipe")
	}
	return nil
}

// SetItems replaces all ingredient lines of a recipe. Quantities already on
// shopping lists are not touched.
func (r *Repository) SetItems(ctx context.Context, owner uuid.UUID, id int64, items []ItemInput) error {
	merged, err := mergeItems(items)
	if err != nil {
		return err
	}

	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)

		if _, err := q.GetRecipe(ctx, recipedb.GetRecipeParams{ID: id, UserID: owner.String()}); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return shared.NotFound("recipe")
			}
			return fmt.Errorf("failed to get recipe: %w", err)
		}
		if err := q.DeleteRecipeQuantities(ctx, id); err != nil {
			return fmt.Errorf("failed to clear recipe items: %w", err)
		}
		if err := insertItems(ctx, q, owner, id, merged); err != nil {
			return err
		}
		if err := q.TouchRecipe(ctx, recipedb.TouchRecipeParams{UpdatedAt: time.Now().UTC(), ID: id}); err != nil {
			return fmt.Errorf("failed to touch recipe: %w", err)
		}
		return nil
	})
	return r.fail("set recipe items", err)
}

// Delete removes a recipe. beforeDelete, when set, runs in the same
// transaction so the recipe's shopping contributions go with it.
func (r *Repository) Delete(ctx context.Context, owner uuid.UUID, id int64, beforeDelete BeforeDeleteFunc) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)

		if _, err := q.GetRecipe(ctx, recipedb.GetRecipeParams{ID: id, UserID: owner.String()}); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return shared.NotFound("recipe")
			}
			return fmt.Errorf("failed to get recipe: %w", err)
		}

		if beforeDelete != nil {
			if err := beforeDelete(ctx, tx, owner, id); err != nil {
				return err
			}
		}

		if _, err := q.DeleteRecipe(ctx, recipedb.DeleteRecipeParams{ID: id, UserID: owner.String()}); err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
	return r.fail("delete recipe", err)
}

func (r *Repository) fail(op string, err error) error {
	err = shared.Classify(op, err)
	if errors.Is(err, shared.ErrStore) {
		r.logger.Error("recipe store failure", zap.String("op", op), zap.Error(err))
	}
	return err
}

func insertItems(ctx context.Context, q *recipedb.Queries, owner uuid.UUID, recipeID int64, items []ItemInput) error {
	for _, it := range items {
		if _, err := q.GetOwnedIngredientID(ctx, recipedb.GetOwnedIngredientIDParams{ID: it.IngredientID, UserID: owner.String()}); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return shared.NotFound(fmt.Sprintf("ingredient %d", it.IngredientID))
			}
			return fmt.Errorf("failed to get ingredient: %w", err)
		}
		if err := q.InsertRecipeQuantity(ctx, recipedb.InsertRecipeQuantityParams{
			RecipeID:     recipeID,
			IngredientID: it.IngredientID,
			Quantity:     int64(it.Quantity),
		}); err != nil {
			return fmt.Errorf("failed to insert recipe item: %w", err)
		}
	}
	return nil
}
