package ingredient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipe-planner/internal/database"
	ingredientdb "recipe-planner/internal/ingredient/db"
	"recipe-planner/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ingredient is a user-owned ingredient with its position in the user's list.
type Ingredient struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UnitID int64  `json:"unit_id"`
	Unit   string `json:"unit"`
	Sort   int    `json:"sort"`
}

// NewIngredient describes an ingredient to insert. A nil Position appends.
type NewIngredient struct {
	Name     string
	UnitID   int64
	Position *int
}

// IngredientUpdate carries the optional fields of a rename/re-unit.
type IngredientUpdate struct {
	Name   *string
	UnitID *int64
}

// Unit is a measuring unit.
type Unit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Repository handles the non-positional parts of ingredient persistence.
type Repository struct {
	queries *ingredientdb.Queries
	db      *database.DB
	logger  *zap.Logger
}

// NewRepository creates a new ingredient repository.
func NewRepository(d *database.DB, logger *zap.Logger) *Repository {
	return &Repository{
		queries: ingredientdb.New(d.SQL),
		db:      d,
		logger:  logger,
	}
}

// List returns the owner's ingredients ordered by position.
func (r *Repository) List(ctx context.Context, owner uuid.UUID) ([]Ingredient, error) {
	rows, err := r.queries.ListIngredients(ctx, owner.String())
	if err != nil {
		return nil, r.fail("list ingredients", fmt.Errorf("failed to list ingredients: %w", err))
	}

	ingredients := make([]Ingredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, Ingredient{
			ID:     row.ID,
			Name:   row.Name,
			UnitID: row.UnitID,
			Unit:   row.Unit,
			Sort:   int(row.Sort),
		})
	}
	return ingredients, nil
}

// Update changes the name and/or unit of an ingredient. Position is left alone.
func (r *Repository) Update(ctx context.Context, owner uuid.UUID, id int64, upd IngredientUpdate) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)

		if _, err := q.GetIngredient(ctx, ingredientdb.GetIngredientParams{ID: id, UserID: owner.String()}); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return shared.NotFound("ingredient")
			}
			return fmt.Errorf("failed to get ingredient: %w", err)
		}

		if upd.Name != nil {
			name := strings.TrimSpace(*upd.Name)
			if name == "" {
				return shared.Invalid("ingredient name must not be empty")
			}
			if err := q.UpdateIngredientName(ctx, ingredientdb.UpdateIngredientNameParams{
				Name: name, ID: id, UserID: owner.String(),
			}); err != nil {
				return fmt.Errorf("failed to update ingredient name: %w", err)
			}
		}

		if upd.UnitID != nil {
			if err := checkUnit(ctx, q, *upd.UnitID); err != nil {
				return err
			}
			if err := q.UpdateIngredientUnit(ctx, ingredientdb.UpdateIngredientUnitParams{
				UnitID: *upd.UnitID, ID: id, UserID: owner.String(),
			}); err != nil {
				return fmt.Errorf("failed to update ingredient unit: %w", err)
			}
		}
		return nil
	})
	return r.fail("update ingredient", err)
}

// Units lists every known unit.
func (r *Repository) Units(ctx context.Context) ([]Unit, error) {
	rows, err := r.queries.ListUnits(ctx)
	if err != nil {
		return nil, r.fail("list units", fmt.Errorf("failed to list units: %w", err))
	}
	units := make([]Unit, 0, len(rows))
	for _, row := range rows {
		units = append(units, Unit{ID: row.ID, Name: row.Name})
	}
	return units, nil
}

// UnitByName resolves a unit name such as "g" or "pcs".
func (r *Repository) UnitByName(ctx context.Context, name string) (*Unit, error) {
	row, err := r.queries.GetUnitByName(ctx, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.NotFound(fmt.Sprintf("unit %q", name))
		}
		return nil, r.fail("get unit", fmt.Errorf("failed to get unit: %w", err))
	}
	return &Unit{ID: row.ID, Name: row.Name}, nil
}

func (r *Repository) fail(op string, err error) error {
	err = shared.Classify(op, err)
	if errors.Is(err, shared.ErrStore) {
		r.logger.Error("ingredient store failure", zap.String("op", op), zap.Error(err))
	}
	return err
}

func checkUnit(ctx context.Context, q *ingredientdb.Queries, unitID int64) error {
	if _, err := q.GetUnit(ctx, unitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return shared.NotFound("unit")
		}
		return fmt.Errorf("failed to get unit: %w", err)
	}
	return nil
}
