package ingredient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"recipe-planner/internal/database"
	ingredientdb "recipe-planner/internal/ingredient/db"
	"recipe-planner/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// parkedSort is where a moving ingredient waits while its neighbours shift.
// It lies outside the dense range 1..N and never survives a commit.
const parkedSort = 0

// Sequencer keeps each owner's ingredient positions dense (1..N) under
// insert, move and delete. It is the only writer of the sort column.
//
// Every shift is applied row by row in an order that never produces two rows
// with the same position, so UNIQUE(user_id, sort) holds after each statement.
type Sequencer struct {
	queries *ingredientdb.Queries
	db      *database.DB
	logger  *zap.Logger
}

// NewSequencer creates a new Sequencer.
func NewSequencer(d *database.DB, logger *zap.Logger) *Sequencer {
	return &Sequencer{
		queries: ingredientdb.New(d.SQL),
		db:      d,
		logger:  logger,
	}
}

// Insert creates an ingredient at the requested position, or appends it when
// no position is given. Out-of-range positions are clamped to [1, max+1].
func (s *Sequencer) Insert(ctx context.Context, owner uuid.UUID, in NewIngredient) (*Ingredient, error) {
	var created *Ingredient
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		created, err = s.InsertTx(ctx, tx, owner, in)
		return err
	})
	if err != nil {
		return nil, s.fail("insert ingredient", err)
	}

	s.logger.Debug("ingredient inserted",
		zap.String("owner", owner.String()),
		zap.Int64("id", created.ID),
		zap.Int("sort", created.Sort),
	)
	return created, nil
}

// InsertTx is Insert inside the caller's transaction. Errors are returned
// unclassified; the caller owns commit and rollback.
func (s *Sequencer) InsertTx(ctx context.Context, tx *sql.Tx, owner uuid.UUID, in NewIngredient) (*Ingredient, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, shared.Invalid("ingredient name must not be empty")
	}
	q := s.queries.WithTx(tx)

	unit, err := q.GetUnit(ctx, in.UnitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.NotFound("unit")
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}

	last, err := q.GetMaxSort(ctx, owner.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get last position: %w", err)
	}

	pos := last + 1
	if in.Position != nil {
		pos = clamp(int64(*in.Position), 1, last+1)
	}

	if err := s.shift(ctx, q, owner, pos, last, +1); err != nil {
		return nil, err
	}

	id, err := q.InsertIngredient(ctx, ingredientdb.InsertIngredientParams{
		UserID: owner.String(),
		Name:   name,
		UnitID: unit.ID,
		Sort:   pos,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert ingredient: %w", err)
	}

	return &Ingredient{ID: id, Name: name, UnitID: unit.ID, Unit: unit.Name, Sort: int(pos)}, nil
}

// Move relocates an ingredient and returns its new position.
//
// desired is expressed in the numbering before the move. Moving down
// (desired > old) lands on desired-1 because the vacated slot closes up first.
// Moves that would not change the order fail with shared.ErrNothingToSort.
func (s *Sequencer) Move(ctx context.Context, owner uuid.UUID, id int64, desired int) (int, error) {
	var final int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := s.queries.WithTx(tx)

		ing, err := getOwned(ctx, q, owner, id)
		if err != nil {
			return err
		}
		old := ing.Sort

		last, err := q.GetMaxSort(ctx, owner.String())
		if err != nil {
			return fmt.Errorf("failed to get last position: %w", err)
		}

		target := int64(desired)
		if target < 1 {
			target = 1
		}
		if target > last+1 {
			if old == last {
				return shared.ErrNothingToSort
			}
			target = last + 1
		}
		if target == old {
			return shared.ErrNothingToSort
		}

		if err := setSort(ctx, q, id, parkedSort); err != nil {
			return err
		}

		if target < old {
			if err := s.shift(ctx, q, owner, target, old-1, +1); err != nil {
				return err
			}
			final = target
		} else {
			if err := s.shift(ctx, q, owner, old+1, target-1, -1); err != nil {
				return err
			}
			final = target - 1
		}

		return setSort(ctx, q, id, final)
	})
	if err != nil {
		return 0, s.fail("move ingredient", err)
	}

	s.logger.Debug("ingredient moved",
		zap.String("owner", owner.String()),
		zap.Int64("id", id),
		zap.Int64("sort", final),
	)
	return int(final), nil
}

// Delete removes an ingredient and closes the gap it leaves.
func (s *Sequencer) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := s.queries.WithTx(tx)

		ing, err := getOwned(ctx, q, owner, id)
		if err != nil {
			return err
		}

		if err := q.DeleteIngredient(ctx, ingredientdb.DeleteIngredientParams{ID: id, UserID: owner.String()}); err != nil {
			return fmt.Errorf("failed to delete ingredient: %w", err)
		}

		return s.shift(ctx, q, owner, ing.Sort+1, math.MaxInt64, -1)
	})
	return s.fail("delete ingredient", err)
}

// Positions returns the owner's sort values in ascending order.
func (s *Sequencer) Positions(ctx context.Context, owner uuid.UUID) ([]int, error) {
	sorts, err := s.queries.ListSorts(ctx, owner.String())
	if err != nil {
		return nil, s.fail("list positions", fmt.Errorf("failed to list positions: %w", err))
	}
	positions := make([]int, len(sorts))
	for i, v := range sorts {
		positions[i] = int(v)
	}
	return positions, nil
}

// shift moves every ingredient with sort in [lo, hi] by delta (+1 or -1).
// Increments run from the top down and decrements from the bottom up.
func (s *Sequencer) shift(ctx context.Context, q *ingredientdb.Queries, owner uuid.UUID, lo, hi, delta int64) error {
	if lo > hi {
		return nil
	}
	rows, err := q.ListIngredientSortsBetween(ctx, ingredientdb.ListIngredientSortsBetweenParams{
		UserID: owner.String(),
		Lo:     lo,
		Hi:     hi,
	})
	if err != nil {
		return fmt.Errorf("failed to read positions %d..%d: %w", lo, hi, err)
	}

	if delta > 0 {
		for i := len(rows) - 1; i >= 0; i-- {
			if err := setSort(ctx, q, rows[i].ID, rows[i].Sort+delta); err != nil {
				return err
			}
		}
		return nil
	}
	for _, row := range rows {
		if err := setSort(ctx, q, row.ID, row.Sort+delta); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) fail(op string, err error) error {
	err = shared.Classify(op, err)
	if errors.Is(err, shared.ErrStore) {
		s.logger.Error("ingredient store failure", zap.String("op", op), zap.Error(err))
	}
	return err
}

func getOwned(ctx context.Context, q *ingredientdb.Queries, owner uuid.UUID, id int64) (ingredientdb.Ingredient, error) {
	ing, err := q.GetIngredient(ctx, ingredientdb.GetIngredientParams{ID: id, UserID: owner.String()})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ing, shared.NotFound("ingredient")
		}
		return ing, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return ing, nil
}

func setSort(ctx context.Context, q *ingredientdb.Queries, id, sort int64) error {
	if err := q.UpdateIngredientSort(ctx, ingredientdb.UpdateIngredientSortParams{Sort: sort, ID: id}); err != nil {
		return fmt.Errorf("failed to set position of ingredient %d: %w", id, err)
	}
	return nil
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
