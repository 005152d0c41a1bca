package shopping

import (
	"context"
	"fmt"

	shoppingdb "recipe-planner/internal/shopping/db"

	"go.uber.org/zap"
)

// QuantityRef points at one quantity entry and the list ingredient it belongs to.
type QuantityRef struct {
	EntryID          int64
	ListIngredientID int64
}

// CleanupResult reports what a removal deleted.
type CleanupResult struct {
	EntriesDeleted int `json:"entries_deleted"`
	ParentsDeleted int `json:"parents_deleted"`
}

// Cleanup removes quantity entries and, within the same transaction, every
// list ingredient left without entries.
type Cleanup struct {
	logger *zap.Logger
}

// NewCleanup creates a new Cleanup coordinator.
func NewCleanup(logger *zap.Logger) *Cleanup {
	return &Cleanup{logger: logger}
}

// Remove deletes the referenced entries. q must be bound to the caller's
// transaction. For each list ingredient the entries are counted before the
// delete and the parent goes when none are left.
func (c *Cleanup) Remove(ctx context.Context, q *shoppingdb.Queries, refs []QuantityRef) (CleanupResult, error) {
	var res CleanupResult

	var parents []int64
	byParent := make(map[int64][]int64)
	for _, ref := range refs {
		if _, seen := byParent[ref.ListIngredientID]; !seen {
			parents = append(parents, ref.ListIngredientID)
		}
		byParent[ref.ListIngredientID] = append(byParent[ref.ListIngredientID], ref.EntryID)
	}

	for _, parent := range parents {
		count, err := q.CountQuantities(ctx, parent)
		if err != nil {
			return res, fmt.Errorf("failed to count quantities of list ingredient %d: %w", parent, err)
		}

		var deleted int64
		for _, entry := range byParent[parent] {
			n, err := q.DeleteQuantity(ctx, entry)
			if err != nil {
				return res, fmt.Errorf("failed to delete quantity %d: %w", entry, err)
			}
			deleted += n
		}
		res.EntriesDeleted += int(deleted)

		if count-deleted > 0 {
			continue
		}
		if _, err := q.DeleteListIngredient(ctx, parent); err != nil {
			return res, fmt.Errorf("failed to delete list ingredient %d: %w", parent, err)
		}
		res.ParentsDeleted++
		c.logger.Debug("removed empty list ingredient", zap.Int64("list_ingredient_id", parent))
	}

	return res, nil
}
