package recipe

import (
	"time"

	"recipe-planner/internal/shared"
)

// Recipe is a named set of ingredient quantities.
type Recipe struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Items     []Item    `json:"items"`
}

// Item is one ingredient line of a recipe.
type Item struct {
	IngredientID int64  `json:"ingredient_id"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	Quantity     int    `json:"quantity"`
}

// ItemInput is an ingredient line to store on a recipe.
type ItemInput struct {
	IngredientID int64 `json:"ingredient_id"`
	Quantity     int   `json:"quantity"`
}

// Summary is a recipe without its items.
type Summary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Items     int       `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// mergeItems validates the lines and folds repeated ingredients together,
// keeping first-seen order.
func mergeItems(items []ItemInput) ([]ItemInput, error) {
	merged := make([]ItemInput, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, shared.Invalid("quantity has to be at least 1")
		}
		if i, ok := index[it.IngredientID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.IngredientID] = len(merged)
		merged = append(merged, it)
	}
	return merged, nil
}
