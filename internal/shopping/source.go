package shopping

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"recipe-planner/internal/shared"
)

// Source identifies who contributed a quantity: the user by hand, or a recipe.
// The zero value is the manual source.
type Source struct {
	recipeID int64
}

// Manual is the source of quantities the user added directly.
func Manual() Source { return Source{} }

// FromRecipe is the source of quantities added on behalf of a recipe.
func FromRecipe(id int64) Source { return Source{recipeID: id} }

// IsManual reports whether s is the manual source.
func (s Source) IsManual() bool { return s.recipeID == 0 }

// RecipeID returns the contributing recipe, if any.
func (s Source) RecipeID() (int64, bool) { return s.recipeID, s.recipeID != 0 }

func (s Source) String() string {
	if s.IsManual() {
		return "manual"
	}
	return fmt.Sprintf("recipe:%d", s.recipeID)
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Source) UnmarshalText(text []byte) error {
	parsed, err := ParseSource(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSource accepts "manual", "recipe:<id>" or a bare recipe id.
func ParseSource(text string) (Source, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "manual" || text == "" {
		return Manual(), nil
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(text, "recipe:"), 10, 64)
	if err != nil || id < 1 {
		return Source{}, shared.Invalid(fmt.Sprintf("unknown quantity source %q", text))
	}
	return FromRecipe(id), nil
}

func (s Source) nullable() sql.NullInt64 {
	return sql.NullInt64{Int64: s.recipeID, Valid: !s.IsManual()}
}

func sourceOf(recipeID sql.NullInt64) Source {
	if !recipeID.Valid {
		return Manual()
	}
	return FromRecipe(recipeID.Int64)
}
