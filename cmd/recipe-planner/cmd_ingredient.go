package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"recipe-planner/internal/ingredient"
	"recipe-planner/internal/shared"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var ingredientCmd = &cobra.Command{
	Use:     "ingredient",
	Aliases: []string{"ing"},
	Short:   "Manage ingredients and their shop order",
	Long: `Ingredients are kept in the order you meet them in the shop.
Positions start at 1 and never have gaps.

Ingredients can be referred to by id or by name.`,
}

var ingredientListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List ingredients in shop order",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.Ingredients(ctx, owner)
			if err != nil {
				return err
			}
			return emit(list, func() {
				if len(list) == 0 {
					fmt.Println("No ingredients yet")
				}
				for _, ing := range list {
					fmt.Printf("%3d. %-30s %-5s (id %d)\n", ing.Sort, ing.Name, ing.Unit, ing.ID)
				}
			})
		})
	},
}

var (
	ingredientUnit     string
	ingredientPosition int
)

var ingredientAddCmd = &cobra.Command{
	Use:   "add <name...>",
	Short: "Add an ingredient, appended unless --position is given",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			unit, err := e.app.UnitByName(ctx, ingredientUnit)
			if err != nil {
				return err
			}
			in := ingredient.NewIngredient{Name: joinArgs(args), UnitID: unit.ID}
			if cmd.Flags().Changed("position") {
				in.Position = &ingredientPosition
			}

			ing, err := e.app.AddIngredient(ctx, owner, in)
			if err != nil {
				return err
			}
			return emit(ing, func() {
				fmt.Printf("✅ Added %s (%s) at position %d (id %d)\n", ing.Name, ing.Unit, ing.Sort, ing.ID)
			})
		})
	},
}

var ingredientMoveCmd = &cobra.Command{
	Use:   "move <ingredient> <position>",
	Short: "Move an ingredient to another position",
	Long: `Move an ingredient. The position is counted before the move, so moving
an ingredient down lands it just above whatever is at that position now.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.Atoi(args[1])
		if err != nil {
			return shared.Invalid(fmt.Sprintf("position must be a number, got %q", args[1]))
		}
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			ing, err := e.app.ResolveIngredient(ctx, owner, args[0])
			if err != nil {
				return err
			}
			pos, err := e.app.MoveIngredient(ctx, owner, ing.ID, position)
			if errors.Is(err, shared.ErrNothingToSort) {
				fmt.Printf("%s is already at position %d\n", ing.Name, ing.Sort)
				return err
			}
			if err != nil {
				return err
			}
			fmt.Printf("↕️  %s is now at position %d\n", ing.Name, pos)
			return nil
		})
	},
}

var ingredientRenameCmd = &cobra.Command{
	Use:   "rename <ingredient> <new name...>",
	Short: "Rename an ingredient",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			ing, err := e.app.ResolveIngredient(ctx, owner, args[0])
			if err != nil {
				return err
			}
			name := joinArgs(args[1:])
			if err := e.app.UpdateIngredient(ctx, owner, ing.ID, ingredient.IngredientUpdate{Name: &name}); err != nil {
				return err
			}
			fmt.Printf("✏️  %s is now %s\n", ing.Name, name)
			return nil
		})
	},
}

var ingredientUnitCmd = &cobra.Command{
	Use:   "set-unit <ingredient> <unit>",
	Short: "Change the unit an ingredient is bought in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			ing, err := e.app.ResolveIngredient(ctx, owner, args[0])
			if err != nil {
				return err
			}
			unit, err := e.app.UnitByName(ctx, args[1])
			if err != nil {
				return err
			}
			if err := e.app.UpdateIngredient(ctx, owner, ing.ID, ingredient.IngredientUpdate{UnitID: &unit.ID}); err != nil {
				return err
			}
			fmt.Printf("✏️  %s is now counted in %s\n", ing.Name, unit.Name)
			return nil
		})
	},
}

var ingredientRemoveCmd = &cobra.Command{
	Use:     "rm <ingredient>",
	Aliases: []string{"delete"},
	Short:   "Delete an ingredient, also from recipes and shopping lists",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			ing, err := e.app.ResolveIngredient(ctx, owner, args[0])
			if err != nil {
				return err
			}
			if err := e.app.DeleteIngredient(ctx, owner, ing.ID); err != nil {
				return err
			}
			fmt.Printf("🗑  Deleted %s\n", ing.Name)
			return nil
		})
	},
}

func init() {
	ingredientAddCmd.Flags().StringVarP(&ingredientUnit, "unit", "u", "pcs", "Unit the ingredient is bought in")
	ingredientAddCmd.Flags().IntVarP(&ingredientPosition, "position", "p", 0, "Position to insert at (default: last)")

	ingredientCmd.AddCommand(ingredientListCmd)
	ingredientCmd.AddCommand(ingredientAddCmd)
	ingredientCmd.AddCommand(ingredientMoveCmd)
	ingredientCmd.AddCommand(ingredientRenameCmd)
	ingredientCmd.AddCommand(ingredientUnitCmd)
	ingredientCmd.AddCommand(ingredientRemoveCmd)
}
