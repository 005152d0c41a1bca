package main

import (
	"context"
	"fmt"
	"strings"

	"recipe-planner/internal/recipe"
	"recipe-planner/internal/shared"
	"recipe-planner/internal/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage recipes",
	Long: `A recipe is a named set of ingredient quantities. Recipes can be added to
shopping lists and taken off again without touching what was added by hand.`,
}

var recipeItems []string

var recipeCreateCmd = &cobra.Command{
	Use:   "create <name...>",
	Short: "Create a recipe",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			items, err := parseItems(ctx, e, owner, recipeItems)
			if err != nil {
				return err
			}
			rec, err := e.app.CreateRecipe(ctx, owner, joinArgs(args), items)
			if err != nil {
				return err
			}
			return emit(rec, func() { printRecipe(rec) })
		})
	},
}

var recipeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.Recipes(ctx, owner)
			if err != nil {
				return err
			}
			return emit(list, func() {
				if len(list) == 0 {
					fmt.Println("No recipes yet")
				}
				for _, r := range list {
					fmt.Printf("%3d  %-30s %2d ingredients\n", r.ID, r.Name, r.Items)
				}
			})
		})
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <recipe>",
	Short: "Show a recipe's ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			ref, err := e.app.ResolveRecipe(ctx, owner, args[0])
			if err != nil {
				return err
			}
			rec, err := e.app.Recipe(ctx, owner, ref.ID)
			if err != nil {
				return err
			}
			return emit(rec, func() { printRecipe(rec) })
		})
	},
}

var recipeRenameCmd = &cobra.Command{
	Use:   "rename <recipe> <new name...>",
	Short: "Rename a recipe",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			rec, err := e.app.ResolveRecipe(ctx, owner, args[0])
			if err != nil {
				return err
			}
			return e.app.RenameRecipe(ctx, owner, rec.ID, joinArgs(args[1:]))
		})
	},
}

var recipeSetItemsCmd = &cobra.Command{
	Use:   "set-items <recipe>",
	Short: "Replace a recipe's ingredients with the given --item values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			rec, err := e.app.ResolveRecipe(ctx, owner, args[0])
			if err != nil {
				return err
			}
			items, err := parseItems(ctx, e, owner, recipeItems)
			if err != nil {
				return err
			}
			return e.app.SetRecipeItems(ctx, owner, rec.ID, items)
		})
	},
}

var recipeRemoveCmd = &cobra.Command{
	Use:   "rm <recipe>",
	Short: "Delete a recipe and take its quantities off every list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			rec, err := e.app.ResolveRecipe(ctx, owner, args[0])
			if err != nil {
				return err
			}
			if err := e.app.DeleteRecipe(ctx, owner, rec.ID); err != nil {
				return err
			}
			fmt.Printf("🗑  Deleted %s\n", rec.Name)
			return nil
		})
	},
}

var importCreateMissing bool

var recipeImportCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Create a recipe from a recipe web page",
	Long: `Fetch a recipe page and read its ingredient lines. Lines are matched to your
ingredients by name; with --create-missing the rest are added as new
ingredients at the end of your list, otherwise they are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			res, err := e.app.ImportRecipe(ctx, owner, args[0], importCreateMissing)
			if err != nil {
				return err
			}
			return emit(res, func() {
				printRecipe(res.Recipe)
				for _, name := range res.Created {
					fmt.Printf("➕ New ingredient: %s\n", name)
				}
				for _, line := range res.Unmatched {
					fmt.Printf("⚠️  Skipped: %s\n", line)
				}
			})
		})
	},
}

var recipeExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write a JSON snapshot of every recipe to a directory",
	Long: `Write one JSON file per recipe to dir. Files are named after the recipe id
and its last change, so running the export again only writes recipes that
changed since.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewRecipeStore(args[0])
		if err != nil {
			return err
		}
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			res, err := e.app.ExportRecipes(ctx, owner, store)
			if err != nil {
				return err
			}
			return emit(res, func() {
				fmt.Printf("💾 %d written, %d unchanged\n", res.Written, res.Unchanged)
			})
		})
	},
}

// parseItems resolves "flour=200" style values against the owner's ingredients.
func parseItems(ctx context.Context, e *env, owner uuid.UUID, values []string) ([]recipe.ItemInput, error) {
	items := make([]recipe.ItemInput, 0, len(values))
	for _, v := range values {
		ref, qty, ok := strings.Cut(v, "=")
		if !ok {
			return nil, shared.Invalid(fmt.Sprintf("item %q is not ingredient=quantity", v))
		}
		amount, err := parseAmount(strings.TrimSpace(qty))
		if err != nil {
			return nil, err
		}
		ing, err := e.app.ResolveIngredient(ctx, owner, ref)
		if err != nil {
			return nil, err
		}
		items = append(items, recipe.ItemInput{IngredientID: ing.ID, Quantity: amount})
	}
	return items, nil
}

func printRecipe(rec *recipe.Recipe) {
	fmt.Printf("📖 %s (id %d)\n", rec.Name, rec.ID)
	fmt.Println(strings.Repeat("─", 40))
	for _, it := range rec.Items {
		fmt.Printf("   %-28s %6d %s\n", it.Name, it.Quantity, it.Unit)
	}
}

func init() {
	recipeCreateCmd.Flags().StringArrayVar(&recipeItems, "item", nil, "Ingredient quantity as ingredient=quantity (repeatable)")
	recipeSetItemsCmd.Flags().StringArrayVar(&recipeItems, "item", nil, "Ingredient quantity as ingredient=quantity (repeatable)")
	recipeImportCmd.Flags().BoolVar(&importCreateMissing, "create-missing", false, "Add unknown ingredients instead of skipping them")

	recipeCmd.AddCommand(recipeCreateCmd)
	recipeCmd.AddCommand(recipeLsCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeRenameCmd)
	recipeCmd.AddCommand(recipeSetItemsCmd)
	recipeCmd.AddCommand(recipeRemoveCmd)
	recipeCmd.AddCommand(recipeImportCmd)
	recipeCmd.AddCommand(recipeExportCmd)
}
