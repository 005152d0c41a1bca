package main

import (
	"context"
	"fmt"
	"strings"

	"recipe-planner/internal/shopping"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage shopping lists",
	Long: `Shopping lists hold ingredients in shop order. Every quantity remembers
where it came from: added by hand, or by a recipe. Adding the same ingredient
for the same source again increases the existing quantity.

Lists, ingredients and recipes can be referred to by id or by name.`,
}

var listCreateCmd = &cobra.Command{
	Use:   "create <name...>",
	Short: "Create an empty shopping list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.CreateList(ctx, owner, joinArgs(args))
			if err != nil {
				return err
			}
			return emit(list, func() {
				fmt.Printf("🛒 Created %s (id %d)\n", list.Name, list.ID)
			})
		})
	},
}

var listLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "Show all shopping lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			lists, err := e.app.Lists(ctx, owner)
			if err != nil {
				return err
			}
			return emit(lists, func() {
				if len(lists) == 0 {
					fmt.Println("No shopping lists yet")
				}
				for _, l := range lists {
					fmt.Printf("%3d  %-24s %d/%d checked  %s\n", l.ID, l.Name, l.Checked, l.Ingredients, l.CreatedAt.Local().Format("2006-01-02"))
				}
			})
		})
	},
}

var listShowCmd = &cobra.Command{
	Use:   "show <list>",
	Short: "Show a list's items in shop order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			ref, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}
			list, err := e.app.List(ctx, owner, ref.ID)
			if err != nil {
				return err
			}
			return emit(list, func() { printList(list) })
		})
	},
}

var listRenameCmd = &cobra.Command{
	Use:   "rename <list> <new name...>",
	Short: "Rename a shopping list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}
			return e.app.RenameList(ctx, owner, list.ID, joinArgs(args[1:]))
		})
	},
}

var listRemoveCmd = &cobra.Command{
	Use:   "rm <list>",
	Short: "Delete a shopping list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}
			if err := e.app.DeleteList(ctx, owner, list.ID); err != nil {
				return err
			}
			fmt.Printf("🗑  Deleted %s\n", list.Name)
			return nil
		})
	},
}

var listAddSource string

var listAddCmd = &cobra.Command{
	Use:   "add <list> <ingredient> <quantity>",
	Short: "Add a quantity of an ingredient",
	Long: `Add a quantity of an ingredient to a list. Without --source the quantity
counts as added by hand; --source recipe:<id> books it on a recipe.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := shopping.ParseSource(listAddSource)
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}
			ing, err := e.app.ResolveIngredient(ctx, owner, args[1])
			if err != nil {
				return err
			}
			entry, err := e.app.AddQuantity(ctx, owner, list.ID, ing.ID, source, amount)
			if err != nil {
				return err
			}
			return emit(entry, func() {
				fmt.Printf("✅ %s: %d %s (%s, entry %d)\n", ing.Name, entry.Quantity, ing.Unit, entry.Source, entry.ID)
			})
		})
	},
}

var listSetCmd = &cobra.Command{
	Use:   "set <list> <entry-id> <quantity>",
	Short: "Overwrite one quantity entry",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseID(args[1], "entry id")
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}
			return e.app.UpdateQuantity(ctx, owner, list.ID, entryID, amount)
		})
	},
}

var listRemoveEntryCmd = &cobra.Command{
	Use:   "rm-entry <list> <entry-id>",
	Short: "Delete one quantity entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseID(args[1], "entry id")
		if err != nil {
			return err
		}
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}
			res, err := e.app.RemoveQuantity(ctx, owner, list.ID, entryID)
			if err != nil {
				return err
			}
			if res.ParentsDeleted > 0 {
				fmt.Println("🗑  Entry removed, the ingredient is off the list")
			} else {
				fmt.Println("🗑  Entry removed")
			}
			return nil
		})
	},
}

var listRemoveIngredientCmd = &cobra.Command{
	Use:   "rm-ingredient <list> <ingredient>",
	Short: "Take an ingredient off a list with all its quantities",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}
			ing, err := e.app.ResolveIngredient(ctx, owner, args[1])
			if err != nil {
				return err
			}
			return e.app.RemoveFromList(ctx, owner, list.ID, ing.ID)
		})
	},
}

var listCheckCmd = &cobra.Command{
	Use:   "check <list> <ingredient>",
	Short: "Tick or untick an ingredient",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}
			ing, err := e.app.ResolveIngredient(ctx, owner, args[1])
			if err != nil {
				return err
			}
			checked, err := e.app.ToggleChecked(ctx, owner, list.ID, ing.ID)
			if err != nil {
				return err
			}
			if checked {
				fmt.Printf("☑️  %s checked\n", ing.Name)
			} else {
				fmt.Printf("⬜ %s unchecked\n", ing.Name)
			}
			return nil
		})
	},
}

var listAddRecipeItems []string

var listAddRecipeCmd = &cobra.Command{
	Use:   "add-recipe <list> <recipe>",
	Short: "Add a recipe's ingredients to a list",
	Long: `Add a recipe's ingredients to a list, booked on the recipe. Without --item
the recipe's stored quantities are used; --item ingredient=quantity overrides
them (repeatable).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}
			rec, err := e.app.ResolveRecipe(ctx, owner, args[1])
			if err != nil {
				return err
			}
			items, err := parseItems(ctx, e, owner, listAddRecipeItems)
			if err != nil {
				return err
			}
			contributions := make([]shopping.Contribution, len(items))
			for i, it := range items {
				contributions[i] = shopping.Contribution{IngredientID: it.IngredientID, Quantity: it.Quantity}
			}

			entries, err := e.app.AddRecipeToList(ctx, owner, list.ID, rec.ID, contributions)
			if err != nil {
				return err
			}
			return emit(entries, func() {
				fmt.Printf("🍳 Added %d ingredients from %s to %s\n", len(entries), rec.Name, list.Name)
			})
		})
	},
}

var listRemoveRecipeCmd = &cobra.Command{
	Use:   "remove-recipe <list> <recipe|manual>",
	Short: "Remove everything a recipe (or manual adding) put on a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return asOwner(func(ctx context.Context, e *env, owner uuid.UUID) error {
			list, err := e.app.ResolveList(ctx, owner, args[0])
			if err != nil {
				return err
			}

			source := shopping.Manual()
			if !strings.EqualFold(args[1], "manual") {
				rec, err := e.app.ResolveRecipe(ctx, owner, args[1])
				if err != nil {
					return err
				}
				source = shopping.FromRecipe(rec.ID)
			}

			n, err := e.app.RemoveSource(ctx, owner, list.ID, source)
			if err != nil {
				return err
			}
			fmt.Printf("🗑  Removed %d quantities (%s)\n", n, source)
			return nil
		})
	},
}

func printList(list *shopping.ShoppingList) {
	fmt.Printf("🛒 %s\n", list.Name)
	fmt.Println(strings.Repeat("═", 60))
	if len(list.Items) == 0 {
		fmt.Println("Nothing on this list yet")
		return
	}
	for _, it := range list.Items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		fmt.Printf("%s %-28s %6d %s\n", box, it.Name, it.Total, it.Unit)
		for _, entry := range it.Entries {
			label := entry.Source.String()
			if entry.RecipeName != "" {
				label = entry.RecipeName
			}
			fmt.Printf("      #%-5d %-22s %6d\n", entry.ID, label, entry.Quantity)
		}
	}
}

func init() {
	listAddCmd.Flags().StringVarP(&listAddSource, "source", "s", "manual", `Source of the quantity: "manual" or "recipe:<id>"`)
	listAddRecipeCmd.Flags().StringArrayVar(&listAddRecipeItems, "item", nil, "Ingredient quantity as ingredient=quantity (repeatable)")

	listCmd.AddCommand(listCreateCmd)
	listCmd.AddCommand(listLsCmd)
	listCmd.AddCommand(listShowCmd)
	listCmd.AddCommand(listRenameCmd)
	listCmd.AddCommand(listRemoveCmd)
	listCmd.AddCommand(listAddCmd)
	listCmd.AddCommand(listSetCmd)
	listCmd.AddCommand(listRemoveEntryCmd)
	listCmd.AddCommand(listRemoveIngredientCmd)
	listCmd.AddCommand(listCheckCmd)
	listCmd.AddCommand(listAddRecipeCmd)
	listCmd.AddCommand(listRemoveRecipeCmd)
}
