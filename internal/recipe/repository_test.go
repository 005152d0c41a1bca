package recipe

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"recipe-planner/internal/database"
	"recipe-planner/internal/database/dbtest"
	"recipe-planner/internal/shared"
	"recipe-planner/internal/shopping"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fixture struct {
	db    *database.DB
	repo  *Repository
	owner uuid.UUID
	flour int64
	eggs  int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	owner := dbtest.CreateUser(t, db, "alice")
	return &fixture{
		db:    db,
		repo:  NewRepository(db, zap.NewNop()),
		owner: owner,
		flour: dbtest.CreateIngredient(t, db, owner, "flour"),
		eggs:  dbtest.CreateIngredient(t, db, owner, "eggs"),
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("MergesRepeatedIngredients", func(t *testing.T) {
		f := newFixture(t)
		rec, err := f.repo.Create(ctx, f.owner, " Pancakes ", []ItemInput{
			{IngredientID: f.eggs, Quantity: 2},
			{IngredientID: f.flour, Quantity: 200},
			{IngredientID: f.eggs, Quantity: 1},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if rec.Name != "Pancakes" {
			t.Errorf("Expected trimmed name, got '%s'", rec.Name)
		}
		want := []Item{
			{IngredientID: f.flour, Name: "flour", Unit: "g", Quantity: 200},
			{IngredientID: f.eggs, Name: "eggs", Unit: "g", Quantity: 3},
		}
		if diff := cmp.Diff(want, rec.Items); diff != "" {
			t.Errorf("Unexpected items (-want +got):\n%s", diff)
		}
	})

	t.Run("ForeignIngredientRollsBack", func(t *testing.T) {
		f := newFixture(t)
		bob := dbtest.CreateUser(t, f.db, "bob")
		bobsSalt := dbtest.CreateIngredient(t, f.db, bob, "salt")

		_, err := f.repo.Create(ctx, f.owner, "Bread", []ItemInput{
			{IngredientID: f.flour, Quantity: 500},
			{IngredientID: bobsSalt, Quantity: 5},
		})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
		if n := dbtest.Count(t, f.db, "SELECT COUNT(*) FROM recipes"); n != 0 {
			t.Errorf("Expected no recipes, got %d", n)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.repo.Create(ctx, f.owner, "", nil); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("Expected ErrValidation for empty name, got %v", err)
		}
		if _, err := f.repo.Create(ctx, f.owner, "Toast", []ItemInput{{IngredientID: f.flour, Quantity: 0}}); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("Expected ErrValidation for zero quantity, got %v", err)
		}
	})
}

func TestListRenameSetItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	rec, err := f.repo.Create(ctx, f.owner, "Omelette", []ItemInput{{IngredientID: f.eggs, Quantity: 3}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := f.repo.Create(ctx, f.owner, "Bread", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := f.repo.Rename(ctx, f.owner, rec.ID, "Frittata"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if err := f.repo.SetItems(ctx, f.owner, rec.ID, []ItemInput{
		{IngredientID: f.eggs, Quantity: 4},
		{IngredientID: f.flour, Quantity: 20},
	}); err != nil {
		t.Fatalf("SetItems failed: %v", err)
	}

	list, err := f.repo.List(ctx, f.owner)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := make(map[string]int)
	for _, s := range list {
		got[s.Name] = s.Items
	}
	if diff := cmp.Diff(map[string]int{"Bread": 0, "Frittata": 2}, got); diff != "" {
		t.Errorf("Unexpected summaries (-want +got):\n%s", diff)
	}

	bob := dbtest.CreateUser(t, f.db, "bob")
	if err := f.repo.Rename(ctx, bob, rec.ID, "Mine"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("Expected ErrNotFound renaming another user's recipe, got %v", err)
	}
	if ok, err := f.repo.Exists(ctx, bob, rec.ID); err != nil || ok {
		t.Errorf("Expected recipe to be invisible to bob, got %v, %v", ok, err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *shopping.Ledger, int64, int64) {
		f := newFixture(t)
		ledger := shopping.NewLedger(f.db, zap.NewNop())
		rec, err := f.repo.Create(ctx, f.owner, "Cake", []ItemInput{{IngredientID: f.flour, Quantity: 300}})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		list, err := ledger.CreateList(ctx, f.owner, "weekly")
		if err != nil {
			t.Fatalf("CreateList failed: %v", err)
		}
		if _, err := ledger.AddRecipe(ctx, f.owner, list.ID, rec.ID, nil); err != nil {
			t.Fatalf("AddRecipe failed: %v", err)
		}
		return f, ledger, rec.ID, list.ID
	}

	t.Run("ForgetsContributions", func(t *testing.T) {
		f, ledger, recipeID, listID := setup(t)
		forget := func(ctx context.Context, tx *sql.Tx, owner uuid.UUID, id int64) error {
			_, err := ledger.ForgetRecipeTx(ctx, tx, owner, id)
			return err
		}
		if err := f.repo.Delete(ctx, f.owner, recipeID, forget); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		list, err := ledger.List(ctx, f.owner, listID)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list.Items) != 0 {
			t.Errorf("Expected empty list after recipe deletion, got %+v", list.Items)
		}
	})

	t.Run("HookFailureKeepsRecipe", func(t *testing.T) {
		f, _, recipeID, _ := setup(t)
		boom := errors.New("boom")
		err := f.repo.Delete(ctx, f.owner, recipeID, func(context.Context, *sql.Tx, uuid.UUID, int64) error {
			return boom
		})
		if !errors.Is(err, boom) || !errors.Is(err, shared.ErrStore) {
			t.Fatalf("Expected store error wrapping boom, got %v", err)
		}
		if ok, _ := f.repo.Exists(ctx, f.owner, recipeID); !ok {
			t.Error("Expected recipe to survive a failed delete")
		}
	})

	t.Run("ContributionsBlockBareDelete", func(t *testing.T) {
		f, _, recipeID, _ := setup(t)
		if err := f.repo.Delete(ctx, f.owner, recipeID, nil); !errors.Is(err, shared.ErrStore) {
			t.Errorf("Expected foreign key failure, got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)
		if err := f.repo.Delete(ctx, f.owner, 404, nil); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
