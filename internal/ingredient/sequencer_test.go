package ingredient

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"recipe-planner/internal/database"
	"recipe-planner/internal/database/dbtest"
	"recipe-planner/internal/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fixture struct {
	db    *database.DB
	seq   *Sequencer
	repo  *Repository
	owner uuid.UUID
	gram  int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	return &fixture{
		db:    db,
		seq:   NewSequencer(db, zap.NewNop()),
		repo:  NewRepository(db, zap.NewNop()),
		owner: dbtest.CreateUser(t, db, "alice"),
		gram:  dbtest.UnitID(t, db, "g"),
	}
}

func (f *fixture) insert(t *testing.T, name string, pos *int) *Ingredient {
	t.Helper()
	ing, err := f.seq.Insert(context.Background(), f.owner, NewIngredient{Name: name, UnitID: f.gram, Position: pos})
	if err != nil {
		t.Fatalf("Insert(%s) failed: %v", name, err)
	}
	return ing
}

// order returns ingredient names in position order and asserts density.
func (f *fixture) order(t *testing.T) []string {
	t.Helper()
	list, err := f.repo.List(context.Background(), f.owner)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	names := make([]string, len(list))
	for i, ing := range list {
		if ing.Sort != i+1 {
			t.Fatalf("Expected dense positions, ingredient %s has sort %d at index %d", ing.Name, ing.Sort, i)
		}
		names[i] = ing.Name
	}
	return names
}

func intPtr(v int) *int { return &v }

func TestSequencerInsert(t *testing.T) {
	t.Run("Append", func(t *testing.T) {
		f := newFixture(t)
		a := f.insert(t, "A", nil)
		b := f.insert(t, "B", nil)
		if a.Sort != 1 || b.Sort != 2 {
			t.Errorf("Expected sorts 1,2 got %d,%d", a.Sort, b.Sort)
		}
		if a.Unit != "g" {
			t.Errorf("Expected unit 'g', got '%s'", a.Unit)
		}
	})

	t.Run("AtPositionShiftsTail", func(t *testing.T) {
		f := newFixture(t)
		f.insert(t, "A", nil)
		f.insert(t, "B", nil)
		f.insert(t, "C", nil)
		x := f.insert(t, "X", intPtr(2))
		if x.Sort != 2 {
			t.Errorf("Expected X at 2, got %d", x.Sort)
		}
		if diff := cmp.Diff([]string{"A", "X", "B", "C"}, f.order(t)); diff != "" {
			t.Errorf("Unexpected order (-want +got):\n%s", diff)
		}
	})

	t.Run("ClampBelowOne", func(t *testing.T) {
		f := newFixture(t)
		f.insert(t, "A", nil)
		x := f.insert(t, "X", intPtr(0))
		if x.Sort != 1 {
			t.Errorf("Expected insert at 0 to clamp to 1, got %d", x.Sort)
		}
		if diff := cmp.Diff([]string{"X", "A"}, f.order(t)); diff != "" {
			t.Errorf("Unexpected order (-want +got):\n%s", diff)
		}
	})

	t.Run("ClampAboveEnd", func(t *testing.T) {
		f := newFixture(t)
		f.insert(t, "A", nil)
		f.insert(t, "B", nil)
		f.insert(t, "C", nil)
		x := f.insert(t, "X", intPtr(3+5))
		if x.Sort != 4 {
			t.Errorf("Expected insert at N+5 to clamp to N+1=4, got %d", x.Sort)
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.seq.Insert(context.Background(), f.owner, NewIngredient{Name: "  ", UnitID: f.gram})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("UnknownUnit", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.seq.Insert(context.Background(), f.owner, NewIngredient{Name: "A", UnitID: 9999})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSequencerMove(t *testing.T) {
	setup := func(t *testing.T, names ...string) (*fixture, map[string]*Ingredient) {
		f := newFixture(t)
		byName := make(map[string]*Ingredient)
		for _, n := range names {
			byName[n] = f.insert(t, n, nil)
		}
		return f, byName
	}
	ctx := context.Background()

	t.Run("LastToFirst", func(t *testing.T) {
		f, ing := setup(t, "A", "B", "C")
		pos, err := f.seq.Move(ctx, f.owner, ing["C"].ID, 1)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if pos != 1 {
			t.Errorf("Expected new position 1, got %d", pos)
		}
		if diff := cmp.Diff([]string{"C", "A", "B"}, f.order(t)); diff != "" {
			t.Errorf("Unexpected order (-want +got):\n%s", diff)
		}
	})

	t.Run("DownUsesPreShiftNumbering", func(t *testing.T) {
		f, ing := setup(t, "A", "B", "C", "D")
		pos, err := f.seq.Move(ctx, f.owner, ing["A"].ID, 3)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if pos != 2 {
			t.Errorf("Expected new position 2, got %d", pos)
		}
		if diff := cmp.Diff([]string{"B", "A", "C", "D"}, f.order(t)); diff != "" {
			t.Errorf("Unexpected order (-want +got):\n%s", diff)
		}
	})

	t.Run("PastEndClampsToLast", func(t *testing.T) {
		f, ing := setup(t, "A", "B", "C")
		pos, err := f.seq.Move(ctx, f.owner, ing["A"].ID, 42)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if pos != 3 {
			t.Errorf("Expected new position 3, got %d", pos)
		}
		if diff := cmp.Diff([]string{"B", "C", "A"}, f.order(t)); diff != "" {
			t.Errorf("Unexpected order (-want +got):\n%s", diff)
		}
	})

	t.Run("BelowOneClampsToFirst", func(t *testing.T) {
		f, ing := setup(t, "A", "B", "C")
		if _, err := f.seq.Move(ctx, f.owner, ing["B"].ID, -3); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if diff := cmp.Diff([]string{"B", "A", "C"}, f.order(t)); diff != "" {
			t.Errorf("Unexpected order (-want +got):\n%s", diff)
		}
	})

	t.Run("CurrentPositionIsNothingToSort", func(t *testing.T) {
		f, ing := setup(t, "A", "B", "C")
		for _, n := range []string{"A", "B", "C"} {
			_, err := f.seq.Move(ctx, f.owner, ing[n].ID, ing[n].Sort)
			if !errors.Is(err, shared.ErrNothingToSort) {
				t.Errorf("Expected ErrNothingToSort moving %s to its own position, got %v", n, err)
			}
		}
		if diff := cmp.Diff([]string{"A", "B", "C"}, f.order(t)); diff != "" {
			t.Errorf("Order changed after rejected moves (-want +got):\n%s", diff)
		}
	})

	t.Run("LastPastEndIsNothingToSort", func(t *testing.T) {
		f, ing := setup(t, "A", "B", "C")
		_, err := f.seq.Move(ctx, f.owner, ing["C"].ID, 10)
		if !errors.Is(err, shared.ErrNothingToSort) {
			t.Errorf("Expected ErrNothingToSort, got %v", err)
		}
	})

	t.Run("OtherOwnerIsNotFound", func(t *testing.T) {
		f, ing := setup(t, "A", "B")
		bob := dbtest.CreateUser(t, f.db, "bob")
		_, err := f.seq.Move(ctx, bob, ing["A"].ID, 2)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSequencerDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("RenumbersSurvivors", func(t *testing.T) {
		f := newFixture(t)
		f.insert(t, "A", nil)
		b := f.insert(t, "B", nil)
		f.insert(t, "C", nil)
		f.insert(t, "D", nil)

		if err := f.seq.Delete(ctx, f.owner, b.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		positions, err := f.seq.Positions(ctx, f.owner)
		if err != nil {
			t.Fatalf("Positions failed: %v", err)
		}
		if diff := cmp.Diff([]int{1, 2, 3}, positions); diff != "" {
			t.Errorf("Unexpected positions (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"A", "C", "D"}, f.order(t)); diff != "" {
			t.Errorf("Unexpected order (-want +got):\n%s", diff)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)
		if err := f.seq.Delete(ctx, f.owner, 12345); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("OwnersAreIndependent", func(t *testing.T) {
		f := newFixture(t)
		bob := dbtest.CreateUser(t, f.db, "bob")
		a := f.insert(t, "A", nil)
		f.insert(t, "B", nil)
		if _, err := f.seq.Insert(ctx, bob, NewIngredient{Name: "Z", UnitID: f.gram}); err != nil {
			t.Fatalf("Insert for bob failed: %v", err)
		}

		if err := f.seq.Delete(ctx, f.owner, a.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		positions, err := f.seq.Positions(ctx, bob)
		if err != nil {
			t.Fatalf("Positions failed: %v", err)
		}
		if diff := cmp.Diff([]int{1}, positions); diff != "" {
			t.Errorf("Bob's positions changed (-want +got):\n%s", diff)
		}
	})
}

// TestSequencerStaysDense runs a random mix of operations and checks the
// positions are exactly 1..N after each one.
func TestSequencerStaysDense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	var ids []int64
	for step := 0; step < 150; step++ {
		op := rng.Intn(3)
		if len(ids) < 3 {
			op = 0
		}
		switch op {
		case 0:
			pos := rng.Intn(len(ids)+4) - 1
			ing, err := f.seq.Insert(ctx, f.owner, NewIngredient{Name: "item", UnitID: f.gram, Position: &pos})
			if err != nil {
				t.Fatalf("step %d: Insert failed: %v", step, err)
			}
			ids = append(ids, ing.ID)
		case 1:
			id := ids[rng.Intn(len(ids))]
			_, err := f.seq.Move(ctx, f.owner, id, rng.Intn(len(ids)+4)-1)
			if err != nil && !errors.Is(err, shared.ErrNothingToSort) {
				t.Fatalf("step %d: Move failed: %v", step, err)
			}
		case 2:
			i := rng.Intn(len(ids))
			if err := f.seq.Delete(ctx, f.owner, ids[i]); err != nil {
				t.Fatalf("step %d: Delete failed: %v", step, err)
			}
			ids = append(ids[:i], ids[i+1:]...)
		}

		positions, err := f.seq.Positions(ctx, f.owner)
		if err != nil {
			t.Fatalf("step %d: Positions failed: %v", step, err)
		}
		if len(positions) != len(ids) {
			t.Fatalf("step %d: expected %d positions, got %d", step, len(ids), len(positions))
		}
		for i, p := range positions {
			if p != i+1 {
				t.Fatalf("step %d: positions not dense: %v", step, positions)
			}
		}
	}
}
