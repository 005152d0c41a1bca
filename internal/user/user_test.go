package user

import (
	"context"
	"errors"
	"testing"

	"recipe-planner/internal/database/dbtest"
	"recipe-planner/internal/shared"

	"go.uber.org/zap"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		repo := NewRepository(dbtest.New(t), zap.NewNop())
		u, err := repo.Create(ctx, "alice")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		byID, err := repo.Get(ctx, u.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if byID.Username != "alice" {
			t.Errorf("Expected alice, got %s", byID.Username)
		}

		byName, err := repo.GetByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetByUsername failed: %v", err)
		}
		if byName.ID != u.ID {
			t.Errorf("Expected id %s, got %s", u.ID, byName.ID)
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		repo := NewRepository(dbtest.New(t), zap.NewNop())
		if _, err := repo.Create(ctx, "alice"); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := repo.Create(ctx, "alice"); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("Expected ErrValidation, got %v", err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		repo := NewRepository(dbtest.New(t), zap.NewNop())
		if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("TelegramUsersAreCreatedOnce", func(t *testing.T) {
		repo := NewRepository(dbtest.New(t), zap.NewNop())
		if _, err := repo.Create(ctx, "alice"); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		first, err := repo.GetOrCreateByTelegramID(ctx, 42, "alice")
		if err != nil {
			t.Fatalf("GetOrCreateByTelegramID failed: %v", err)
		}
		if first.Username != "alice_tg42" {
			t.Errorf("Expected clashing username to be suffixed, got %s", first.Username)
		}

		second, err := repo.GetOrCreateByTelegramID(ctx, 42, "someone-else")
		if err != nil {
			t.Fatalf("GetOrCreateByTelegramID failed: %v", err)
		}
		if second.ID != first.ID || second.TelegramID != 42 {
			t.Errorf("Expected the same user back, got %+v and %+v", first, second)
		}

		anon, err := repo.GetOrCreateByTelegramID(ctx, 7, "")
		if err != nil {
			t.Fatalf("GetOrCreateByTelegramID failed: %v", err)
		}
		if anon.Username != "tg7" {
			t.Errorf("Expected generated username tg7, got %s", anon.Username)
		}
	})
}
