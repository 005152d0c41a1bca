package shopping

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipe-planner/internal/database"
	"recipe-planner/internal/shared"
	shoppingdb "recipe-planner/internal/shopping/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestCleanupRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	// Parent 10 loses both of its entries; parent 20 keeps one of two.
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("DELETE FROM shopping_quantities").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM shopping_quantities").WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM shopping_list_ingredients").WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("DELETE FROM shopping_quantities").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := NewCleanup(zap.NewNop())
	res, err := c.Remove(context.Background(), shoppingdb.New(db), []QuantityRef{
		{EntryID: 1, ListIngredientID: 10},
		{EntryID: 3, ListIngredientID: 20},
		{EntryID: 2, ListIngredientID: 10},
	})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if res.EntriesDeleted != 3 || res.ParentsDeleted != 1 {
		t.Errorf("Expected 3 entries and 1 parent deleted, got %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRemoveAllForSourceRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	owner := uuid.New()
	ledger := NewLedger(&database.DB{SQL: db}, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, user_id, name, created_at FROM shopping_lists").
		WithArgs(int64(1), owner.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "created_at"}).
			AddRow(1, owner.String(), "weekly", time.Now()))
	mock.ExpectQuery("SELECT q.id, q.shopping_list_ingredient_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "shopping_list_ingredient_id"}).AddRow(5, 50))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(50)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("DELETE FROM shopping_quantities").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM shopping_list_ingredients").WithArgs(int64(50)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err = ledger.RemoveAllForSource(context.Background(), owner, 1, Manual())
	if !errors.Is(err, shared.ErrStore) {
		t.Fatalf("Expected ErrStore, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
