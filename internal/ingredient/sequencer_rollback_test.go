package ingredient

import (
	"context"
	"errors"
	"testing"

	"recipe-planner/internal/database"
	"recipe-planner/internal/shared"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newMockSequencer(t *testing.T) (*Sequencer, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSequencer(&database.DB{SQL: db}, zap.NewNop()), mock
}

func TestSequencerRollsBackOnStoreFailure(t *testing.T) {
	owner := uuid.New()

	t.Run("DeleteShiftFails", func(t *testing.T) {
		seq, mock := newMockSequencer(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, user_id, name, unit_id, sort FROM ingredients").
			WithArgs(int64(2), owner.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "unit_id", "sort"}).
				AddRow(2, owner.String(), "B", 1, 2))
		mock.ExpectExec("DELETE FROM ingredients").
			WithArgs(int64(2), owner.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT id, sort FROM ingredients").
			WillReturnRows(sqlmock.NewRows([]string{"id", "sort"}).AddRow(3, 3).AddRow(4, 4))
		mock.ExpectExec("UPDATE ingredients SET sort").
			WithArgs(int64(2), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE ingredients SET sort").
			WithArgs(int64(3), int64(4)).
			WillReturnError(errors.New("disk I/O error"))
		mock.ExpectRollback()

		err := seq.Delete(context.Background(), owner, 2)
		if !errors.Is(err, shared.ErrStore) {
			t.Fatalf("Expected ErrStore, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations: %v", err)
		}
	})

	t.Run("InsertShiftRunsTopDown", func(t *testing.T) {
		seq, mock := newMockSequencer(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, name FROM units").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "g"))
		mock.ExpectQuery("SELECT CAST").
			WithArgs(owner.String()).
			WillReturnRows(sqlmock.NewRows([]string{"max_sort"}).AddRow(3))
		mock.ExpectQuery("SELECT id, sort FROM ingredients").
			WithArgs(owner.String(), int64(2), int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "sort"}).AddRow(11, 2).AddRow(12, 3))
		mock.ExpectExec("UPDATE ingredients SET sort").
			WithArgs(int64(4), int64(12)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE ingredients SET sort").
			WithArgs(int64(3), int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO ingredients").
			WillReturnError(errors.New("database is locked"))
		mock.ExpectRollback()

		pos := 2
		_, err := seq.Insert(context.Background(), owner, NewIngredient{Name: "X", UnitID: 1, Position: &pos})
		var se *shared.StoreError
		if !errors.As(err, &se) {
			t.Fatalf("Expected StoreError, got %v", err)
		}
		if se.Op != "insert ingredient" {
			t.Errorf("Expected op 'insert ingredient', got '%s'", se.Op)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations: %v", err)
		}
	})

	t.Run("NothingToSortRollsBackQuietly", func(t *testing.T) {
		seq, mock := newMockSequencer(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, user_id, name, unit_id, sort FROM ingredients").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "unit_id", "sort"}).
				AddRow(5, owner.String(), "E", 1, 2))
		mock.ExpectQuery("SELECT CAST").
			WillReturnRows(sqlmock.NewRows([]string{"max_sort"}).AddRow(4))
		mock.ExpectRollback()

		_, err := seq.Move(context.Background(), owner, 5, 2)
		if !errors.Is(err, shared.ErrNothingToSort) {
			t.Fatalf("Expected ErrNothingToSort, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations: %v", err)
		}
	})
}
