package repository

import (
	"errors"
	"testing"
	"time"

	"todo_api/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestListRepository_Create_MissingOwnerIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q(insertListSQL)).
		WithArgs("Home", created, int64(99)).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

	_, err := NewListRepository(db).Create(ctx(t), models.TodoList{Name: "Home", CreatedAt: created, UserID: 99})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRepository_GetOwned_FiltersByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q(selectOwnedListSQL)).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "user_id"}).AddRow(5, "Home", created, 1))

	l, err := NewListRepository(db).GetOwned(ctx(t), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ID != 5 || l.Name != "Home" || l.UserID != 1 || l.Items != nil {
		t.Fatalf("unexpected list: %+v", l)
	}
}

func TestListRepository_DeleteOwned_NotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(q(deleteOwnedListSQL)).
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewListRepository(db).DeleteOwned(ctx(t), 2, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestItemRepository_ListByLists(t *testing.T) {
	t.Run("no lists skips the query", func(t *testing.T) {
		db, _ := newMockDB(t)
		items, err := NewItemRepository(db).ListByLists(ctx(t), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if items == nil || len(items) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", items)
		}
	})

	t.Run("expands IN clause", func(t *testing.T) {
		db, mock := newMockDB(t)
		created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
		mock.ExpectQuery(q(`SELECT id, title, completed, created_at, list_id FROM todo_items WHERE list_id IN (?, ?) ORDER BY id`)).
			WithArgs(int64(1), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "completed", "created_at", "list_id"}).
				AddRow(10, "a", false, created, 1).
				AddRow(11, "b", true, created, 2))

		items, err := NewItemRepository(db).ListByLists(ctx(t), []int64{1, 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 || items[0].ListID != 1 || !items[1].Completed {
			t.Fatalf("unexpected items: %+v", items)
		}
	})
}

func TestItemRepository_GetOwned_JoinsOwner(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(q(selectOwnedItemSQL)).
		WithArgs(int64(10), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "completed", "created_at", "list_id"}))

	if _, err := NewItemRepository(db).GetOwned(ctx(t), 3, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestItemRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(q(updateItemSQL)).
		WithArgs("Buy milk", true, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewItemRepository(db).Update(ctx(t), models.TodoItem{ID: 10, Title: "Buy milk", Completed: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestItemRepository_DeleteOwned_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(q(deleteOwnedItemSQL)).
		WithArgs(int64(10), int64(3)).
		WillReturnError(errors.New("down"))

	err := NewItemRepository(db).DeleteOwned(ctx(t), 3, 10)
	if err == nil || errors.Is(err, ErrNotFound) || !contains(err.Error(), "down") {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
