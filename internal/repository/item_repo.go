package repository

import (
	"context"
	"fmt"

	"todo_api/internal/models"

	"github.com/jmoiron/sqlx"
)

type ItemRepository struct {
	db sqlx.ExtContext
}

func NewItemRepository(db sqlx.ExtContext) *ItemRepository {
	return &ItemRepository{db: db}
}

var _ ItemRepo = (*ItemRepository)(nil)

const (
	insertItemSQL = `INSERT INTO todo_items (title, completed, created_at, list_id) VALUES (?, ?, ?, ?) RETURNING id`

	// ownership follows item -> list -> user
	selectOwnedItemSQL = `
		SELECT i.id, i.title, i.completed, i.created_at, i.list_id
		FROM todo_items i
		JOIN todo_lists l ON l.id = i.list_id
		WHERE i.id = ? AND l.user_id = ?
	`
	selectItemsOfListsSQL = `SELECT id, title, completed, created_at, list_id FROM todo_items WHERE list_id IN (?) ORDER BY id`
	updateItemSQL         = `UPDATE todo_items SET title = ?, completed = ? WHERE id = ?`
	deleteOwnedItemSQL    = `DELETE FROM todo_items WHERE id = ? AND list_id IN (SELECT id FROM todo_lists WHERE user_id = ?)`
)

// Create inserts it. A missing list surfaces as ErrNotFound.
func (r *ItemRepository) Create(ctx context.Context, it models.TodoItem) (models.TodoItem, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(insertItemSQL), it.Title, it.Completed, it.CreatedAt, it.ListID).Scan(&id)
	if err != nil {
		return models.TodoItem{}, fmt.Errorf("insert item into list %d: %w", it.ListID, classify(err))
	}
	it.ID = id
	return it, nil
}

func (r *ItemRepository) GetOwned(ctx context.Context, userID, itemID int64) (models.TodoItem, error) {
	var it models.TodoItem
	if err := sqlx.GetContext(ctx, r.db, &it, r.db.Rebind(selectOwnedItemSQL), itemID, userID); err != nil {
		return models.TodoItem{}, fmt.Errorf("select item %d: %w", itemID, classify(err))
	}
	return it, nil
}

// ListByLists loads the items of all given lists with a single query.
func (r *ItemRepository) ListByLists(ctx context.Context, listIDs []int64) ([]models.TodoItem, error) {
	items := make([]models.TodoItem, 0, 16)
	if len(listIDs) == 0 {
		return items, nil
	}
	q, args, err := sqlx.In(selectItemsOfListsSQL, listIDs)
	if err != nil {
		return nil, fmt.Errorf("expand item query: %w", err)
	}
	if err := sqlx.SelectContext(ctx, r.db, &items, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("select items of %d lists: %w", len(listIDs), err)
	}
	return items, nil
}

// Update writes title and completed. Ownership is checked by the caller.
func (r *ItemRepository) Update(ctx context.Context, it models.TodoItem) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(updateItemSQL), it.Title, it.Completed, it.ID)
	if err != nil {
		return fmt.Errorf("update item %d: %w", it.ID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("update item %d: %w", it.ID, err)
	}
	return nil
}

func (r *ItemRepository) DeleteOwned(ctx context.Context, userID, itemID int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteOwnedItemSQL), itemID, userID)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", itemID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("delete item %d: %w", itemID, err)
	}
	return nil
}
