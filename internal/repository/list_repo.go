package repository

import (
	"context"
	"fmt"

	"todo_api/internal/models"

	"github.com/jmoiron/sqlx"
)

type ListRepository struct {
	db sqlx.ExtContext
}

func NewListRepository(db sqlx.ExtContext) *ListRepository {
	return &ListRepository{db: db}
}

var _ ListRepo = (*ListRepository)(nil)

const (
	insertListSQL      = `INSERT INTO todo_lists (name, created_at, user_id) VALUES (?, ?, ?) RETURNING id`
	selectOwnedListSQL = `SELECT id, name, created_at, user_id FROM todo_lists WHERE id = ? AND user_id = ?`
	selectUserListsSQL = `SELECT id, name, created_at, user_id FROM todo_lists WHERE user_id = ? ORDER BY id`
	renameListSQL      = `UPDATE todo_lists SET name = ? WHERE id = ? AND user_id = ?`
	deleteOwnedListSQL = `DELETE FROM todo_lists WHERE id = ? AND user_id = ?`
)

// Create inserts l. A missing owner surfaces as ErrNotFound.
func (r *ListRepository) Create(ctx context.Context, l models.TodoList) (models.TodoList, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(insertListSQL), l.Name, l.CreatedAt, l.UserID).Scan(&id)
	if err != nil {
		return models.TodoList{}, fmt.Errorf("insert list for user %d: %w", l.UserID, classify(err))
	}
	l.ID = id
	return l, nil
}

// GetOwned returns the list only if userID owns it. Items are not loaded.
func (r *ListRepository) GetOwned(ctx context.Context, userID, listID int64) (models.TodoList, error) {
	var l models.TodoList
	if err := sqlx.GetContext(ctx, r.db, &l, r.db.Rebind(selectOwnedListSQL), listID, userID); err != nil {
		return models.TodoList{}, fmt.Errorf("select list %d: %w", listID, classify(err))
	}
	return l, nil
}

// ListByUser returns the user's lists ordered by id. Items are not loaded.
func (r *ListRepository) ListByUser(ctx context.Context, userID int64) ([]models.TodoList, error) {
	lists := make([]models.TodoList, 0, 8)
	if err := sqlx.SelectContext(ctx, r.db, &lists, r.db.Rebind(selectUserListsSQL), userID); err != nil {
		return nil, fmt.Errorf("select lists of user %d: %w", userID, err)
	}
	return lists, nil
}

func (r *ListRepository) Rename(ctx context.Context, userID, listID int64, name string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(renameListSQL), name, listID, userID)
	if err != nil {
		return fmt.Errorf("rename list %d: %w", listID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("rename list %d: %w", listID, err)
	}
	return nil
}

// DeleteOwned removes the list and, via ON DELETE CASCADE, its items.
func (r *ListRepository) DeleteOwned(ctx context.Context, userID, listID int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteOwnedListSQL), listID, userID)
	if err != nil {
		return fmt.Errorf("delete list %d: %w", listID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("delete list %d: %w", listID, err)
	}
	return nil
}
