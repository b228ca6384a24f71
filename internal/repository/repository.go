package repository

import (
	"context"
	"fmt"
	"time"

	"todo_api/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepo interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Taken(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
	Delete(ctx context.Context, id int64) error
}

type ListRepo interface {
	Create(ctx context.Context, l models.TodoList) (models.TodoList, error)
	GetOwned(ctx context.Context, userID, listID int64) (models.TodoList, error)
	ListByUser(ctx context.Context, userID int64) ([]models.TodoList, error)
	Rename(ctx context.Context, userID, listID int64, name string) error
	DeleteOwned(ctx context.Context, userID, listID int64) error
}

type ItemRepo interface {
	Create(ctx context.Context, it models.TodoItem) (models.TodoItem, error)
	GetOwned(ctx context.Context, userID, itemID int64) (models.TodoItem, error)
	ListByLists(ctx context.Context, listIDs []int64) ([]models.TodoItem, error)
	Update(ctx context.Context, it models.TodoItem) error
	DeleteOwned(ctx context.Context, userID, itemID int64) error
}

type ActivityRepo interface {
	Append(ctx context.Context, a models.Activity) error
	List(ctx context.Context, userID int64, from, to time.Time, typ string) ([]models.Activity, error)
}

// Repository groups the per-entity repositories over one database handle,
// or over one transaction when obtained inside Transact.
type Repository struct {
	Users    UserRepo
	Lists    ListRepo
	Items    ItemRepo
	Activity ActivityRepo

	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	r := newRepository(db)
	r.db = db
	return r
}

func newRepository(ext sqlx.ExtContext) *Repository {
	return &Repository{
		Users:    NewUserRepository(ext),
		Lists:    NewListRepository(ext),
		Items:    NewItemRepository(ext),
		Activity: NewActivityRepository(ext),
	}
}

// Transact runs fn with repositories bound to a single transaction. The
// transaction is committed if fn returns nil and rolled back otherwise,
// including when fn panics.
//
// A Repository that is already transaction-bound, or that was assembled
// without a database, runs fn against itself.
func (r *Repository) Transact(ctx context.Context, fn func(tx *Repository) error) (err error) {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(newRepository(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
