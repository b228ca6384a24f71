package repository

import (
	"context"
	"fmt"

	"todo_api/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of UserRepo interface at compile time.
var _ UserRepo = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?) RETURNING id`
	selectUserByIDSQL       = `SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`
	selectUserByUsernameSQL = `SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`
	selectUserTakenSQL      = `SELECT username, email FROM users WHERE username = ? OR email = ?`
	deleteUserSQL           = `DELETE FROM users WHERE id = ?`
)

// Create inserts a new user and returns it with its ID set.
func (r *UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(insertUserSQL),
		u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	).Scan(&id)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user %q: %w", u.Username, classify(err))
	}
	u.ID = id
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	if err := sqlx.GetContext(ctx, r.db, &u, r.db.Rebind(selectUserByIDSQL), id); err != nil {
		return models.User{}, fmt.Errorf("select user %d: %w", id, classify(err))
	}
	return u, nil
}

// GetByUsername fetches a user by username. Returns ErrNotFound if absent.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	if err := sqlx.GetContext(ctx, r.db, &u, r.db.Rebind(selectUserByUsernameSQL), username); err != nil {
		return models.User{}, fmt.Errorf("select user %q: %w", username, classify(err))
	}
	return u, nil
}

// Taken reports which of username and email already belong to some account.
func (r *UserRepository) Taken(ctx context.Context, username, email string) (bool, bool, error) {
	var rows []struct {
		Username string `db:"username"`
		Email    string `db:"email"`
	}
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(selectUserTakenSQL), username, email); err != nil {
		return false, false, fmt.Errorf("check user %q: %w", username, err)
	}
	var usernameTaken, emailTaken bool
	for _, row := range rows {
		usernameTaken = usernameTaken || row.Username == username
		emailTaken = emailTaken || row.Email == email
	}
	return usernameTaken, emailTaken, nil
}

// Delete removes the user; lists, items and activity go with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteUserSQL), id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
