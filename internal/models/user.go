package models

import "time"

// User is an account owning todo lists.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // don’t expose hash
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Username string `validate:"required,notblank,max=64"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,notblank"`
}
