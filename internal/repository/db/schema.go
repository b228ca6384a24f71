package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

const sqliteUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const sqliteTodoLists = `
CREATE TABLE IF NOT EXISTS todo_lists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
);
`

const sqliteTodoItems = `
CREATE TABLE IF NOT EXISTS todo_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    list_id INTEGER NOT NULL REFERENCES todo_lists(id) ON DELETE CASCADE
);
`

const sqliteActivity = `
CREATE TABLE IF NOT EXISTS activity (
    id TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    subject_id INTEGER NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const postgresUsers = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
`

const postgresTodoLists = `
CREATE TABLE IF NOT EXISTS todo_lists (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
);
`

const postgresTodoItems = `
CREATE TABLE IF NOT EXISTS todo_items (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL,
    list_id BIGINT NOT NULL REFERENCES todo_lists(id) ON DELETE CASCADE
);
`

const postgresActivity = `
CREATE TABLE IF NOT EXISTS activity (
    id TEXT PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    occurred_at TIMESTAMPTZ NOT NULL,
    type TEXT NOT NULL,
    subject_id BIGINT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

// Shared by both dialects.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_todo_lists_user_id ON todo_lists (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_todo_items_list_id ON todo_items (list_id);`,
	`CREATE INDEX IF NOT EXISTS idx_activity_user_occurred ON activity (user_id, occurred_at);`,
}

func schemaFor(driver string) []string {
	var tables []string
	switch driver {
	case postgresDriverName:
		tables = []string{postgresUsers, postgresTodoLists, postgresTodoItems, postgresActivity}
	default:
		tables = []string{sqliteUsers, sqliteTodoLists, sqliteTodoItems, sqliteActivity}
	}
	return append(tables, indexes...)
}

// EnsureSchema creates any missing tables and indexes in one transaction.
func EnsureSchema(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback()
	}()

	for i, stmt := range schemaFor(db.DriverName()) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
