package repository

import (
	"errors"
	"testing"
	"time"

	"todo_api/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestUserRepository_Create(t *testing.T) {
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		user           models.User
		mockExpect     func(sqlmock.Sqlmock)
		wantID         int64
		wantErrIs      error
		errContainsStr string
	}{
		{
			name: "success",
			user: models.User{Username: "alice", Email: "a@x.com", PasswordHash: "h123", CreatedAt: created},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(q(insertUserSQL)).
					WithArgs("alice", "a@x.com", "h123", created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
			},
			wantID: 42,
		},
		{
			name: "unique violation",
			user: models.User{Username: "bob", Email: "b@x.com", PasswordHash: "h456", CreatedAt: created},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(q(insertUserSQL)).
					WithArgs("bob", "b@x.com", "h456", created).
					WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
			},
			wantErrIs:      ErrDuplicateKey,
			errContainsStr: "insert user",
		},
		{
			name: "query error",
			user: models.User{Username: "carol", Email: "c@x.com", PasswordHash: "h789", CreatedAt: created},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(q(insertUserSQL)).
					WillReturnError(errors.New("db exec failed"))
			},
			errContainsStr: "db exec failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db)
			tt.mockExpect(mock)

			u, err := repo.Create(ctx(t), tt.user)

			if tt.errContainsStr != "" || tt.wantErrIs != nil {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.wantErrIs != nil && !errors.Is(err, tt.wantErrIs) {
					t.Fatalf("expected %v, got %v", tt.wantErrIs, err)
				}
				if !contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.ID != tt.wantID || u.Username != tt.user.Username || !u.CreatedAt.Equal(created) {
				t.Fatalf("unexpected user: %+v", u)
			}
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "username", "email", "password_hash", "created_at"}

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(q(selectUserByUsernameSQL)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(7, "alice", "a@x.com", "h123", created))

		u, err := NewUserRepository(db).GetByUsername(ctx(t), "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := models.User{ID: 7, Username: "alice", Email: "a@x.com", PasswordHash: "h123", CreatedAt: created}
		if u != want {
			t.Fatalf("unexpected user: want %+v, got %+v", want, u)
		}
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(q(selectUserByUsernameSQL)).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := NewUserRepository(db).GetByUsername(ctx(t), "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(q(selectUserByUsernameSQL)).
			WithArgs("bob").
			WillReturnError(errors.New("db query failed"))

		_, err := NewUserRepository(db).GetByUsername(ctx(t), "bob")
		if err == nil || errors.Is(err, ErrNotFound) || !contains(err.Error(), "select user") {
			t.Fatalf("expected wrapped query error, got %v", err)
		}
	})
}

func TestUserRepository_Taken(t *testing.T) {
	cases := []struct {
		name         string
		rows         [][2]string
		wantUsername bool
		wantEmail    bool
	}{
		{"free", nil, false, false},
		{"username only", [][2]string{{"alice", "other@x.com"}}, true, false},
		{"email only", [][2]string{{"someone", "a@x.com"}}, false, true},
		{"both on different rows", [][2]string{{"alice", "z@x.com"}, {"zed", "a@x.com"}}, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			rows := sqlmock.NewRows([]string{"username", "email"})
			for _, r := range tc.rows {
				rows.AddRow(r[0], r[1])
			}
			mock.ExpectQuery(q(selectUserTakenSQL)).WithArgs("alice", "a@x.com").WillReturnRows(rows)

			u, e, err := NewUserRepository(db).Taken(ctx(t), "alice", "a@x.com")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u != tc.wantUsername || e != tc.wantEmail {
				t.Fatalf("got (%v, %v), want (%v, %v)", u, e, tc.wantUsername, tc.wantEmail)
			}
		})
	}
}

func TestUserRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(q(deleteUserSQL)).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
		if err := NewUserRepository(db).Delete(ctx(t), 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(q(deleteUserSQL)).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))
		if err := NewUserRepository(db).Delete(ctx(t), 4); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
