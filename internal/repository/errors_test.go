package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify(t *testing.T) {
	other := errors.New("connection reset")

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrNotFound},
		{"pg unique", &pgconn.PgError{Code: pgUniqueViolation}, ErrDuplicateKey},
		{"pg foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, ErrNotFound},
		{"pg other", &pgconn.PgError{Code: "40001"}, nil},
		{"unknown", other, other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.in)
			switch {
			case tc.want == nil && tc.in == nil:
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
			case tc.want == nil:
				if got != tc.in {
					t.Fatalf("expected input error back, got %v", got)
				}
			default:
				if !errors.Is(got, tc.want) {
					t.Fatalf("classify(%v) = %v, want %v", tc.in, got, tc.want)
				}
			}
		})
	}
}
