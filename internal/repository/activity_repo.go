package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"todo_api/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ActivityRepository struct {
	db sqlx.ExtContext
}

func NewActivityRepository(db sqlx.ExtContext) *ActivityRepository {
	return &ActivityRepository{db: db}
}

var _ ActivityRepo = (*ActivityRepository)(nil)

const insertActivitySQL = `
		INSERT INTO activity (id, user_id, occurred_at, type, subject_id, message, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

// Append inserts a new entry. If ID or OccurredAt are empty, they’re set.
func (r *ActivityRepository) Append(ctx context.Context, a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	} else {
		a.OccurredAt = a.OccurredAt.UTC()
	}

	// marshal metadata if present
	var metaPtr *string
	if a.Metadata != nil {
		b, err := json.Marshal(a.Metadata)
		if err != nil {
			return fmt.Errorf("marshal activity metadata: %w", err)
		}
		s := string(b)
		metaPtr = &s
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertActivitySQL),
		a.ID,
		a.UserID,
		a.OccurredAt,
		strings.ToUpper(strings.TrimSpace(a.Type)),
		a.SubjectID,
		a.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert activity for user %d: %w", a.UserID, classify(err))
	}
	return nil
}

// List returns the user's entries filtered by [from, to] (inclusive) and/or type, ordered ASC.
func (r *ActivityRepository) List(ctx context.Context, userID int64, from, to time.Time, typ string) ([]models.Activity, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, user_id, occurred_at, type, subject_id, message, meta FROM activity`
	q += " WHERE " + strings.Join(conds, " AND ")
	q += " ORDER BY occurred_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("select activity of user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Activity, 0, 64)
	for rows.Next() {
		var a models.Activity
		var metaStr sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.OccurredAt, &a.Type, &a.SubjectID, &a.Description, &metaStr); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.OccurredAt = a.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				a.Metadata = v
			} else {
				a.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return out, nil
}
