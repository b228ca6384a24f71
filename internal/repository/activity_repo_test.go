package repository

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"todo_api/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var activityCols = []string{"id", "user_id", "occurred_at", "type", "subject_id", "message", "meta"}

func TestActivityAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	// Generated id and timestamp are unknown; the rest is checked.
	mock.ExpectExec(q(insertActivitySQL)).
		WithArgs(sqlmock.AnyArg(), int64(1), sqlmock.AnyArg(), "LIST_CREATED", int64(5), "hello", `{"name":"Home"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewActivityRepository(db).Append(ctx(t), models.Activity{
		UserID:      1,
		Type:        "  list_created ",
		SubjectID:   5,
		Description: "hello",
		Metadata:    map[string]any{"name": "Home"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestActivityAppend_DBError(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO activity").WillReturnError(errors.New("down"))

	err := NewActivityRepository(db).Append(ctx(t), models.Activity{UserID: 1, Type: "x", Description: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestActivityAppend_UnmarshalableMetadata(t *testing.T) {
	t.Parallel()
	db, _ := newMockDB(t)

	err := NewActivityRepository(db).Append(ctx(t), models.Activity{UserID: 1, Type: "x", Metadata: make(chan int)})
	if err == nil {
		t.Fatalf("expected marshal error")
	}
}

func TestActivityList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"a": "b"})

	rows := sqlmock.NewRows(activityCols).
		AddRow("1", 7, now, "LIST_CREATED", 3, "m1", string(js)).
		AddRow("2", 7, now.Add(time.Hour), "LIST_DELETED", 3, "m2", nil)

	mock.ExpectQuery(q(`SELECT id, user_id, occurred_at, type, subject_id, message, meta FROM activity WHERE user_id = ? ORDER BY occurred_at ASC, id ASC`)).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := NewActivityRepository(db).List(ctx(t), 7, time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected results: %+v", got)
	}
	b1, _ := json.Marshal(got[0].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
}

func TestActivityList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	query := `SELECT id, user_id, occurred_at, type, subject_id, message, meta FROM activity WHERE user_id = ? AND occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC, id ASC`
	rows := sqlmock.NewRows(activityCols).
		AddRow("2", 7, from, "ITEM_UPDATED", 9, "b", `not json`)

	mock.ExpectQuery(q(query)).
		WithArgs(int64(7), from, to, "ITEM_UPDATED").
		WillReturnRows(rows)

	got, err := NewActivityRepository(db).List(ctx(t), 7, from, to, " item_updated ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Metadata != "not json" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestActivityList_ScanError(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows(activityCols).
		// occurred_at wrong type to force scan error
		AddRow("x", 7, 123, "INFO", 1, "msg", nil)
	mock.ExpectQuery("SELECT id, user_id, occurred_at").WillReturnRows(rows)

	if _, err := NewActivityRepository(db).List(ctx(t), 7, time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected scan error, got nil")
	}
}
