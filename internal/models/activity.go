package models

import "time"

// Activity types recorded for list and item mutations.
const (
	ActivityListCreated = "LIST_CREATED"
	ActivityListUpdated = "LIST_UPDATED"
	ActivityListDeleted = "LIST_DELETED"
	ActivityItemCreated = "ITEM_CREATED"
	ActivityItemUpdated = "ITEM_UPDATED"
	ActivityItemDeleted = "ITEM_DELETED"
)

// Activity is a single entry of a user's audit trail.
type Activity struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"-"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // LIST_CREATED | LIST_DELETED | ITEM_UPDATED | ...
	SubjectID   int64     `json:"subject_id"`  // list or item id, depending on Type
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
