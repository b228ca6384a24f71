package service

import "time"

// ActivityFilter supports history filtering by time range and type.
type ActivityFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "LIST_CREATED", "ITEM_UPDATED", ...
}

// Text field limits.
const (
	maxListNameLen  = 200
	maxItemTitleLen = 500
)
