package models

import "time"

type TodoItem struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ListID    int64     `json:"list_id" db:"list_id"`
}

// NewItem is the payload of an item creation.
type NewItem struct {
	Title     string
	Completed bool
}

// ItemPatch is a partial update of an item. Unset fields are left untouched.
type ItemPatch struct {
	Title     Optional[string] `json:"title"`
	Completed Optional[bool]   `json:"completed"`
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return !p.Title.Set && !p.Completed.Set
}

// Apply returns item with every set field of p written over it.
func (p ItemPatch) Apply(item TodoItem) TodoItem {
	if p.Title.Set {
		item.Title = p.Title.Value
	}
	if p.Completed.Set {
		item.Completed = p.Completed.Value
	}
	return item
}
