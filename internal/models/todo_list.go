package models

import "time"

// TodoList groups items under a single owner.
type TodoList struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Items     []TodoItem `json:"items" db:"-"`
}

// ListPatch is a partial update of a list. Unset fields are left untouched.
type ListPatch struct {
	Name Optional[string] `json:"name"`
}

// Empty reports whether the patch changes nothing.
func (p ListPatch) Empty() bool {
	return !p.Name.Set
}
