package models

import "time"

// Todo is one task owned by exactly one user. Visibility and mutation are
// always scoped by UserID matching the requester's session identity.
type Todo struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
