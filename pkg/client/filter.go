package client

import "todoapp/internal/models"

// Filter selects a view of the todo list; filtering is client-side, the
// server always returns the full list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// FilterTodos returns the todos matching f, preserving order. An unknown
// filter behaves like FilterAll.
func FilterTodos(todos []models.Todo, f Filter) []models.Todo {
	switch f {
	case FilterActive, FilterCompleted:
		wantCompleted := f == FilterCompleted
		out := make([]models.Todo, 0, len(todos))
		for _, t := range todos {
			if t.Completed == wantCompleted {
				out = append(out, t)
			}
		}
		return out
	default:
		return todos
	}
}
