package service

import (
	"context"
	"fmt"
	"strings"

	"todoapp/internal/models"
	"todoapp/internal/repository"
)

// TodoService is ownership-scoped CRUD over the todos table.
type TodoService struct {
	todos repository.Todos
}

func NewTodoService(todos repository.Todos) *TodoService {
	return &TodoService{todos: todos}
}

var _ Todos = (*TodoService)(nil)

// List returns every todo owned by userID in stable insertion order.
func (s *TodoService) List(ctx context.Context, userID int) ([]models.Todo, error) {
	return s.todos.ListByUser(ctx, userID)
}

// Create adds a todo with completed=false. Text must be non-empty after
// trimming.
func (s *TodoService) Create(ctx context.Context, userID int, text string) (models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, fmt.Errorf("%w: text must not be empty", ErrValidation)
	}
	return s.todos.Insert(ctx, userID, text)
}

// SetCompleted updates the completed flag when the todo exists and belongs
// to userID. A missing todo and another user's todo both yield ErrNotFound.
func (s *TodoService) SetCompleted(ctx context.Context, id, userID int, completed bool) (models.Todo, error) {
	t, err := s.todos.UpdateCompletedIfOwned(ctx, id, userID, completed)
	if err != nil {
		return models.Todo{}, err
	}
	if t == nil {
		return models.Todo{}, ErrNotFound
	}
	return *t, nil
}

// Delete removes the todo when it exists and belongs to userID. Deleting a
// non-matching or absent id is a no-op, so delete is idempotent.
func (s *TodoService) Delete(ctx context.Context, id, userID int) error {
	return s.todos.DeleteIfOwned(ctx, id, userID)
}
