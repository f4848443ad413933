package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todoapp/internal/models"
)

type TodoSQLite struct {
	db *sql.DB
}

func NewTodoSQLite(db *sql.DB) *TodoSQLite {
	return &TodoSQLite{db: db}
}

var _ Todos = (*TodoSQLite)(nil)

const (
	// ORDER BY id keeps the list in stable insertion order.
	selectTodosByUserSQL = `
		SELECT id, text, completed, user_id, created_at
		FROM todos WHERE user_id = ? ORDER BY id
	`
	insertTodoSQL = `INSERT INTO todos (text, completed, user_id, created_at) VALUES (?, ?, ?, ?)`

	// Both statements match id AND user_id so a foreign row is
	// indistinguishable from a missing one.
	updateTodoCompletedSQL = `UPDATE todos SET completed = ? WHERE id = ? AND user_id = ?`
	selectTodoOwnedSQL     = `SELECT id, text, completed, user_id, created_at FROM todos WHERE id = ? AND user_id = ?`
	deleteTodoOwnedSQL     = `DELETE FROM todos WHERE id = ? AND user_id = ?`
)

// ListByUser returns all todos owned by userID in insertion order.
func (r *TodoSQLite) ListByUser(ctx context.Context, userID int) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, selectTodosByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select todos for user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	todos := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.UserID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan todo row: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todo rows: %w", err)
	}
	return todos, nil
}

// Insert creates a todo for userID and returns the persisted record.
func (r *TodoSQLite) Insert(ctx context.Context, userID int, text string) (models.Todo, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, insertTodoSQL, text, false, userID, now)
	if err != nil {
		return models.Todo{}, fmt.Errorf("insert todo for user %d: %w", userID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Todo{}, fmt.Errorf("get last insert id for todo: %w", err)
	}

	return models.Todo{
		ID:        int(lastID),
		Text:      text,
		Completed: false,
		UserID:    userID,
		CreatedAt: now,
	}, nil
}

// UpdateCompletedIfOwned flips the completed flag when the todo exists and
// belongs to userID. Returns (nil, nil) when no row matched.
func (r *TodoSQLite) UpdateCompletedIfOwned(ctx context.Context, id, userID int, completed bool) (*models.Todo, error) {
	res, err := r.db.ExecContext(ctx, updateTodoCompletedSQL, completed, id, userID)
	if err != nil {
		return nil, fmt.Errorf("update todo %d for user %d: %w", id, userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for todo %d: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}

	var t models.Todo
	err = r.db.QueryRowContext(ctx, selectTodoOwnedSQL, id, userID).
		Scan(&t.ID, &t.Text, &t.Completed, &t.UserID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reload todo %d: %w", id, err)
	}
	return &t, nil
}

// DeleteIfOwned removes the todo when it exists and belongs to userID;
// deleting a non-matching id is a no-op.
func (r *TodoSQLite) DeleteIfOwned(ctx context.Context, id, userID int) error {
	if _, err := r.db.ExecContext(ctx, deleteTodoOwnedSQL, id, userID); err != nil {
		return fmt.Errorf("delete todo %d for user %d: %w", id, userID, err)
	}
	return nil
}
