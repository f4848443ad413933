package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todoapp/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`
)

// Insert creates a new user and returns the persisted record.
func (r *UserSQLite) Insert(ctx context.Context, email, passwordHash string) (models.User, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, insertUserSQL, email, passwordHash, now)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user %q: %w", email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}

	return models.User{
		ID:           int(lastID),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByEmailSQL, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return &u, nil
}
