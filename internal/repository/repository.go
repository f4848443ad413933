package repository

import (
	"context"
	"database/sql"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/repository/db"
)

// Users persists accounts. GetByEmail returns (nil, nil) when no account
// exists for the email.
type Users interface {
	Insert(ctx context.Context, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Todos is ownership-scoped: every mutation matches both id and user_id, so
// a row belonging to another user behaves exactly like a missing row.
type Todos interface {
	ListByUser(ctx context.Context, userID int) ([]models.Todo, error)
	Insert(ctx context.Context, userID int, text string) (models.Todo, error)
	UpdateCompletedIfOwned(ctx context.Context, id, userID int, completed bool) (*models.Todo, error)
	DeleteIfOwned(ctx context.Context, id, userID int) error
}

// Sessions maps opaque tokens to user ids. Get returns (nil, nil) when the
// token is unknown; Delete of an absent token is not an error.
type Sessions interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Repository struct {
	Users    Users
	Todos    Todos
	Sessions Sessions
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(database),
		Todos:    NewTodoSQLite(database),
		Sessions: NewSessionSQLite(database),
	}
}

// InitDB opens the SQLite store and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
