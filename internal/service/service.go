package service

import (
	"context"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/repository"
)

// Accounts handles registration and login. The password hash never leaves
// this layer; callers get the public User fields only.
type Accounts interface {
	Register(ctx context.Context, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
}

// Todos is ownership-scoped CRUD. It never authenticates: callers supply a
// userID already resolved by the session middleware.
type Todos interface {
	List(ctx context.Context, userID int) ([]models.Todo, error)
	Create(ctx context.Context, userID int, text string) (models.Todo, error)
	SetCompleted(ctx context.Context, id, userID int, completed bool) (models.Todo, error)
	Delete(ctx context.Context, id, userID int) error
}

// Sessions issues, resolves, and destroys server-side sessions. The string
// values are signed cookie values, not raw tokens.
type Sessions interface {
	Issue(ctx context.Context, userID int) (string, error)
	Resolve(ctx context.Context, cookieValue string) (int, error)
	Destroy(ctx context.Context, cookieValue string) error
	PruneExpired(ctx context.Context) (int64, error)
}

// Sweeper runs the background loop that prunes expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Accounts
	Todos
	Sessions
	Sweeper
}

// NewService wires the repository layer into concrete services. The session
// secret signs cookie values so a forged cookie never reaches the store.
func NewService(repos *repository.Repository, sessionSecret string) *Service {
	sessions := NewSessionService(repos.Sessions, sessionSecret)
	return &Service{
		Accounts: NewAccountService(repos.Users),
		Todos:    NewTodoService(repos.Todos),
		Sessions: sessions,
		Sweeper:  NewSweeperService(sessions),
	}
}
