package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"todoapp/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockSessionRepo(t *testing.T) (*SessionSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewSessionSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestSessionSQLite_CreateAndGet(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := models.Session{
		Token:     "tok-1",
		UserID:    5,
		CreatedAt: now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	}

	t.Run("create", func(t *testing.T) {
		repo, mock, cleanup := newMockSessionRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertSessionSQL)).
			WithArgs("tok-1", 5, sess.CreatedAt, sess.ExpiresAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		if err := repo.Create(context.Background(), sess); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("get found", func(t *testing.T) {
		repo, mock, cleanup := newMockSessionRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
			WithArgs("tok-1").
			WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "created_at", "expires_at"}).
				AddRow(sess.Token, sess.UserID, sess.CreatedAt, sess.ExpiresAt))

		got, err := repo.Get(context.Background(), "tok-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || *got != sess {
			t.Fatalf("unexpected session: %+v", got)
		}
	})

	t.Run("get unknown token returns nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockSessionRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Get(context.Background(), "nope")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil session, got %+v", got)
		}
	})
}

func TestSessionSQLite_Delete(t *testing.T) {
	t.Run("absent token is a no-op", func(t *testing.T) {
		repo, mock, cleanup := newMockSessionRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
			WithArgs("gone").
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.Delete(context.Background(), "gone"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockSessionRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
			WithArgs("tok-1").
			WillReturnError(errors.New("db down"))

		if err := repo.Delete(context.Background(), "tok-1"); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestSessionSQLite_DeleteExpired(t *testing.T) {
	repo, mock, cleanup := newMockSessionRepo(t)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(deleteExpiredSessionSQL)).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	pruned, err := repo.DeleteExpired(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pruned != 3 {
		t.Fatalf("expected 3 pruned sessions, got %d", pruned)
	}
}

func TestMemorySessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store := NewMemorySessions()

	live := models.Session{Token: "live", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	dead := models.Session{Token: "dead", UserID: 2, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []models.Session{live, dead} {
		if err := store.Create(ctx, s); err != nil {
			t.Fatalf("Create(%s): %v", s.Token, err)
		}
	}

	got, err := store.Get(ctx, "live")
	if err != nil || got == nil || got.UserID != 1 {
		t.Fatalf("Get(live) = %+v, %v", got, err)
	}
	if got, _ := store.Get(ctx, "unknown"); got != nil {
		t.Fatalf("expected nil for unknown token, got %+v", got)
	}

	pruned, err := store.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("expected 1 pruned, got %d", pruned)
	}
	if got, _ := store.Get(ctx, "dead"); got != nil {
		t.Fatalf("expected expired session to be gone, got %+v", got)
	}

	// idempotent delete
	if err := store.Delete(ctx, "live"); err != nil {
		t.Fatalf("Delete(live): %v", err)
	}
	if err := store.Delete(ctx, "live"); err != nil {
		t.Fatalf("second Delete(live): %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d records", store.Len())
	}
}
