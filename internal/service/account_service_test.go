package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoapp/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// mockUsers is a lightweight in-test mock for repository.Users.
type mockUsers struct {
	InsertFn     func(email, hash string) (models.User, error)
	GetByEmailFn func(email string) (*models.User, error)

	insertCalls []struct {
		email string
		hash  string
	}
	getCalls []string
}

func (m *mockUsers) Insert(_ context.Context, email, hash string) (models.User, error) {
	m.insertCalls = append(m.insertCalls, struct {
		email string
		hash  string
	}{email: email, hash: hash})
	return m.InsertFn(email, hash)
}

func (m *mockUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.getCalls = append(m.getCalls, email)
	return m.GetByEmailFn(email)
}

func noUser(string) (*models.User, error) { return nil, nil }

// --- Register tests ---

func TestAccountService_Register_HashesPasswordAndLowercasesEmail(t *testing.T) {
	mock := &mockUsers{
		GetByEmailFn: noUser,
		InsertFn: func(email, hash string) (models.User, error) {
			return models.User{ID: 42, Email: email, PasswordHash: hash, CreatedAt: time.Now()}, nil
		},
	}
	svc := NewAccountService(mock)

	u, err := svc.Register(context.Background(), "  Alice@Example.COM ", "s3cr3t")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if u.ID != 42 {
		t.Fatalf("expected id 42, got %d", u.ID)
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}

	if len(mock.insertCalls) != 1 {
		t.Fatalf("expected 1 Insert call, got %d", len(mock.insertCalls))
	}
	call := mock.insertCalls[0]
	if call.hash == "s3cr3t" {
		t.Fatalf("password was stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(call.hash), []byte("s3cr3t")); err != nil {
		t.Fatalf("stored hash does not verify against the password: %v", err)
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "bad email syntax", email: "not-an-email", password: "secret1"},
		{name: "display-name email", email: "Alice <alice@example.com>", password: "secret1"},
		{name: "empty email", email: "", password: "secret1"},
		{name: "short password", email: "alice@example.com", password: "12345"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUsers{GetByEmailFn: noUser}
			svc := NewAccountService(mock)

			_, err := svc.Register(context.Background(), tt.email, tt.password)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(mock.insertCalls) != 0 {
				t.Fatalf("Insert must not be called on validation failure")
			}
		})
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	existing := &models.User{ID: 1, Email: "alice@example.com"}
	mock := &mockUsers{
		GetByEmailFn: func(string) (*models.User, error) { return existing, nil },
	}
	svc := NewAccountService(mock)

	_, err := svc.Register(context.Background(), "alice@example.com", "whatever-long")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(mock.insertCalls) != 0 {
		t.Fatalf("Insert must not be called for a taken email")
	}
}

// --- Login tests ---

func TestAccountService_Login_RoundTripsRegisteredCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	stored := &models.User{ID: 7, Email: "alice@example.com", PasswordHash: string(hash)}
	mock := &mockUsers{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email == "alice@example.com" {
				return stored, nil
			}
			return nil, nil
		},
	}
	svc := NewAccountService(mock)

	u, err := svc.Login(context.Background(), "Alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("expected id 7, got %d", u.ID)
	}
}

func TestAccountService_Login_NoEnumerationSignal(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	stored := &models.User{ID: 7, Email: "alice@example.com", PasswordHash: string(hash)}
	mock := &mockUsers{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email == "alice@example.com" {
				return stored, nil
			}
			return nil, nil
		},
	}
	svc := NewAccountService(mock)

	// Wrong password and unknown email must be the same error value.
	_, wrongPw := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "secret1")

	if !errors.Is(wrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPw)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPw.Error() != unknownEmail.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPw.Error(), unknownEmail.Error())
	}
}

func TestAccountService_Login_RepoErrorPropagates(t *testing.T) {
	dbErr := errors.New("db down")
	mock := &mockUsers{
		GetByEmailFn: func(string) (*models.User, error) { return nil, dbErr },
	}
	svc := NewAccountService(mock)

	_, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected repo error to propagate, got %v", err)
	}
}
