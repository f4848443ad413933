package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"todoapp/internal/models"
	"todoapp/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// AccountService handles registration and login logic.
type AccountService struct {
	users repository.Users
}

func NewAccountService(users repository.Users) *AccountService {
	return &AccountService{users: users}
}

var _ Accounts = (*AccountService)(nil)

// Register validates the credentials, hashes the password, and persists the
// user. Emails are stored lowercase.
func (s *AccountService) Register(ctx context.Context, email, password string) (models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if len(password) < minPasswordLen {
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, ErrEmailTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return s.users.Insert(ctx, email, hash)
}

// Login verifies credentials. Unknown email and wrong password fail the same
// way: no account-enumeration signal.
func (s *AccountService) Login(ctx context.Context, email, password string) (models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return *u, nil
}

// normalizeEmail lowercases/trims and checks syntax. A bare address is
// required; display-name forms ("Alice <a@b.c>") are rejected.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return email, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
