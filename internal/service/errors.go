package service

import "errors"

// Domain errors. Handlers map these to HTTP statuses with errors.Is, so
// services wrap them (fmt.Errorf("...: %w", ErrValidation)) rather than
// returning bespoke types.
var (
	// ErrValidation covers malformed or missing input (bad email syntax,
	// short password, empty todo text).
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is deliberately generic: it covers both an
	// unknown email and a wrong password, so login failures carry no
	// account-enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound covers both a missing todo and another user's todo; the
	// two cases are indistinguishable on purpose.
	ErrNotFound = errors.New("not found")

	// ErrSessionInvalid covers a missing, expired, or tampered session.
	ErrSessionInvalid = errors.New("invalid or expired session")
)
