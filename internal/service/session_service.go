package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/repository"

	"github.com/google/uuid"
)

// SessionTTL is how long a session stays valid after login.
const SessionTTL = 7 * 24 * time.Hour

// SessionService issues and resolves server-side sessions. The cookie value
// is "<token>.<hex hmac-sha256(secret, token)>": only the opaque token is
// stored server-side, and a cookie with a bad signature is rejected before
// any store lookup.
type SessionService struct {
	sessions repository.Sessions
	secret   []byte
}

func NewSessionService(sessions repository.Sessions, secret string) *SessionService {
	return &SessionService{sessions: sessions, secret: []byte(secret)}
}

var _ Sessions = (*SessionService)(nil)

// Issue creates a session for userID and returns the signed cookie value.
func (s *SessionService) Issue(ctx context.Context, userID int) (string, error) {
	now := time.Now().UTC()
	token := uuid.NewString()

	err := s.sessions.Create(ctx, models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	})
	if err != nil {
		return "", err
	}
	return token + "." + s.sign(token), nil
}

// Resolve verifies the cookie signature and looks up the session. Missing,
// expired, and tampered cookies all yield ErrSessionInvalid; an expired
// record is deleted on sight.
func (s *SessionService) Resolve(ctx context.Context, cookieValue string) (int, error) {
	token, ok := s.verify(cookieValue)
	if !ok {
		return 0, ErrSessionInvalid
	}

	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return 0, err
	}
	if sess == nil {
		return 0, ErrSessionInvalid
	}
	if sess.Expired(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, token)
		return 0, ErrSessionInvalid
	}
	return sess.UserID, nil
}

// Destroy removes the session record. Destroying an absent or malformed
// session is not an error, so logout is idempotent.
func (s *SessionService) Destroy(ctx context.Context, cookieValue string) error {
	token, ok := s.verify(cookieValue)
	if !ok {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// PruneExpired drops every session past its expiry.
func (s *SessionService) PruneExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, time.Now().UTC())
}

func (s *SessionService) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// verify splits "<token>.<sig>" and checks the signature in constant time.
func (s *SessionService) verify(cookieValue string) (string, bool) {
	token, sig, found := strings.Cut(cookieValue, ".")
	if !found || token == "" {
		return "", false
	}
	want, err := hex.DecodeString(sig)
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	if !hmac.Equal(mac.Sum(nil), want) {
		return "", false
	}
	return token, true
}
