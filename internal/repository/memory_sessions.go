package repository

import (
	"context"
	"sync"
	"time"

	"todoapp/internal/models"
)

// MemorySessions is a map-backed Sessions implementation. The session store
// is memory-backed in tests and SQLite-backed in production; both sit behind
// the same interface.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]models.Session)}
}

var _ Sessions = (*MemorySessions)(nil)

func (m *MemorySessions) Create(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *MemorySessions) Get(_ context.Context, token string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemorySessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MemorySessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pruned int64
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
			pruned++
		}
	}
	return pruned, nil
}

// Len reports the number of live records; used by tests.
func (m *MemorySessions) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
