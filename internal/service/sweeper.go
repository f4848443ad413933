package service

import (
	"context"
	"time"
)

// SweeperService periodically prunes expired sessions so the sessions table
// does not grow unbounded between logins.
type SweeperService struct {
	sessions Sessions
}

func NewSweeperService(sessions Sessions) *SweeperService {
	return &SweeperService{sessions: sessions}
}

var _ Sweeper = (*SweeperService)(nil)

// Run ticks at the given interval until ctx is canceled. Prune failures are
// swallowed: the next tick retries and expired sessions are also rejected at
// resolve time.
func (s *SweeperService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = s.sessions.PruneExpired(ctx)
		}
	}
}
