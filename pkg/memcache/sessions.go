// pkg/memcache/sessions.go
package mem

import (
	"context"
	"sync"
	"time"
)

// SessionStore remembers logged-out session ids until their tokens would
// have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type RevokedSessions struct {
	mu   sync.RWMutex
	data map[string]time.Time
	now  func() time.Time
}

func NewRevokedSessions() *RevokedSessions {
	return &RevokedSessions{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (s *RevokedSessions) Revoke(_ context.Context, sessionID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	if until.After(s.now()) {
		s.data[sessionID] = until
	}
	return nil
}

func (s *RevokedSessions) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	until, ok := s.data[sessionID]
	if !ok {
		return false, nil
	}
	return s.now().Before(until), nil
}

// Len reports live entries.
func (s *RevokedSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.data)
}

func (s *RevokedSessions) sweepLocked() {
	now := s.now()
	for id, until := range s.data {
		if !now.Before(until) {
			delete(s.data, id)
		}
	}
}
