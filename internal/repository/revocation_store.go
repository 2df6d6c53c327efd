package repository

import (
	"context"
	"sync"
	"time"
)

type memoryRevocationStore struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

// NewMemoryRevocationStore keeps revoked token ids in process memory. It is
// used when Redis is not configured; revocations do not survive a restart.
func NewMemoryRevocationStore() RevocationStore {
	return &memoryRevocationStore{now: time.Now, revoked: make(map[string]time.Time)}
}

func (s *memoryRevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.revoked[tokenID] = until
	return nil
}

func (s *memoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *memoryRevocationStore) purgeLocked() {
	now := s.now()
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
		}
	}
}
