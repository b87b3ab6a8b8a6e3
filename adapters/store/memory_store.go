package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/rangda/ports"
)

// MemoryStore is an in-memory revocation store for tests and single-node
// development runs.
type MemoryStore struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
	}
}

// InvalidateToken marks a token lineage as signed out until expiry.
func (s *MemoryStore) InvalidateToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = time.Now().Add(expiry)
	return nil
}

// IsTokenInvalidated checks whether a token lineage has been signed out.
// Entries past their expiry count as live again; the token itself has
// expired by then anyway.
func (s *MemoryStore) IsTokenInvalidated(ctx context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	return time.Now().Before(until), nil
}

var _ ports.Store = (*MemoryStore)(nil)
