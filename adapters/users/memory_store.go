package users

import (
	"context"
	"sync"

	"github.com/layer-3/rangda/core"
	"github.com/layer-3/rangda/ports"
)

// MemoryStore is an in-memory user datastore for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]*core.User
	byEth map[string]*core.User
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:  make(map[string]*core.User),
		byEth: make(map[string]*core.User),
	}
}

// Add registers a user record.
func (s *MemoryStore) Add(u *core.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[u.ID] = u
	if u.EthWalletAddress != nil {
		s.byEth[*u.EthWalletAddress] = u
	}
}

// FindByEthAddress looks up a user by exact eth address match.
func (s *MemoryStore) FindByEthAddress(ctx context.Context, address string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byEth[address], nil
}

// FindByID looks up a user by id.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id], nil
}

var _ ports.UserStore = (*MemoryStore)(nil)
