package connector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FlagStore remembers across restarts whether the user was previously
// connected, so the connector can silently re-establish a session on start.
type FlagStore interface {
	Get() bool
	Set() error
	Clear() error
}

type flagFile struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

// FileFlagStore persists the flag as a small JSON file under a state
// directory.
type FileFlagStore struct {
	path string
}

// NewFileFlagStore creates a file-backed flag store under dir, creating the
// directory if needed.
func NewFileFlagStore(dir string) (*FileFlagStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileFlagStore{path: filepath.Join(dir, "connection.json")}, nil
}

func (s *FileFlagStore) Get() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	var f flagFile
	if err := json.Unmarshal(data, &f); err != nil {
		return false
	}
	return f.IsAuthenticated
}

func (s *FileFlagStore) Set() error {
	data, err := json.Marshal(flagFile{IsAuthenticated: true})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileFlagStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryFlagStore is an in-memory FlagStore for tests.
type MemoryFlagStore struct {
	mu  sync.Mutex
	set bool
}

func (s *MemoryFlagStore) Get() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

func (s *MemoryFlagStore) Set() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = true
	return nil
}

func (s *MemoryFlagStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = false
	return nil
}
