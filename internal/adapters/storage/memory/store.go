// Package memory keeps resolved player ids for the lifetime of the process.
package memory

import (
	"context"
	"sync"

	"albion-guild-dashboard/internal/core/domain"
)

type Store struct {
	mu    sync.RWMutex
	items map[string]domain.PlayerRef
}

func NewStore() *Store {
	return &Store{
		items: make(map[string]domain.PlayerRef),
	}
}

// GetPlayerRef returns nil without an error when the name is not cached.
func (s *Store) GetPlayerRef(_ context.Context, name string) (*domain.PlayerRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.items[domain.PlayerNameKey(name)]
	if !ok {
		return nil, nil
	}
	return &ref, nil
}

func (s *Store) SavePlayerRef(_ context.Context, ref domain.PlayerRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[domain.PlayerNameKey(ref.Name)] = ref
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) Close() {}
