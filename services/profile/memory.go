package profile

import (
	"context"
	"sync"
)

// MemoryStore keeps profiles in process memory. It goes through the same
// key-value encoding as the durable stores.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (s *MemoryStore) Load(ctx context.Context, owner string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	if owner == "" {
		return Profile{}, ErrOwnerRequired
	}
	s.mu.RLock()
	kv, ok := s.data[owner]
	s.mu.RUnlock()
	if !ok {
		return Profile{}, nil
	}
	p, err := Decode(kv)
	if err != nil {
		return Profile{}, NewStorageError("load", FaultCorrupt, err)
	}
	return p, nil
}

func (s *MemoryStore) Save(ctx context.Context, owner string, p Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if owner == "" {
		return ErrOwnerRequired
	}
	if err := Validate(p); err != nil {
		return err
	}
	kv := Encode(p)
	s.mu.Lock()
	s.data[owner] = kv
	s.mu.Unlock()
	return nil
}
