package settings

import (
	"context"
	"sync"
)

// MemoryStore keeps settings in memory; useful for tests and throwaway runs
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Load(ctx context.Context) (Settings, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.data == nil {
		return Defaults(), nil
	}
	return decode(ms.data)
}

func (ms *MemoryStore) Save(ctx context.Context, s Settings) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.data = data
	ms.saves++
	return nil
}

// Saves returns how many times Save has been called
func (ms *MemoryStore) Saves() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.saves
}

func (ms *MemoryStore) Close() error { return nil }
