package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/okian/underdog/internal/domain/model"
)

// MemoryStore keeps the snapshot in process memory. Used for ephemeral
// runs and tests; it round-trips through JSON so the persisted shape is
// exercised the same way as the SQLite store.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored snapshot, or ok=false when none exists.
func (m *MemoryStore) Load(_ context.Context) (*model.PoolState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payload == nil {
		return nil, false, nil
	}
	var state model.PoolState
	if err := json.Unmarshal(m.payload, &state); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	state.Normalize()
	return &state, true, nil
}

// Save persists the whole snapshot, replacing any previous one.
func (m *MemoryStore) Save(_ context.Context, state *model.PoolState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	m.mu.Lock()
	m.payload = payload
	m.mu.Unlock()
	return nil
}
