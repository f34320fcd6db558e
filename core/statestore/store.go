package statestore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"stock-matcher/core/ledger"
)

// State is everything that survives a restart.
type State struct {
	Racks         map[string]ledger.Ledger `json:"racks"`
	SelectedScope string                   `json:"selectedScope,omitempty"`
}

// Store loads and saves State.
type Store interface {
	// Load returns the saved state, or an empty one if nothing was saved yet.
	Load(ctx context.Context) (State, error)
	// Save replaces the saved state.
	Save(ctx context.Context, state State) error
}

func emptyState() State {
	return State{Racks: make(map[string]ledger.Ledger)}
}

func encode(state State) ([]byte, error) {
	if state.Racks == nil {
		state.Racks = make(map[string]ledger.Ledger)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

func decode(data []byte) (State, error) {
	state := emptyState()
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("failed to decode state: %w", err)
	}
	if state.Racks == nil {
		state.Racks = make(map[string]ledger.Ledger)
	}
	return state, nil
}

// MemoryStore keeps the encoded state in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the last saved state.
func (m *MemoryStore) Load(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decode(m.data)
}

// Save encodes state, so later mutation by the caller does not leak in.
func (m *MemoryStore) Save(ctx context.Context, state State) error {
	data, err := encode(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}
