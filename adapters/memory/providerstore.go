// Package memory provides in-memory implementations of storage ports,
// used by tests and the dummy development mode.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

// ErrNotFound is returned when an entity is not found.
var ErrNotFound = errors.New("not found")

// ProviderStore is an in-memory implementation of ports.ProviderStore.
type ProviderStore struct {
	mu        sync.RWMutex
	providers map[string]provider.Provider
}

// NewProviderStore creates a new in-memory provider store.
func NewProviderStore() *ProviderStore {
	return &ProviderStore{providers: make(map[string]provider.Provider)}
}

// Get retrieves a provider by ID.
func (s *ProviderStore) Get(ctx context.Context, id string) (provider.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.providers[id]
	if !ok {
		return provider.Provider{}, ErrNotFound
	}
	return p, nil
}

// Create stores a new provider.
func (s *ProviderStore) Create(ctx context.Context, p provider.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.providers[p.ID]; exists {
		return errors.New("provider already exists")
	}
	s.providers[p.ID] = p
	return nil
}

// Update modifies an existing provider.
func (s *ProviderStore) Update(ctx context.Context, p provider.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.providers[p.ID]; !ok {
		return ErrNotFound
	}
	s.providers[p.ID] = p
	return nil
}

// List returns all providers.
func (s *ProviderStore) List(ctx context.Context) ([]provider.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]provider.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, p)
	}
	return out, nil
}

// Ensure interface compliance.
var _ ports.ProviderStore = (*ProviderStore)(nil)
