package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

// ProviderPlanStore is an in-memory implementation of ports.ProviderPlanStore.
type ProviderPlanStore struct {
	mu    sync.RWMutex
	plans map[string]provider.Plan // by row ID
}

// NewProviderPlanStore creates a new in-memory provider plan store.
func NewProviderPlanStore() *ProviderPlanStore {
	return &ProviderPlanStore{plans: make(map[string]provider.Plan)}
}

// GetByProvider returns all plan rows for a provider.
func (s *ProviderPlanStore) GetByProvider(ctx context.Context, providerID string) ([]provider.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []provider.Plan
	for _, p := range s.plans {
		if p.ProviderID == providerID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create stores a new provider plan row.
func (s *ProviderPlanStore) Create(ctx context.Context, p provider.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[p.ID]; exists {
		return errors.New("provider plan already exists")
	}
	s.plans[p.ID] = p
	return nil
}

// Replace overwrites an existing provider plan row.
func (s *ProviderPlanStore) Replace(ctx context.Context, p provider.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[p.ID]; !ok {
		return ErrNotFound
	}
	s.plans[p.ID] = p
	return nil
}

// Ensure interface compliance.
var _ ports.ProviderPlanStore = (*ProviderPlanStore)(nil)
