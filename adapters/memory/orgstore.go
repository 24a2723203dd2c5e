package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/seatsync/seatsync/domain/org"
	"github.com/seatsync/seatsync/ports"
)

// OrganizationStore is an in-memory implementation of ports.OrganizationStore.
type OrganizationStore struct {
	mu   sync.RWMutex
	orgs map[string]org.Organization
}

// NewOrganizationStore creates a new in-memory organization store.
func NewOrganizationStore() *OrganizationStore {
	return &OrganizationStore{orgs: make(map[string]org.Organization)}
}

// Get retrieves an organization by ID.
func (s *OrganizationStore) Get(ctx context.Context, id string) (org.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orgs[id]
	if !ok {
		return org.Organization{}, ErrNotFound
	}
	return o, nil
}

// Create stores a new organization.
func (s *OrganizationStore) Create(ctx context.Context, o org.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orgs[o.ID]; exists {
		return errors.New("organization already exists")
	}
	s.orgs[o.ID] = o
	return nil
}

// Replace overwrites an existing organization.
func (s *OrganizationStore) Replace(ctx context.Context, o org.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgs[o.ID]; !ok {
		return ErrNotFound
	}
	s.orgs[o.ID] = o
	return nil
}

// ListByProvider returns all organizations managed by a provider.
func (s *OrganizationStore) ListByProvider(ctx context.Context, providerID string) ([]org.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []org.Organization
	for _, o := range s.orgs {
		if o.ProviderID == providerID {
			out = append(out, o)
		}
	}
	return out, nil
}

// Ensure interface compliance.
var _ ports.OrganizationStore = (*OrganizationStore)(nil)
