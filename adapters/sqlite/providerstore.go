package sqlite

import (
	"context"
	"database/sql"

	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

// ProviderStore implements ports.ProviderStore with SQLite.
type ProviderStore struct {
	db *DB
}

// NewProviderStore creates a new SQLite provider store.
func NewProviderStore(db *DB) *ProviderStore {
	return &ProviderStore{db: db}
}

// Get retrieves a provider by ID.
func (s *ProviderStore) Get(ctx context.Context, id string) (provider.Provider, error) {
	var p provider.Provider
	var typ, status string
	err := s.db.DB.QueryRowContext(ctx, `
		SELECT id, name, email, type,
			   COALESCE(gateway_customer_id, ''), COALESCE(gateway_subscription_id, ''),
			   status, created_at, updated_at
		FROM providers WHERE id = ?
	`, id).Scan(
		&p.ID, &p.Name, &p.Email, &typ,
		&p.GatewayCustomerID, &p.GatewaySubscriptionID,
		&status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return provider.Provider{}, err
	}
	p.Type = provider.Type(typ)
	p.Status = provider.Status(status)
	return p, nil
}

// Create stores a new provider.
func (s *ProviderStore) Create(ctx context.Context, p provider.Provider) error {
	_, err := s.db.DB.ExecContext(ctx, `
		INSERT INTO providers (id, name, email, type, gateway_customer_id,
							   gateway_subscription_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Email, string(p.Type), nullable(p.GatewayCustomerID),
		nullable(p.GatewaySubscriptionID), string(p.Status), p.CreatedAt, p.UpdatedAt)
	return err
}

// Update modifies an existing provider.
func (s *ProviderStore) Update(ctx context.Context, p provider.Provider) error {
	res, err := s.db.DB.ExecContext(ctx, `
		UPDATE providers
		SET name = ?, email = ?, type = ?, gateway_customer_id = ?,
			gateway_subscription_id = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Email, string(p.Type), nullable(p.GatewayCustomerID),
		nullable(p.GatewaySubscriptionID), string(p.Status), p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns all providers.
func (s *ProviderStore) List(ctx context.Context) ([]provider.Provider, error) {
	rows, err := s.db.DB.QueryContext(ctx, `
		SELECT id, name, email, type,
			   COALESCE(gateway_customer_id, ''), COALESCE(gateway_subscription_id, ''),
			   status, created_at, updated_at
		FROM providers ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []provider.Provider
	for rows.Next() {
		var p provider.Provider
		var typ, status string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Email, &typ,
			&p.GatewayCustomerID, &p.GatewaySubscriptionID,
			&status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Type = provider.Type(typ)
		p.Status = provider.Status(status)
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// nullable maps an empty string to NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Ensure interface compliance.
var _ ports.ProviderStore = (*ProviderStore)(nil)
