package sqlite

import (
	"context"
	"database/sql"

	"github.com/seatsync/seatsync/domain/org"
	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/ports"
)

// OrganizationStore implements ports.OrganizationStore with SQLite.
type OrganizationStore struct {
	db *DB
}

// NewOrganizationStore creates a new SQLite organization store.
func NewOrganizationStore(db *DB) *OrganizationStore {
	return &OrganizationStore{db: db}
}

// Get retrieves an organization by ID.
func (s *OrganizationStore) Get(ctx context.Context, id string) (org.Organization, error) {
	var o org.Organization
	var planType string
	var seats sql.NullInt64
	err := s.db.DB.QueryRowContext(ctx, `
		SELECT id, provider_id, name, plan_type, seats, created_at, updated_at
		FROM organizations WHERE id = ?
	`, id).Scan(&o.ID, &o.ProviderID, &o.Name, &planType, &seats, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return org.Organization{}, err
	}
	o.PlanType = plan.Type(planType)
	if seats.Valid {
		o.Seats = org.Seat(int(seats.Int64))
	}
	return o, nil
}

// Create stores a new organization.
func (s *OrganizationStore) Create(ctx context.Context, o org.Organization) error {
	_, err := s.db.DB.ExecContext(ctx, `
		INSERT INTO organizations (id, provider_id, name, plan_type, seats, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.ProviderID, o.Name, string(o.PlanType), nullableSeats(o.Seats), o.CreatedAt, o.UpdatedAt)
	return err
}

// Replace overwrites an existing organization.
func (s *OrganizationStore) Replace(ctx context.Context, o org.Organization) error {
	res, err := s.db.DB.ExecContext(ctx, `
		UPDATE organizations
		SET name = ?, plan_type = ?, seats = ?, updated_at = ?
		WHERE id = ?
	`, o.Name, string(o.PlanType), nullableSeats(o.Seats), o.UpdatedAt, o.ID)
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

// ListByProvider returns all organizations managed by a provider.
func (s *OrganizationStore) ListByProvider(ctx context.Context, providerID string) ([]org.Organization, error) {
	rows, err := s.db.DB.QueryContext(ctx, `
		SELECT id, provider_id, name, plan_type, seats, created_at, updated_at
		FROM organizations WHERE provider_id = ?
		ORDER BY created_at
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []org.Organization
	for rows.Next() {
		var o org.Organization
		var planType string
		var seats sql.NullInt64
		if err := rows.Scan(&o.ID, &o.ProviderID, &o.Name, &planType, &seats, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.PlanType = plan.Type(planType)
		if seats.Valid {
			o.Seats = org.Seat(int(seats.Int64))
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

// nullableSeats maps an unassigned seat count to NULL.
func nullableSeats(seats *int) any {
	if seats == nil {
		return nil
	}
	return *seats
}

// Ensure interface compliance.
var _ ports.OrganizationStore = (*OrganizationStore)(nil)
