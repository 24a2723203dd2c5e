package sqlite

import (
	"context"
	"database/sql"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

// ProviderPlanStore implements ports.ProviderPlanStore with SQLite.
type ProviderPlanStore struct {
	db *DB
}

// NewProviderPlanStore creates a new SQLite provider plan store.
func NewProviderPlanStore(db *DB) *ProviderPlanStore {
	return &ProviderPlanStore{db: db}
}

// GetByProvider returns all plan rows for a provider.
func (s *ProviderPlanStore) GetByProvider(ctx context.Context, providerID string) ([]provider.Plan, error) {
	rows, err := s.db.DB.QueryContext(ctx, `
		SELECT id, provider_id, plan_type, COALESCE(seat_price_id, ''),
			   seat_minimum, allocated_seats, purchased_seats, pool_seats,
			   created_at, updated_at
		FROM provider_plans WHERE provider_id = ?
		ORDER BY plan_type
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []provider.Plan
	for rows.Next() {
		var p provider.Plan
		var planType string
		if err := rows.Scan(
			&p.ID, &p.ProviderID, &planType, &p.SeatPriceID,
			&p.SeatMinimum, &p.AllocatedSeats, &p.PurchasedSeats, &p.PoolSeats,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.PlanType = plan.Type(planType)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Create stores a new provider plan row.
func (s *ProviderPlanStore) Create(ctx context.Context, p provider.Plan) error {
	_, err := s.db.DB.ExecContext(ctx, `
		INSERT INTO provider_plans (id, provider_id, plan_type, seat_price_id,
									seat_minimum, allocated_seats, purchased_seats,
									pool_seats, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.ProviderID, string(p.PlanType), nullable(p.SeatPriceID),
		p.SeatMinimum, p.AllocatedSeats, p.PurchasedSeats, p.PoolSeats,
		p.CreatedAt, p.UpdatedAt)
	return err
}

// Replace overwrites an existing provider plan row.
func (s *ProviderPlanStore) Replace(ctx context.Context, p provider.Plan) error {
	res, err := s.db.DB.ExecContext(ctx, `
		UPDATE provider_plans
		SET seat_price_id = ?, seat_minimum = ?, allocated_seats = ?,
			purchased_seats = ?, pool_seats = ?, updated_at = ?
		WHERE id = ?
	`, nullable(p.SeatPriceID), p.SeatMinimum, p.AllocatedSeats,
		p.PurchasedSeats, p.PoolSeats, p.UpdatedAt, p.ID)
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

// Ensure interface compliance.
var _ ports.ProviderPlanStore = (*ProviderPlanStore)(nil)
