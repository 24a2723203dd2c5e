package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/ports"
)

// AssignedSeatQuery implements ports.AssignedSeatQuery with SQLite.
type AssignedSeatQuery struct {
	db *DB
}

// NewAssignedSeatQuery creates a new SQLite assigned seat query.
func NewAssignedSeatQuery(db *DB) *AssignedSeatQuery {
	return &AssignedSeatQuery{db: db}
}

// AssignedSeatTotal sums the provider's organization seats for the plan type
// plus its own pool. Fails if the provider has no plan row for the type.
func (q *AssignedSeatQuery) AssignedSeatTotal(ctx context.Context, providerID string, planType plan.Type) (int, error) {
	var total int
	err := q.db.DB.QueryRowContext(ctx, `
		SELECT pp.pool_seats + COALESCE((
			SELECT SUM(o.seats) FROM organizations o
			WHERE o.provider_id = pp.provider_id
			  AND o.plan_type = pp.plan_type
			  AND o.seats IS NOT NULL
		), 0)
		FROM provider_plans pp
		WHERE pp.provider_id = ? AND pp.plan_type = ?
	`, providerID, string(planType)).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("no %s plan for provider %s", planType, providerID)
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Ensure interface compliance.
var _ ports.AssignedSeatQuery = (*AssignedSeatQuery)(nil)
