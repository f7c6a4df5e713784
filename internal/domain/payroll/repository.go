package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for payroll aggregates. Items travel
// embedded inside their parent row on every read and write.
type PayrollRepository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)

	GetByID(ctx context.Context, id string) (Payroll, error)

	// GetByPeriod finds the payroll occupying an exact canteen and period,
	// whatever its status. Returns ErrPayrollNotFound when none exists.
	GetByPeriod(ctx context.Context, canteenID string, periodStart, periodEnd time.Time) (Payroll, error)

	// Replace overwrites a payroll's items, totals, generation metadata and
	// status in place, keeping its identity. Used by regeneration.
	Replace(ctx context.Context, p Payroll) (Payroll, error)

	// TransitionStatus applies a workflow action atomically: the update only
	// lands if the stored status still equals from. Returns
	// ErrPayrollNotFound when the row is gone or the status moved underneath
	// the caller.
	TransitionStatus(ctx context.Context, p Payroll, from Status) (Payroll, error)

	ListByCanteen(ctx context.Context, canteenID string) ([]Payroll, error)

	ListByStatus(ctx context.Context, status Status) ([]Payroll, error)

	CountByStatus(ctx context.Context, status Status) (int64, error)
}

// ConfigRepository defines data access for the single live configuration row.
type ConfigRepository interface {
	// Get returns the live configuration, or ErrConfigNotFound when the
	// table is empty.
	Get(ctx context.Context) (Config, error)

	Create(ctx context.Context, c Config) (Config, error)

	Update(ctx context.Context, c Config) (Config, error)
}
