package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuseats/payroll-backend-go/internal/domain/payroll"
	"github.com/campuseats/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollConfigRepository struct {
	db *database.DB
}

// NewPayrollConfigRepository creates a new payroll config repository
func NewPayrollConfigRepository(db *database.DB) payroll.ConfigRepository {
	return &payrollConfigRepository{db: db}
}

const configColumns = `
	id, pay_period_type, overtime_multiplier, epf_employee_rate, epf_employer_rate,
	etf_rate, standard_work_hours_per_day, default_meal_allowance,
	default_transport_allowance, updated_by, created_at, updated_at
`

// Get retrieves the single live configuration row
func (r *payrollConfigRepository) Get(ctx context.Context) (payroll.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + configColumns + ` FROM payroll_config ORDER BY created_at LIMIT 1`

	c, err := scanConfig(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Config{}, payroll.ErrConfigNotFound
		}
		return payroll.Config{}, fmt.Errorf("failed to get payroll config: %w", err)
	}

	return c, nil
}

// Create inserts the configuration row
func (r *payrollConfigRepository) Create(ctx context.Context, c payroll.Config) (payroll.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_config (
			id, pay_period_type, overtime_multiplier, epf_employee_rate, epf_employer_rate,
			etf_rate, standard_work_hours_per_day, default_meal_allowance,
			default_transport_allowance, updated_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + configColumns

	saved, err := scanConfig(q.QueryRow(ctx, query,
		c.ID,
		string(c.PayPeriodType),
		c.OvertimeMultiplier,
		c.EPFEmployeeRate,
		c.EPFEmployerRate,
		c.ETFRate,
		c.StandardWorkHoursPerDay,
		c.DefaultMealAllowance,
		c.DefaultTransportAllowance,
		c.UpdatedBy,
	))
	if err != nil {
		return payroll.Config{}, fmt.Errorf("failed to create payroll config: %w", err)
	}

	return saved, nil
}

// Update overwrites the configuration row
func (r *payrollConfigRepository) Update(ctx context.Context, c payroll.Config) (payroll.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_config SET
			pay_period_type = $2,
			overtime_multiplier = $3,
			epf_employee_rate = $4,
			epf_employer_rate = $5,
			etf_rate = $6,
			standard_work_hours_per_day = $7,
			default_meal_allowance = $8,
			default_transport_allowance = $9,
			updated_by = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + configColumns

	saved, err := scanConfig(q.QueryRow(ctx, query,
		c.ID,
		string(c.PayPeriodType),
		c.OvertimeMultiplier,
		c.EPFEmployeeRate,
		c.EPFEmployerRate,
		c.ETFRate,
		c.StandardWorkHoursPerDay,
		c.DefaultMealAllowance,
		c.DefaultTransportAllowance,
		c.UpdatedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Config{}, payroll.ErrConfigNotFound
		}
		return payroll.Config{}, fmt.Errorf("failed to update payroll config: %w", err)
	}

	return saved, nil
}

func scanConfig(row pgx.Row) (payroll.Config, error) {
	var c payroll.Config
	err := row.Scan(
		&c.ID,
		&c.PayPeriodType,
		&c.OvertimeMultiplier,
		&c.EPFEmployeeRate,
		&c.EPFEmployerRate,
		&c.ETFRate,
		&c.StandardWorkHoursPerDay,
		&c.DefaultMealAllowance,
		&c.DefaultTransportAllowance,
		&c.UpdatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
