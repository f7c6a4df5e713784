package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/campuseats/payroll-backend-go/internal/domain/payroll"
	"github.com/campuseats/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepository struct {
	db *database.DB
}

// NewPayrollRepository creates a new payroll repository
func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	id, canteen_id, canteen_name, period_start, period_end, period_type, status,
	items, total_gross_pay, total_deductions, total_net_pay,
	total_epf_employer, total_etf_employer, staff_count,
	generated_by, generated_at, submitted_by, submitted_at, submission_notes,
	reviewed_by, reviewed_at, review_comments, created_at, updated_at
`

// Create inserts a new payroll with its items embedded as JSONB. The partial
// unique index on (canteen_id, period_start, period_end) for non-rejected
// rows closes the race two concurrent generations would otherwise open.
func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	itemsJSON, err := json.Marshal(p.Items)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to marshal payroll items: %w", err)
	}

	query := `
		INSERT INTO payrolls (
			id, canteen_id, canteen_name, period_start, period_end, period_type, status,
			items, total_gross_pay, total_deductions, total_net_pay,
			total_epf_employer, total_etf_employer, staff_count,
			generated_by, generated_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING ` + payrollColumns

	saved, err := scanPayroll(q.QueryRow(ctx, query,
		p.ID,
		p.CanteenID,
		p.CanteenName,
		p.PeriodStart,
		p.PeriodEnd,
		string(p.PeriodType),
		string(p.Status),
		itemsJSON,
		p.TotalGrossPay,
		p.TotalDeductions,
		p.TotalNetPay,
		p.TotalEPFEmployer,
		p.TotalETFEmployer,
		p.StaffCount,
		p.GeneratedBy,
		p.GeneratedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Lost a race against a concurrent generation; report the
			// winner's status.
			status := payroll.StatusDraft
			if existing, lookupErr := r.GetByPeriod(ctx, p.CanteenID, p.PeriodStart, p.PeriodEnd); lookupErr == nil {
				status = existing.Status
			}
			return payroll.Payroll{}, &payroll.DuplicatePeriodError{Status: status}
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return saved, nil
}

// GetByID retrieves a payroll by id
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE id = $1`

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

// GetByPeriod finds the payroll occupying an exact canteen and period
func (r *payrollRepository) GetByPeriod(ctx context.Context, canteenID string, periodStart, periodEnd time.Time) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls
		WHERE canteen_id = $1 AND period_start = $2 AND period_end = $3
	`

	p, err := scanPayroll(q.QueryRow(ctx, query, canteenID, periodStart, periodEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll by period: %w", err)
	}

	return p, nil
}

// Replace overwrites a rejected payroll in place for regeneration. The WHERE
// clause keeps it from clobbering anything a concurrent reviewer moved on.
func (r *payrollRepository) Replace(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	itemsJSON, err := json.Marshal(p.Items)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to marshal payroll items: %w", err)
	}

	query := `
		UPDATE payrolls SET
			canteen_name = $2,
			period_type = $3,
			status = $4,
			items = $5,
			total_gross_pay = $6,
			total_deductions = $7,
			total_net_pay = $8,
			total_epf_employer = $9,
			total_etf_employer = $10,
			staff_count = $11,
			generated_by = $12,
			generated_at = $13,
			submitted_by = NULL,
			submitted_at = NULL,
			submission_notes = NULL,
			reviewed_by = NULL,
			reviewed_at = NULL,
			review_comments = NULL,
			updated_at = NOW()
		WHERE id = $1 AND status = 'REJECTED'
		RETURNING ` + payrollColumns

	saved, err := scanPayroll(q.QueryRow(ctx, query,
		p.ID,
		p.CanteenName,
		string(p.PeriodType),
		string(p.Status),
		itemsJSON,
		p.TotalGrossPay,
		p.TotalDeductions,
		p.TotalNetPay,
		p.TotalEPFEmployer,
		p.TotalETFEmployer,
		p.StaffCount,
		p.GeneratedBy,
		p.GeneratedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to replace payroll: %w", err)
	}

	return saved, nil
}

// TransitionStatus applies a workflow action only if the stored status still
// matches what the caller read
func (r *payrollRepository) TransitionStatus(ctx context.Context, p payroll.Payroll, from payroll.Status) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls SET
			status = $3,
			submitted_by = $4,
			submitted_at = $5,
			submission_notes = $6,
			reviewed_by = $7,
			reviewed_at = $8,
			review_comments = $9,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + payrollColumns

	saved, err := scanPayroll(q.QueryRow(ctx, query,
		p.ID,
		string(from),
		string(p.Status),
		p.SubmittedBy,
		p.SubmittedAt,
		p.SubmissionNotes,
		p.ReviewedBy,
		p.ReviewedAt,
		p.ReviewComments,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to transition payroll status: %w", err)
	}

	return saved, nil
}

// ListByCanteen retrieves a canteen's payrolls, newest period first
func (r *payrollRepository) ListByCanteen(ctx context.Context, canteenID string) ([]payroll.Payroll, error) {
	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE canteen_id = $1 ORDER BY period_start DESC`
	return r.queryPayrolls(ctx, query, canteenID)
}

// ListByStatus retrieves payrolls in a given status, newest period first
func (r *payrollRepository) ListByStatus(ctx context.Context, status payroll.Status) ([]payroll.Payroll, error) {
	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE status = $1 ORDER BY period_start DESC`
	return r.queryPayrolls(ctx, query, string(status))
}

// CountByStatus counts payrolls in a given status
func (r *payrollRepository) CountByStatus(ctx context.Context, status payroll.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payrolls WHERE status = $1`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	return n, nil
}

func (r *payrollRepository) queryPayrolls(ctx context.Context, query string, args ...any) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payrolls: %w", err)
	}
	defer rows.Close()

	var result []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll rows: %w", err)
	}

	return result, nil
}

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	var itemsJSON []byte

	err := row.Scan(
		&p.ID,
		&p.CanteenID,
		&p.CanteenName,
		&p.PeriodStart,
		&p.PeriodEnd,
		&p.PeriodType,
		&p.Status,
		&itemsJSON,
		&p.TotalGrossPay,
		&p.TotalDeductions,
		&p.TotalNetPay,
		&p.TotalEPFEmployer,
		&p.TotalETFEmployer,
		&p.StaffCount,
		&p.GeneratedBy,
		&p.GeneratedAt,
		&p.SubmittedBy,
		&p.SubmittedAt,
		&p.SubmissionNotes,
		&p.ReviewedBy,
		&p.ReviewedAt,
		&p.ReviewComments,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return payroll.Payroll{}, err
	}

	if err := json.Unmarshal(itemsJSON, &p.Items); err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to unmarshal payroll items: %w", err)
	}

	return p, nil
}
