package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuseats/payroll-backend-go/internal/domain/staff"
	"github.com/campuseats/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRepository struct {
	db *database.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `
	id, canteen_id, name, role, phone, nic_number, employment_type,
	pay_type, pay_rate, bank_name, account_number, bank_branch,
	join_date, status, created_at, updated_at
`

// GetByID retrieves a staff member by id
func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	s, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, fmt.Errorf("failed to get staff: %w", err)
	}

	return s, nil
}

// ListActiveByCanteen retrieves a canteen's ACTIVE staff ordered by name
func (r *staffRepository) ListActiveByCanteen(ctx context.Context, canteenID string) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE canteen_id = $1 AND status = $2 ORDER BY name`

	rows, err := q.Query(ctx, query, canteenID, string(staff.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to list active staff: %w", err)
	}
	defer rows.Close()

	var result []staff.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read staff rows: %w", err)
	}

	return result, nil
}

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(
		&s.ID,
		&s.CanteenID,
		&s.Name,
		&s.Role,
		&s.Phone,
		&s.NICNumber,
		&s.EmploymentType,
		&s.PayType,
		&s.PayRate,
		&s.BankName,
		&s.AccountNumber,
		&s.BankBranch,
		&s.JoinDate,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}
