package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/campuseats/payroll-backend-go/internal/domain/attendance"
	"github.com/campuseats/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.staff_id, a.canteen_id, a.date, a.day_type, a.clock_in, a.clock_out,
	a.hours_worked, a.overtime_hours, a.notes, a.created_at, a.updated_at, s.name
`

// Upsert inserts a record or replaces the existing one for (staff_id, date)
func (r *attendanceRepository) Upsert(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, staff_id, canteen_id, date, day_type, clock_in, clock_out,
			hours_worked, overtime_hours, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (staff_id, date) DO UPDATE SET
			canteen_id     = EXCLUDED.canteen_id,
			day_type       = EXCLUDED.day_type,
			clock_in       = EXCLUDED.clock_in,
			clock_out      = EXCLUDED.clock_out,
			hours_worked   = EXCLUDED.hours_worked,
			overtime_hours = EXCLUDED.overtime_hours,
			notes          = EXCLUDED.notes,
			updated_at     = NOW()
		RETURNING id, staff_id, canteen_id, date, day_type, clock_in, clock_out,
			hours_worked, overtime_hours, notes, created_at, updated_at
	`

	var saved attendance.Attendance
	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.StaffID,
		rec.CanteenID,
		rec.Date,
		string(rec.DayType),
		rec.ClockIn,
		rec.ClockOut,
		rec.HoursWorked,
		rec.OvertimeHours,
		rec.Notes,
	).Scan(
		&saved.ID,
		&saved.StaffID,
		&saved.CanteenID,
		&saved.Date,
		&saved.DayType,
		&saved.ClockIn,
		&saved.ClockOut,
		&saved.HoursWorked,
		&saved.OvertimeHours,
		&saved.Notes,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return saved, nil
}

// FindByStaffAndDateRange retrieves one staff member's records, oldest first
func (r *attendanceRepository) FindByStaffAndDateRange(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN staff s ON s.id = a.staff_id
		WHERE a.staff_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date
	`
	return r.queryRecords(ctx, query, staffID, from, to)
}

// FindByCanteenAndDateRange retrieves a canteen's records, oldest first then
// by staff name
func (r *attendanceRepository) FindByCanteenAndDateRange(ctx context.Context, canteenID string, from, to time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN staff s ON s.id = a.staff_id
		WHERE a.canteen_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date, s.name
	`
	return r.queryRecords(ctx, query, canteenID, from, to)
}

// FindByCanteenAndDate retrieves a canteen's records for one day
func (r *attendanceRepository) FindByCanteenAndDate(ctx context.Context, canteenID string, date time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		JOIN staff s ON s.id = a.staff_id
		WHERE a.canteen_id = $1 AND a.date = $2
		ORDER BY s.name
	`
	return r.queryRecords(ctx, query, canteenID, date)
}

func (r *attendanceRepository) queryRecords(ctx context.Context, query string, args ...any) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	return result, nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var rec attendance.Attendance
	err := row.Scan(
		&rec.ID,
		&rec.StaffID,
		&rec.CanteenID,
		&rec.Date,
		&rec.DayType,
		&rec.ClockIn,
		&rec.ClockOut,
		&rec.HoursWorked,
		&rec.OvertimeHours,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.StaffName,
	)
	return rec, err
}
