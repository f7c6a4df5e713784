package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/campuseats/payroll-backend-go/internal/domain/attendance"
	"github.com/campuseats/payroll-backend-go/internal/domain/staff"
	"github.com/campuseats/payroll-backend-go/internal/pkg/database"
	"github.com/campuseats/payroll-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	staff.StaffRepository
}

// Log implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Log(ctx context.Context, req attendance.LogAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.buildRecord(ctx, req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := a.AttendanceRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return attendance.ToAttendanceResponse(saved), nil
}

// LogBulk implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) LogBulk(ctx context.Context, req attendance.BulkLogAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records := make([]attendance.Attendance, 0, len(req.Records))
	for _, r := range req.Records {
		rec, err := a.buildRecord(ctx, r)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		for _, rec := range records {
			saved, err := a.AttendanceRepository.Upsert(txCtx, rec)
			if err != nil {
				return fmt.Errorf("failed to upsert attendance for staff %s: %w", rec.StaffID, err)
			}
			responses = append(responses, attendance.ToAttendanceResponse(saved))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

// GetByStaff implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetByStaff(ctx context.Context, staffID string, from, to time.Time) ([]attendance.AttendanceResponse, error) {
	if _, err := a.StaffRepository.GetByID(ctx, staffID); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.FindByStaffAndDateRange(ctx, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by staff: %w", err)
	}

	return toResponses(records), nil
}

// GetByCanteen implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetByCanteen(ctx context.Context, canteenID string, from, to time.Time) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.FindByCanteenAndDateRange(ctx, canteenID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by canteen: %w", err)
	}

	return toResponses(records), nil
}

// GetByCanteenAndDate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetByCanteenAndDate(ctx context.Context, canteenID string, date time.Time) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.FindByCanteenAndDate(ctx, canteenID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by canteen and date: %w", err)
	}

	return toResponses(records), nil
}

// buildRecord validates the referenced staff member and derives hours from
// the request's clock times.
func (a *AttendanceServiceImpl) buildRecord(ctx context.Context, req attendance.LogAttendanceRequest) (attendance.Attendance, error) {
	if _, err := a.StaffRepository.GetByID(ctx, req.StaffID); err != nil {
		return attendance.Attendance{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to parse date: %w", err)
	}

	hours, overtime, err := DeriveHours(req.DayType, req.ClockIn, req.ClockOut)
	if err != nil {
		return attendance.Attendance{}, err
	}

	rec := attendance.Attendance{
		ID:            uuid.New().String(),
		StaffID:       req.StaffID,
		CanteenID:     req.CanteenID,
		Date:          date,
		DayType:       req.DayType,
		HoursWorked:   hours,
		OvertimeHours: overtime,
		Notes:         req.Notes,
	}
	if req.DayType == attendance.DayTypePresent || req.DayType == attendance.DayTypeHalfDay {
		rec.ClockIn = req.ClockIn
		rec.ClockOut = req.ClockOut
	}
	return rec, nil
}

// DeriveHours turns a day classification and optional clock times into
// worked and overtime hours. ABSENT and LEAVE days always carry zero hours.
// HALF_DAY hours are capped at half the standard day; overtime is whatever
// exceeds a full standard day.
func DeriveHours(dayType attendance.DayType, clockIn, clockOut *string) (decimal.Decimal, decimal.Decimal, error) {
	if dayType == attendance.DayTypeAbsent || dayType == attendance.DayTypeLeave {
		return decimal.Zero, decimal.Zero, nil
	}

	if clockIn == nil || clockOut == nil {
		// No clock times recorded: assume a standard day, or half for HALF_DAY.
		if dayType == attendance.DayTypeHalfDay {
			return decimal.NewFromInt(attendance.StandardWorkHours / 2), decimal.Zero, nil
		}
		return decimal.NewFromInt(attendance.StandardWorkHours), decimal.Zero, nil
	}

	in, err := time.Parse("15:04", *clockIn)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to parse clock_in: %w", err)
	}
	out, err := time.Parse("15:04", *clockOut)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to parse clock_out: %w", err)
	}

	minutes := out.Sub(in).Minutes()
	if minutes <= 0 {
		return decimal.Zero, decimal.Zero, attendance.ErrInvalidClockTimes
	}

	hours := decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)).Round(2)

	if dayType == attendance.DayTypeHalfDay {
		half := decimal.NewFromInt(attendance.StandardWorkHours).Div(decimal.NewFromInt(2))
		if hours.GreaterThan(half) {
			hours = half
		}
		return hours, decimal.Zero, nil
	}

	overtime := decimal.Zero
	if full := decimal.NewFromInt(attendance.StandardWorkHours); hours.GreaterThan(full) {
		overtime = hours.Sub(full)
	}
	return hours, overtime, nil
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToAttendanceResponse(rec))
	}
	return responses
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	staffRepo staff.StaffRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		StaffRepository:      staffRepo,
	}
}
