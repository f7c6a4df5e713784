package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Log records (or replaces) one staff member's attendance for a day,
	// deriving worked and overtime hours from the clock times.
	Log(ctx context.Context, req LogAttendanceRequest) (AttendanceResponse, error)

	// LogBulk records a batch of days, typically a whole canteen for one date.
	LogBulk(ctx context.Context, req BulkLogAttendanceRequest) ([]AttendanceResponse, error)

	// GetByStaff retrieves a staff member's records inside a date range
	GetByStaff(ctx context.Context, staffID string, from, to time.Time) ([]AttendanceResponse, error)

	// GetByCanteen retrieves all records for a canteen inside a date range
	GetByCanteen(ctx context.Context, canteenID string, from, to time.Time) ([]AttendanceResponse, error)

	// GetByCanteenAndDate retrieves a canteen's records for a single day
	GetByCanteenAndDate(ctx context.Context, canteenID string, date time.Time) ([]AttendanceResponse, error)
}
