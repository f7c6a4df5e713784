package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Upsert
// keys on (staff_id, date) so re-logging a day replaces the earlier record.
type AttendanceRepository interface {
	Upsert(ctx context.Context, record Attendance) (Attendance, error)

	// FindByStaffAndDateRange returns records ordered by date ascending.
	// Both bounds are inclusive.
	FindByStaffAndDateRange(ctx context.Context, staffID string, from, to time.Time) ([]Attendance, error)

	// FindByCanteenAndDateRange returns records for every staff member of a
	// canteen, ordered by date then staff name.
	FindByCanteenAndDateRange(ctx context.Context, canteenID string, from, to time.Time) ([]Attendance, error)

	FindByCanteenAndDate(ctx context.Context, canteenID string, date time.Time) ([]Attendance, error)
}
