package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidClockTimes  = errors.New("clock_out must be after clock_in")
)
