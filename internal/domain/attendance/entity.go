package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayType classifies a single attendance day.
type DayType string

const (
	DayTypePresent DayType = "PRESENT"
	DayTypeAbsent  DayType = "ABSENT"
	DayTypeHalfDay DayType = "HALF_DAY"
	DayTypeLeave   DayType = "LEAVE"
)

// StandardWorkHours is the baseline day length used to derive hours from
// clock times and to split overtime. Payroll reads its own configured value;
// attendance recording always uses this constant.
const StandardWorkHours = 8

func (t DayType) Valid() bool {
	switch t {
	case DayTypePresent, DayTypeAbsent, DayTypeHalfDay, DayTypeLeave:
		return true
	}
	return false
}

// Attendance is one staff member's record for one calendar day. At most one
// record exists per (staff, date); re-logging the same day overwrites it.
type Attendance struct {
	ID            string
	StaffID       string
	CanteenID     string
	Date          time.Time
	DayType       DayType
	ClockIn       *string
	ClockOut      *string
	HoursWorked   decimal.Decimal
	OvertimeHours decimal.Decimal
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Denormalized for list responses.
	StaffName *string
}
