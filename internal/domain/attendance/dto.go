package attendance

import (
	"fmt"

	"github.com/campuseats/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type LogAttendanceRequest struct {
	StaffID   string  `json:"staff_id"`
	CanteenID string  `json:"canteen_id"`
	Date      string  `json:"date"`
	DayType   DayType `json:"day_type"`
	ClockIn   *string `json:"clock_in"`
	ClockOut  *string `json:"clock_out"`
	Notes     *string `json:"notes"`
}

func (r *LogAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if validator.IsEmpty(r.CanteenID) {
		errs = append(errs, validator.ValidationError{
			Field:   "canteen_id",
			Message: "canteen_id is required",
		})
	}

	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !r.DayType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "day_type",
			Message: "day_type must be one of PRESENT, ABSENT, HALF_DAY, LEAVE",
		})
	}

	if r.ClockIn != nil && !validator.IsValidClockTime(*r.ClockIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "clock_in must be in HH:MM format",
		})
	}

	if r.ClockOut != nil && !validator.IsValidClockTime(*r.ClockOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock_out must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkLogAttendanceRequest struct {
	Records []LogAttendanceRequest `json:"records"`
}

func (r *BulkLogAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "records",
			Message: "records must not be empty",
		})
		return errs
	}

	for i, rec := range r.Records {
		if err := rec.Validate(); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("records[%d]", i),
				Message: err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	StaffID       string          `json:"staff_id"`
	StaffName     *string         `json:"staff_name,omitempty"`
	CanteenID     string          `json:"canteen_id"`
	Date          string          `json:"date"`
	DayType       DayType         `json:"day_type"`
	ClockIn       *string         `json:"clock_in,omitempty"`
	ClockOut      *string         `json:"clock_out,omitempty"`
	HoursWorked   decimal.Decimal `json:"hours_worked"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Notes         *string         `json:"notes,omitempty"`
}

func ToAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		StaffID:       a.StaffID,
		StaffName:     a.StaffName,
		CanteenID:     a.CanteenID,
		Date:          a.Date.Format("2006-01-02"),
		DayType:       a.DayType,
		ClockIn:       a.ClockIn,
		ClockOut:      a.ClockOut,
		HoursWorked:   a.HoursWorked,
		OvertimeHours: a.OvertimeHours,
		Notes:         a.Notes,
	}
}
