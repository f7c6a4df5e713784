package response

import (
	"errors"
	"net/http"

	"github.com/campuseats/payroll-backend-go/internal/domain/attendance"
	"github.com/campuseats/payroll-backend-go/internal/domain/canteen"
	"github.com/campuseats/payroll-backend-go/internal/domain/payroll"
	"github.com/campuseats/payroll-backend-go/internal/domain/staff"
	"github.com/campuseats/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var duplicate *payroll.DuplicatePeriodError
	var invalidTransition *payroll.InvalidTransitionError

	switch {
	// Payroll workflow errors
	case errors.As(err, &duplicate):
		Conflict(w, duplicate.Error())
	case errors.As(err, &invalidTransition):
		Conflict(w, invalidTransition.Error())
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, payroll.ErrNoActiveStaff):
		BadRequest(w, "No active staff found for canteen", nil)
	case errors.Is(err, payroll.ErrInvalidPayTerms):
		BadRequest(w, "Staff pay rate is missing or negative", nil)
	case errors.Is(err, payroll.ErrConfigNotFound):
		NotFound(w, "Payroll configuration not found")

	// Directory errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, canteen.ErrCanteenNotFound):
		NotFound(w, "Canteen not found")

	// Attendance errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidClockTimes):
		BadRequest(w, "clock_out must be after clock_in", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
