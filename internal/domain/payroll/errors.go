package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrPayrollNotFound = errors.New("payroll not found")
	ErrNoActiveStaff   = errors.New("no active staff found for canteen")
	ErrInvalidPayTerms = errors.New("staff pay rate is missing or negative")
	ErrConfigNotFound  = errors.New("payroll configuration not found")
)

// DuplicatePeriodError is returned when generation finds a non-rejected
// payroll already occupying the requested canteen and period.
type DuplicatePeriodError struct {
	Status Status
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("payroll already exists for this period with status %s", e.Status)
}

// InvalidTransitionError is returned when a workflow action is applied to a
// payroll whose current status does not permit it.
type InvalidTransitionError struct {
	From   Status
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s payroll in status %s", e.Action, e.From)
}
