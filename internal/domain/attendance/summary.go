package attendance

import "github.com/shopspring/decimal"

// Summary is the per-staff aggregation payroll is computed from.
type Summary struct {
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	DaysWorked    int
	DaysAbsent    int
}

// Summarize folds a staff member's records for a period into a Summary.
// PRESENT and HALF_DAY days count as worked and contribute their recorded
// hours; ABSENT and LEAVE days count as absent and contribute nothing,
// whatever hours the record carries. Unknown day types are skipped.
func Summarize(records []Attendance) Summary {
	var s Summary
	s.TotalHours = decimal.Zero
	s.OvertimeHours = decimal.Zero

	for _, r := range records {
		switch r.DayType {
		case DayTypePresent, DayTypeHalfDay:
			s.DaysWorked++
			s.TotalHours = s.TotalHours.Add(r.HoursWorked)
			s.OvertimeHours = s.OvertimeHours.Add(r.OvertimeHours)
		case DayTypeAbsent, DayTypeLeave:
			s.DaysAbsent++
		}
	}
	return s
}
