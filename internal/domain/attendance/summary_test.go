package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rec(dayType DayType, hours, overtime string) Attendance {
	return Attendance{
		DayType:       dayType,
		HoursWorked:   decimal.RequireFromString(hours),
		OvertimeHours: decimal.RequireFromString(overtime),
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.DaysWorked)
	assert.Equal(t, 0, s.DaysAbsent)
	assert.True(t, s.TotalHours.IsZero())
	assert.True(t, s.OvertimeHours.IsZero())
}

func TestSummarize_MixedWeek(t *testing.T) {
	records := []Attendance{
		rec(DayTypePresent, "8", "0"),
		rec(DayTypePresent, "10", "2"),
		rec(DayTypeHalfDay, "4", "0"),
		rec(DayTypeAbsent, "0", "0"),
		rec(DayTypeLeave, "0", "0"),
	}

	s := Summarize(records)

	assert.Equal(t, 3, s.DaysWorked)
	assert.Equal(t, 2, s.DaysAbsent)
	assert.True(t, s.TotalHours.Equal(decimal.RequireFromString("22")), "got %s", s.TotalHours)
	assert.True(t, s.OvertimeHours.Equal(decimal.RequireFromString("2")), "got %s", s.OvertimeHours)
}

func TestSummarize_AbsentHoursIgnored(t *testing.T) {
	// Hours on an absent or leave row never leak into the totals.
	records := []Attendance{
		rec(DayTypeAbsent, "8", "1"),
		rec(DayTypeLeave, "8", "0"),
	}

	s := Summarize(records)

	assert.Equal(t, 0, s.DaysWorked)
	assert.Equal(t, 2, s.DaysAbsent)
	assert.True(t, s.TotalHours.IsZero())
	assert.True(t, s.OvertimeHours.IsZero())
}

func TestSummarize_UnknownDayTypeSkipped(t *testing.T) {
	records := []Attendance{
		rec(DayType("SICK"), "8", "0"),
		rec(DayTypePresent, "8", "0"),
	}

	s := Summarize(records)

	assert.Equal(t, 1, s.DaysWorked)
	assert.Equal(t, 0, s.DaysAbsent)
	assert.True(t, s.TotalHours.Equal(decimal.RequireFromString("8")))
}

func TestSummarize_FractionalHours(t *testing.T) {
	records := []Attendance{
		rec(DayTypePresent, "7.5", "0"),
		rec(DayTypePresent, "8.25", "0.25"),
	}

	s := Summarize(records)

	assert.True(t, s.TotalHours.Equal(decimal.RequireFromString("15.75")), "got %s", s.TotalHours)
	assert.True(t, s.OvertimeHours.Equal(decimal.RequireFromString("0.25")))
}
