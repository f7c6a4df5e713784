package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2025-01-31"))
	assert.False(t, IsValidDate("2025-02-30"))
	assert.False(t, IsValidDate("31-01-2025"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "08:30", "12:05", "23:59"}
	for _, v := range valid {
		assert.True(t, IsValidClockTime(v), v)
	}

	invalid := []string{"24:00", "8:30", "12:60", "12-30", "noon", ""}
	for _, v := range invalid {
		assert.False(t, IsValidClockTime(v), v)
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "period_start", Message: "is required"},
		{Field: "canteen_id", Message: "is required"},
	}

	assert.Equal(t, "period_start: is required; canteen_id: is required", errs.Error())
	assert.Equal(t, map[string]string{
		"period_start": "is required",
		"canteen_id":   "is required",
	}, errs.ToMap())
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"SUBMITTED", "UNDER_REVIEW"}
	assert.True(t, IsInSlice("SUBMITTED", statuses))
	assert.False(t, IsInSlice("DRAFT", statuses))
	assert.False(t, IsInSlice("", nil))
}
