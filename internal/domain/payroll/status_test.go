package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("PENDING").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusCanSubmit(t *testing.T) {
	assert.True(t, StatusDraft.CanSubmit())

	for _, s := range []Status{StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected} {
		assert.False(t, s.CanSubmit(), string(s))
	}
}

func TestStatusCanReview(t *testing.T) {
	assert.True(t, StatusSubmitted.CanReview())
	assert.True(t, StatusUnderReview.CanReview())

	for _, s := range []Status{StatusDraft, StatusApproved, StatusRejected} {
		assert.False(t, s.CanReview(), string(s))
	}
}

func TestStatusCanRegenerate(t *testing.T) {
	assert.True(t, StatusRejected.CanRegenerate())

	for _, s := range []Status{StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved} {
		assert.False(t, s.CanRegenerate(), string(s))
	}
}
