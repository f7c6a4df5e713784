package payroll

// Status enum
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanSubmit reports whether a payroll in this status may move to SUBMITTED.
func (s Status) CanSubmit() bool {
	return s == StatusDraft
}

// CanReview reports whether a payroll in this status may be approved or
// rejected. UNDER_REVIEW is a valid review source even though nothing
// currently produces it; the state is reserved for a future claim step.
func (s Status) CanReview() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview:
		return true
	}
	return false
}

// CanRegenerate reports whether a payroll occupying a period may be
// overwritten in place by a new generation run.
func (s Status) CanRegenerate() bool {
	return s == StatusRejected
}
