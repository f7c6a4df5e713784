package payroll

import (
	"fmt"
	"time"

	"github.com/campuseats/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAYROLL DTOs
// ========================================

// StaffAdjustment carries externally decided deductions for one staff
// member. The engine applies them verbatim, never recomputes them.
type StaffAdjustment struct {
	StaffID           string          `json:"staff_id"`
	AdvanceDeductions decimal.Decimal `json:"advance_deductions"`
	OtherDeductions   decimal.Decimal `json:"other_deductions"`
}

type GeneratePayrollRequest struct {
	CanteenID   string            `json:"canteen_id"`
	PeriodStart string            `json:"period_start"`
	PeriodEnd   string            `json:"period_end"`
	GeneratedBy *string           `json:"generated_by"`
	Adjustments []StaffAdjustment `json:"adjustments"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CanteenID) {
		errs = append(errs, validator.ValidationError{
			Field:   "canteen_id",
			Message: "canteen_id is required",
		})
	}

	if !validator.IsValidDate(r.PeriodStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsValidDate(r.PeriodEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be in YYYY-MM-DD format",
		})
	}

	if validator.IsValidDate(r.PeriodStart) && validator.IsValidDate(r.PeriodEnd) {
		start, _ := time.Parse("2006-01-02", r.PeriodStart)
		end, _ := time.Parse("2006-01-02", r.PeriodEnd)
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "period_end",
				Message: "period_end must not be before period_start",
			})
		}
	}

	for i, adj := range r.Adjustments {
		if validator.IsEmpty(adj.StaffID) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("adjustments[%d].staff_id", i),
				Message: "staff_id is required",
			})
		}
		if adj.AdvanceDeductions.IsNegative() || adj.OtherDeductions.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("adjustments[%d]", i),
				Message: "deductions must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitPayrollRequest struct {
	SubmittedBy string  `json:"submitted_by"`
	Notes       *string `json:"notes"`
}

func (r *SubmitPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SubmittedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "submitted_by",
			Message: "submitted_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewPayrollRequest struct {
	ReviewedBy string  `json:"reviewed_by"`
	Comments   *string `json:"comments"`
}

func (r *ReviewPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ReviewedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewed_by",
			Message: "reviewed_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateConfigRequest patches the live configuration. Nil fields are left
// untouched.
type UpdateConfigRequest struct {
	PayPeriodType             *PayPeriodType   `json:"pay_period_type"`
	OvertimeMultiplier        *decimal.Decimal `json:"overtime_multiplier"`
	EPFEmployeeRate           *decimal.Decimal `json:"epf_employee_rate"`
	EPFEmployerRate           *decimal.Decimal `json:"epf_employer_rate"`
	ETFRate                   *decimal.Decimal `json:"etf_rate"`
	StandardWorkHoursPerDay   *int             `json:"standard_work_hours_per_day"`
	DefaultMealAllowance      *decimal.Decimal `json:"default_meal_allowance"`
	DefaultTransportAllowance *decimal.Decimal `json:"default_transport_allowance"`
	UpdatedBy                 string           `json:"updated_by"`
}

func (r *UpdateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UpdatedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "updated_by",
			Message: "updated_by is required",
		})
	}

	if r.PayPeriodType != nil && !r.PayPeriodType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_period_type",
			Message: "pay_period_type must be one of WEEKLY, BI_WEEKLY, MONTHLY",
		})
	}

	if r.OvertimeMultiplier != nil && !r.OvertimeMultiplier.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_multiplier",
			Message: "overtime_multiplier must be greater than zero",
		})
	}

	rates := map[string]*decimal.Decimal{
		"epf_employee_rate": r.EPFEmployeeRate,
		"epf_employer_rate": r.EPFEmployerRate,
		"etf_rate":          r.ETFRate,
	}
	hundred := decimal.NewFromInt(100)
	for field, rate := range rates {
		if rate == nil {
			continue
		}
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be between 0 and 100",
			})
		}
	}

	if r.StandardWorkHoursPerDay != nil && (*r.StandardWorkHoursPerDay < 1 || *r.StandardWorkHoursPerDay > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_work_hours_per_day",
			Message: "standard_work_hours_per_day must be between 1 and 24",
		})
	}

	if r.DefaultMealAllowance != nil && r.DefaultMealAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "default_meal_allowance",
			Message: "default_meal_allowance must not be negative",
		})
	}

	if r.DefaultTransportAllowance != nil && r.DefaultTransportAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "default_transport_allowance",
			Message: "default_transport_allowance must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollResponse struct {
	ID          string        `json:"id"`
	CanteenID   string        `json:"canteen_id"`
	CanteenName string        `json:"canteen_name"`
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	PeriodType  PayPeriodType `json:"period_type"`
	Status      Status        `json:"status"`

	Items []Item `json:"items"`

	TotalGrossPay    decimal.Decimal `json:"total_gross_pay"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalNetPay      decimal.Decimal `json:"total_net_pay"`
	TotalEPFEmployer decimal.Decimal `json:"total_epf_employer"`
	TotalETFEmployer decimal.Decimal `json:"total_etf_employer"`
	StaffCount       int             `json:"staff_count"`

	GeneratedBy     *string    `json:"generated_by,omitempty"`
	GeneratedAt     time.Time  `json:"generated_at"`
	SubmittedBy     *string    `json:"submitted_by,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	SubmissionNotes *string    `json:"submission_notes,omitempty"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewComments  *string    `json:"review_comments,omitempty"`
}

func ToPayrollResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:          p.ID,
		CanteenID:   p.CanteenID,
		CanteenName: p.CanteenName,
		PeriodStart: p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),
		PeriodType:  p.PeriodType,
		Status:      p.Status,

		Items: p.Items,

		TotalGrossPay:    p.TotalGrossPay,
		TotalDeductions:  p.TotalDeductions,
		TotalNetPay:      p.TotalNetPay,
		TotalEPFEmployer: p.TotalEPFEmployer,
		TotalETFEmployer: p.TotalETFEmployer,
		StaffCount:       p.StaffCount,

		GeneratedBy:     p.GeneratedBy,
		GeneratedAt:     p.GeneratedAt,
		SubmittedBy:     p.SubmittedBy,
		SubmittedAt:     p.SubmittedAt,
		SubmissionNotes: p.SubmissionNotes,
		ReviewedBy:      p.ReviewedBy,
		ReviewedAt:      p.ReviewedAt,
		ReviewComments:  p.ReviewComments,
	}
}

type ConfigResponse struct {
	PayPeriodType             PayPeriodType   `json:"pay_period_type"`
	OvertimeMultiplier        decimal.Decimal `json:"overtime_multiplier"`
	EPFEmployeeRate           decimal.Decimal `json:"epf_employee_rate"`
	EPFEmployerRate           decimal.Decimal `json:"epf_employer_rate"`
	ETFRate                   decimal.Decimal `json:"etf_rate"`
	StandardWorkHoursPerDay   int             `json:"standard_work_hours_per_day"`
	DefaultMealAllowance      decimal.Decimal `json:"default_meal_allowance"`
	DefaultTransportAllowance decimal.Decimal `json:"default_transport_allowance"`
	UpdatedBy                 *string         `json:"updated_by,omitempty"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

func ToConfigResponse(c Config) ConfigResponse {
	return ConfigResponse{
		PayPeriodType:             c.PayPeriodType,
		OvertimeMultiplier:        c.OvertimeMultiplier,
		EPFEmployeeRate:           c.EPFEmployeeRate,
		EPFEmployerRate:           c.EPFEmployerRate,
		ETFRate:                   c.ETFRate,
		StandardWorkHoursPerDay:   c.StandardWorkHoursPerDay,
		DefaultMealAllowance:      c.DefaultMealAllowance,
		DefaultTransportAllowance: c.DefaultTransportAllowance,
		UpdatedBy:                 c.UpdatedBy,
		UpdatedAt:                 c.UpdatedAt,
	}
}
