package payroll

import (
	"time"

	"github.com/campuseats/payroll-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// PayPeriodType enum
type PayPeriodType string

const (
	PayPeriodWeekly   PayPeriodType = "WEEKLY"
	PayPeriodBiWeekly PayPeriodType = "BI_WEEKLY"
	PayPeriodMonthly  PayPeriodType = "MONTHLY"
)

func (p PayPeriodType) Valid() bool {
	switch p {
	case PayPeriodWeekly, PayPeriodBiWeekly, PayPeriodMonthly:
		return true
	}
	return false
}

// Config is the deployment-wide payroll configuration. Exactly one live row
// exists; reading when none exists materializes the defaults below.
type Config struct {
	ID                        string
	PayPeriodType             PayPeriodType
	OvertimeMultiplier        decimal.Decimal
	EPFEmployeeRate           decimal.Decimal
	EPFEmployerRate           decimal.Decimal
	ETFRate                   decimal.Decimal
	StandardWorkHoursPerDay   int
	DefaultMealAllowance      decimal.Decimal
	DefaultTransportAllowance decimal.Decimal
	UpdatedBy                 *string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// DefaultConfig returns the configuration materialized on first read.
func DefaultConfig() Config {
	return Config{
		PayPeriodType:             PayPeriodMonthly,
		OvertimeMultiplier:        decimal.RequireFromString("1.5"),
		EPFEmployeeRate:           decimal.RequireFromString("8"),
		EPFEmployerRate:           decimal.RequireFromString("12"),
		ETFRate:                   decimal.RequireFromString("3"),
		StandardWorkHoursPerDay:   8,
		DefaultMealAllowance:      decimal.Zero,
		DefaultTransportAllowance: decimal.Zero,
	}
}

// Item is one staff member's pay breakdown inside a Payroll. Items have no
// identity or lifecycle of their own; they live and die with their parent.
type Item struct {
	StaffID   string          `json:"staff_id"`
	StaffName string          `json:"staff_name"`
	Role      string          `json:"role"`
	PayType   staff.PayType   `json:"pay_type"`
	PayRate   decimal.Decimal `json:"pay_rate"`

	TotalHoursWorked decimal.Decimal `json:"total_hours_worked"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	DaysWorked       int             `json:"days_worked"`
	DaysAbsent       int             `json:"days_absent"`

	BasicPay           decimal.Decimal `json:"basic_pay"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	GrossPay           decimal.Decimal `json:"gross_pay"`

	EPFEmployee       decimal.Decimal `json:"epf_employee"`
	AdvanceDeductions decimal.Decimal `json:"advance_deductions"`
	OtherDeductions   decimal.Decimal `json:"other_deductions"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`

	NetPay decimal.Decimal `json:"net_pay"`

	// Employer-side contributions, informational only. Never part of
	// TotalDeductions or NetPay.
	EPFEmployer decimal.Decimal `json:"epf_employer"`
	ETFEmployer decimal.Decimal `json:"etf_employer"`
}

// Payroll is one canteen's pay run for one period. It exclusively owns its
// Items, which are persisted embedded in the same row.
type Payroll struct {
	ID          string
	CanteenID   string
	CanteenName string
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodType  PayPeriodType
	Status      Status

	Items []Item

	TotalGrossPay    decimal.Decimal
	TotalDeductions  decimal.Decimal
	TotalNetPay      decimal.Decimal
	TotalEPFEmployer decimal.Decimal
	TotalETFEmployer decimal.Decimal
	StaffCount       int

	GeneratedBy *string
	GeneratedAt time.Time

	SubmittedBy     *string
	SubmittedAt     *time.Time
	SubmissionNotes *string

	ReviewedBy     *string
	ReviewedAt     *time.Time
	ReviewComments *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Totals holds the aggregate sums over a payroll's items.
type Totals struct {
	GrossPay    decimal.Decimal
	Deductions  decimal.Decimal
	NetPay      decimal.Decimal
	EPFEmployer decimal.Decimal
	ETFEmployer decimal.Decimal
}

// SumItems folds already-rounded per-item values into aggregate totals.
// Ordering does not matter; every input is rounded to 2 places already.
func SumItems(items []Item) Totals {
	t := Totals{
		GrossPay:    decimal.Zero,
		Deductions:  decimal.Zero,
		NetPay:      decimal.Zero,
		EPFEmployer: decimal.Zero,
		ETFEmployer: decimal.Zero,
	}
	for _, it := range items {
		t.GrossPay = t.GrossPay.Add(it.GrossPay)
		t.Deductions = t.Deductions.Add(it.TotalDeductions)
		t.NetPay = t.NetPay.Add(it.NetPay)
		t.EPFEmployer = t.EPFEmployer.Add(it.EPFEmployer)
		t.ETFEmployer = t.ETFEmployer.Add(it.ETFEmployer)
	}
	return t
}
