package payroll

import (
	"github.com/campuseats/payroll-backend-go/internal/domain/attendance"
	"github.com/campuseats/payroll-backend-go/internal/domain/payroll"
	"github.com/campuseats/payroll-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

var (
	thirty  = decimal.NewFromInt(30)
	hundred = decimal.NewFromInt(100)
)

// CalculateItem maps one staff member's pay terms, attendance summary and
// the active configuration to a fully itemized pay breakdown. Pure function,
// safe to call concurrently.
//
// Every monetary field is rounded to 2 places as it is computed, and later
// fields are derived from the already-rounded earlier ones, so the stored
// breakdown always reconciles to the cent.
func CalculateItem(s staff.Staff, summary attendance.Summary, cfg payroll.Config, adj payroll.StaffAdjustment) (payroll.Item, error) {
	if s.PayRate == nil || s.PayRate.IsNegative() {
		return payroll.Item{}, payroll.ErrInvalidPayTerms
	}
	rate := *s.PayRate
	daysWorked := decimal.NewFromInt(int64(summary.DaysWorked))

	var basicPay decimal.Decimal
	switch s.PayType {
	case staff.PayTypeHourly:
		regularHours := summary.TotalHours.Sub(summary.OvertimeHours)
		basicPay = regularHours.Mul(rate).Round(2)
	case staff.PayTypeMonthly:
		// Fixed 30-day month proration regardless of the actual period length.
		basicPay = rate.Div(thirty).Mul(daysWorked).Round(2)
	default:
		return payroll.Item{}, payroll.ErrInvalidPayTerms
	}

	// Overtime is always priced off the stored payRate, even for MONTHLY
	// staff whose rate is a monthly figure. Numerically dubious but kept for
	// compatibility with existing payroll output.
	overtimePay := summary.OvertimeHours.Mul(rate).Mul(cfg.OvertimeMultiplier).Round(2)

	mealAllowance := cfg.DefaultMealAllowance.Mul(daysWorked).Round(2)
	transportAllowance := cfg.DefaultTransportAllowance.Mul(daysWorked).Round(2)

	grossPay := basicPay.Add(overtimePay).Add(mealAllowance).Add(transportAllowance).Round(2)

	epfEmployee := grossPay.Mul(cfg.EPFEmployeeRate).Div(hundred).Round(2)
	advance := adj.AdvanceDeductions.Round(2)
	other := adj.OtherDeductions.Round(2)
	totalDeductions := epfEmployee.Add(advance).Add(other).Round(2)

	netPay := grossPay.Sub(totalDeductions).Round(2)

	epfEmployer := grossPay.Mul(cfg.EPFEmployerRate).Div(hundred).Round(2)
	etfEmployer := grossPay.Mul(cfg.ETFRate).Div(hundred).Round(2)

	return payroll.Item{
		StaffID:   s.ID,
		StaffName: s.Name,
		Role:      s.Role,
		PayType:   s.PayType,
		PayRate:   rate,

		TotalHoursWorked: summary.TotalHours,
		OvertimeHours:    summary.OvertimeHours,
		DaysWorked:       summary.DaysWorked,
		DaysAbsent:       summary.DaysAbsent,

		BasicPay:           basicPay,
		OvertimePay:        overtimePay,
		MealAllowance:      mealAllowance,
		TransportAllowance: transportAllowance,
		GrossPay:           grossPay,

		EPFEmployee:       epfEmployee,
		AdvanceDeductions: advance,
		OtherDeductions:   other,
		TotalDeductions:   totalDeductions,

		NetPay: netPay,

		EPFEmployer: epfEmployer,
		ETFEmployer: etfEmployer,
	}, nil
}
