package payroll

import "context"

// PayrollService defines business logic for payroll operations
type PayrollService interface {
	// Generate computes a new payroll for a canteen and period, or
	// regenerates over a rejected one reusing its identity.
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollResponse, error)

	// Submit moves a DRAFT payroll to SUBMITTED
	Submit(ctx context.Context, payrollID string, req SubmitPayrollRequest) (PayrollResponse, error)

	// Approve moves a SUBMITTED or UNDER_REVIEW payroll to APPROVED
	Approve(ctx context.Context, payrollID string, req ReviewPayrollRequest) (PayrollResponse, error)

	// Reject moves a SUBMITTED or UNDER_REVIEW payroll to REJECTED
	Reject(ctx context.Context, payrollID string, req ReviewPayrollRequest) (PayrollResponse, error)

	GetByID(ctx context.Context, payrollID string) (PayrollResponse, error)

	ListByCanteen(ctx context.Context, canteenID string) ([]PayrollResponse, error)

	ListByStatus(ctx context.Context, status Status) ([]PayrollResponse, error)

	// ListPending lists payrolls waiting on review (SUBMITTED plus
	// UNDER_REVIEW).
	ListPending(ctx context.Context) ([]PayrollResponse, error)

	// CountPending counts payrolls waiting on review.
	CountPending(ctx context.Context) (int64, error)

	// GetConfig returns the live configuration, materializing the defaults
	// on first read.
	GetConfig(ctx context.Context) (ConfigResponse, error)

	UpdateConfig(ctx context.Context, req UpdateConfigRequest) (ConfigResponse, error)
}
