package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/campuseats/payroll-backend-go/internal/domain/attendance"
	"github.com/campuseats/payroll-backend-go/internal/domain/canteen"
	"github.com/campuseats/payroll-backend-go/internal/domain/payroll"
	"github.com/campuseats/payroll-backend-go/internal/domain/staff"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// noReasonProvided is recorded when a rejection arrives without comments.
const noReasonProvided = "No reason provided"

// generateConcurrency bounds the per-staff workers inside one Generate call.
const generateConcurrency = 8

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	payroll.ConfigRepository
	staff.StaffRepository
	attendance.AttendanceRepository
	canteen.CanteenRepository
}

// Generate implements payroll.PayrollService.
func (p *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	existing, err := p.PayrollRepository.GetByPeriod(ctx, req.CanteenID, periodStart, periodEnd)
	regenerating := false
	switch {
	case err == nil:
		if !existing.Status.CanRegenerate() {
			return payroll.PayrollResponse{}, &payroll.DuplicatePeriodError{Status: existing.Status}
		}
		regenerating = true
	case errors.Is(err, payroll.ErrPayrollNotFound):
		// First run for this period.
	default:
		return payroll.PayrollResponse{}, fmt.Errorf("failed to look up payroll period: %w", err)
	}

	canteenName, err := p.CanteenRepository.GetName(ctx, req.CanteenID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	cfg, err := p.getOrCreateConfig(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	staffList, err := p.StaffRepository.ListActiveByCanteen(ctx, req.CanteenID)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to list active staff: %w", err)
	}
	if len(staffList) == 0 {
		return payroll.PayrollResponse{}, payroll.ErrNoActiveStaff
	}

	// Stable item order regardless of what the directory returned.
	sort.Slice(staffList, func(i, j int) bool { return staffList[i].Name < staffList[j].Name })

	adjustments := make(map[string]payroll.StaffAdjustment, len(req.Adjustments))
	for _, adj := range req.Adjustments {
		adjustments[adj.StaffID] = adj
	}

	items, err := p.computeItems(ctx, staffList, periodStart, periodEnd, cfg, adjustments)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	totals := payroll.SumItems(items)
	now := time.Now().UTC()

	run := payroll.Payroll{
		ID:          uuid.New().String(),
		CanteenID:   req.CanteenID,
		CanteenName: canteenName,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		PeriodType:  cfg.PayPeriodType,
		Status:      payroll.StatusDraft,

		Items: items,

		TotalGrossPay:    totals.GrossPay.Round(2),
		TotalDeductions:  totals.Deductions.Round(2),
		TotalNetPay:      totals.NetPay.Round(2),
		TotalEPFEmployer: totals.EPFEmployer.Round(2),
		TotalETFEmployer: totals.ETFEmployer.Round(2),
		StaffCount:       len(items),

		GeneratedBy: req.GeneratedBy,
		GeneratedAt: now,
	}

	var saved payroll.Payroll
	if regenerating {
		// Overwrite the rejected run in place: same identity, fresh items
		// and totals, review trail cleared.
		run.ID = existing.ID
		saved, err = p.PayrollRepository.Replace(ctx, run)
	} else {
		saved, err = p.PayrollRepository.Create(ctx, run)
	}
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToPayrollResponse(saved), nil
}

// computeItems runs the per-staff calculation in parallel and returns items
// in staffList order.
func (p *PayrollServiceImpl) computeItems(
	ctx context.Context,
	staffList []staff.Staff,
	periodStart, periodEnd time.Time,
	cfg payroll.Config,
	adjustments map[string]payroll.StaffAdjustment,
) ([]payroll.Item, error) {
	items := make([]payroll.Item, len(staffList))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(generateConcurrency)
	for i, member := range staffList {
		g.Go(func() error {
			records, err := p.AttendanceRepository.FindByStaffAndDateRange(gctx, member.ID, periodStart, periodEnd)
			if err != nil {
				return fmt.Errorf("failed to load attendance for staff %s: %w", member.ID, err)
			}

			item, err := CalculateItem(member, attendance.Summarize(records), cfg, adjustments[member.ID])
			if err != nil {
				return fmt.Errorf("staff %s: %w", member.ID, err)
			}

			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return items, nil
}

// Submit implements payroll.PayrollService.
func (p *PayrollServiceImpl) Submit(ctx context.Context, payrollID string, req payroll.SubmitPayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	run, err := p.PayrollRepository.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if !run.Status.CanSubmit() {
		return payroll.PayrollResponse{}, &payroll.InvalidTransitionError{From: run.Status, Action: "submit"}
	}

	from := run.Status
	now := time.Now().UTC()
	run.Status = payroll.StatusSubmitted
	run.SubmittedBy = &req.SubmittedBy
	run.SubmittedAt = &now
	run.SubmissionNotes = req.Notes

	saved, err := p.PayrollRepository.TransitionStatus(ctx, run, from)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToPayrollResponse(saved), nil
}

// Approve implements payroll.PayrollService.
func (p *PayrollServiceImpl) Approve(ctx context.Context, payrollID string, req payroll.ReviewPayrollRequest) (payroll.PayrollResponse, error) {
	return p.review(ctx, payrollID, req, payroll.StatusApproved, "approve")
}

// Reject implements payroll.PayrollService.
func (p *PayrollServiceImpl) Reject(ctx context.Context, payrollID string, req payroll.ReviewPayrollRequest) (payroll.PayrollResponse, error) {
	if req.Comments == nil || *req.Comments == "" {
		reason := noReasonProvided
		req.Comments = &reason
	}
	return p.review(ctx, payrollID, req, payroll.StatusRejected, "reject")
}

func (p *PayrollServiceImpl) review(ctx context.Context, payrollID string, req payroll.ReviewPayrollRequest, to payroll.Status, action string) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	run, err := p.PayrollRepository.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if !run.Status.CanReview() {
		return payroll.PayrollResponse{}, &payroll.InvalidTransitionError{From: run.Status, Action: action}
	}

	from := run.Status
	now := time.Now().UTC()
	run.Status = to
	run.ReviewedBy = &req.ReviewedBy
	run.ReviewedAt = &now
	run.ReviewComments = req.Comments

	saved, err := p.PayrollRepository.TransitionStatus(ctx, run, from)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToPayrollResponse(saved), nil
}

// GetByID implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetByID(ctx context.Context, payrollID string) (payroll.PayrollResponse, error) {
	run, err := p.PayrollRepository.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToPayrollResponse(run), nil
}

// ListByCanteen implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListByCanteen(ctx context.Context, canteenID string) ([]payroll.PayrollResponse, error) {
	runs, err := p.PayrollRepository.ListByCanteen(ctx, canteenID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls by canteen: %w", err)
	}
	return toResponses(runs), nil
}

// ListByStatus implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListByStatus(ctx context.Context, status payroll.Status) ([]payroll.PayrollResponse, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown payroll status %q", status)
	}

	runs, err := p.PayrollRepository.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls by status: %w", err)
	}
	return toResponses(runs), nil
}

// ListPending implements payroll.PayrollService.
func (p *PayrollServiceImpl) ListPending(ctx context.Context) ([]payroll.PayrollResponse, error) {
	submitted, err := p.PayrollRepository.ListByStatus(ctx, payroll.StatusSubmitted)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted payrolls: %w", err)
	}
	underReview, err := p.PayrollRepository.ListByStatus(ctx, payroll.StatusUnderReview)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls under review: %w", err)
	}
	return toResponses(append(submitted, underReview...)), nil
}

// CountPending implements payroll.PayrollService.
func (p *PayrollServiceImpl) CountPending(ctx context.Context) (int64, error) {
	submitted, err := p.PayrollRepository.CountByStatus(ctx, payroll.StatusSubmitted)
	if err != nil {
		return 0, fmt.Errorf("failed to count submitted payrolls: %w", err)
	}
	underReview, err := p.PayrollRepository.CountByStatus(ctx, payroll.StatusUnderReview)
	if err != nil {
		return 0, fmt.Errorf("failed to count payrolls under review: %w", err)
	}
	return submitted + underReview, nil
}

// GetConfig implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetConfig(ctx context.Context) (payroll.ConfigResponse, error) {
	cfg, err := p.getOrCreateConfig(ctx)
	if err != nil {
		return payroll.ConfigResponse{}, err
	}
	return payroll.ToConfigResponse(cfg), nil
}

// UpdateConfig implements payroll.PayrollService.
func (p *PayrollServiceImpl) UpdateConfig(ctx context.Context, req payroll.UpdateConfigRequest) (payroll.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ConfigResponse{}, err
	}

	cfg, err := p.getOrCreateConfig(ctx)
	if err != nil {
		return payroll.ConfigResponse{}, err
	}

	applyConfigPatch(&cfg, req)
	cfg.UpdatedBy = &req.UpdatedBy

	updated, err := p.ConfigRepository.Update(ctx, cfg)
	if err != nil {
		return payroll.ConfigResponse{}, fmt.Errorf("failed to update payroll config: %w", err)
	}
	return payroll.ToConfigResponse(updated), nil
}

// getOrCreateConfig loads the live configuration, materializing the default
// one on first read so generation never runs unconfigured.
func (p *PayrollServiceImpl) getOrCreateConfig(ctx context.Context) (payroll.Config, error) {
	cfg, err := p.ConfigRepository.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, payroll.ErrConfigNotFound) {
		return payroll.Config{}, fmt.Errorf("failed to load payroll config: %w", err)
	}

	cfg = payroll.DefaultConfig()
	cfg.ID = uuid.New().String()
	created, err := p.ConfigRepository.Create(ctx, cfg)
	if err != nil {
		return payroll.Config{}, fmt.Errorf("failed to create default payroll config: %w", err)
	}
	return created, nil
}

func applyConfigPatch(cfg *payroll.Config, req payroll.UpdateConfigRequest) {
	if req.PayPeriodType != nil {
		cfg.PayPeriodType = *req.PayPeriodType
	}
	if req.OvertimeMultiplier != nil {
		cfg.OvertimeMultiplier = *req.OvertimeMultiplier
	}
	if req.EPFEmployeeRate != nil {
		cfg.EPFEmployeeRate = *req.EPFEmployeeRate
	}
	if req.EPFEmployerRate != nil {
		cfg.EPFEmployerRate = *req.EPFEmployerRate
	}
	if req.ETFRate != nil {
		cfg.ETFRate = *req.ETFRate
	}
	if req.StandardWorkHoursPerDay != nil {
		cfg.StandardWorkHoursPerDay = *req.StandardWorkHoursPerDay
	}
	if req.DefaultMealAllowance != nil {
		cfg.DefaultMealAllowance = *req.DefaultMealAllowance
	}
	if req.DefaultTransportAllowance != nil {
		cfg.DefaultTransportAllowance = *req.DefaultTransportAllowance
	}
}

func toResponses(runs []payroll.Payroll) []payroll.PayrollResponse {
	responses := make([]payroll.PayrollResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, payroll.ToPayrollResponse(run))
	}
	return responses
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	configRepo payroll.ConfigRepository,
	staffRepo staff.StaffRepository,
	attendanceRepo attendance.AttendanceRepository,
	canteenRepo canteen.CanteenRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository:    payrollRepo,
		ConfigRepository:     configRepo,
		StaffRepository:      staffRepo,
		AttendanceRepository: attendanceRepo,
		CanteenRepository:    canteenRepo,
	}
}
