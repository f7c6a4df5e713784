package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/campuseats/payroll-backend-go/internal/domain/attendance"
	"github.com/campuseats/payroll-backend-go/internal/domain/canteen"
	"github.com/campuseats/payroll-backend-go/internal/domain/payroll"
	"github.com/campuseats/payroll-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// in-memory fakes
// ========================================

type fakePayrollRepo struct {
	payrolls map[string]payroll.Payroll
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{payrolls: map[string]payroll.Payroll{}}
}

func (f *fakePayrollRepo) Create(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	for _, existing := range f.payrolls {
		if existing.CanteenID == p.CanteenID &&
			existing.PeriodStart.Equal(p.PeriodStart) &&
			existing.PeriodEnd.Equal(p.PeriodEnd) &&
			existing.Status != payroll.StatusRejected {
			return payroll.Payroll{}, &payroll.DuplicatePeriodError{Status: existing.Status}
		}
	}
	f.payrolls[p.ID] = p
	return p, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Payroll, error) {
	p, ok := f.payrolls[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (f *fakePayrollRepo) GetByPeriod(_ context.Context, canteenID string, start, end time.Time) (payroll.Payroll, error) {
	for _, p := range f.payrolls {
		if p.CanteenID == canteenID && p.PeriodStart.Equal(start) && p.PeriodEnd.Equal(end) {
			return p, nil
		}
	}
	return payroll.Payroll{}, payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) Replace(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	if _, ok := f.payrolls[p.ID]; !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	f.payrolls[p.ID] = p
	return p, nil
}

func (f *fakePayrollRepo) TransitionStatus(_ context.Context, p payroll.Payroll, from payroll.Status) (payroll.Payroll, error) {
	stored, ok := f.payrolls[p.ID]
	if !ok || stored.Status != from {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	f.payrolls[p.ID] = p
	return p, nil
}

func (f *fakePayrollRepo) ListByCanteen(_ context.Context, canteenID string) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, p := range f.payrolls {
		if p.CanteenID == canteenID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) ListByStatus(_ context.Context, status payroll.Status) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, p := range f.payrolls {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) CountByStatus(_ context.Context, status payroll.Status) (int64, error) {
	var n int64
	for _, p := range f.payrolls {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeConfigRepo struct {
	cfg *payroll.Config
}

func (f *fakeConfigRepo) Get(_ context.Context) (payroll.Config, error) {
	if f.cfg == nil {
		return payroll.Config{}, payroll.ErrConfigNotFound
	}
	return *f.cfg, nil
}

func (f *fakeConfigRepo) Create(_ context.Context, c payroll.Config) (payroll.Config, error) {
	f.cfg = &c
	return c, nil
}

func (f *fakeConfigRepo) Update(_ context.Context, c payroll.Config) (payroll.Config, error) {
	f.cfg = &c
	return c, nil
}

type fakeStaffRepo struct {
	staff map[string]staff.Staff
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id string) (staff.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

func (f *fakeStaffRepo) ListActiveByCanteen(_ context.Context, canteenID string) ([]staff.Staff, error) {
	var out []staff.Staff
	for _, s := range f.staff {
		if s.CanteenID == canteenID && s.Status == staff.StatusActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) FindByStaffAndDateRange(_ context.Context, staffID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.StaffID == staffID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) FindByCanteenAndDateRange(_ context.Context, canteenID string, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) FindByCanteenAndDate(_ context.Context, canteenID string, date time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

type fakeCanteenRepo struct {
	names map[string]string
}

func (f *fakeCanteenRepo) GetName(_ context.Context, id string) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", canteen.ErrCanteenNotFound
	}
	return name, nil
}

// ========================================
// fixtures
// ========================================

type fixture struct {
	svc         payroll.PayrollService
	payrollRepo *fakePayrollRepo
	configRepo  *fakeConfigRepo
	staffRepo   *fakeStaffRepo
	attRepo     *fakeAttendanceRepo
}

func newFixture() *fixture {
	cfg := payroll.DefaultConfig()
	cfg.ID = "cfg-1"
	cfg.DefaultMealAllowance = dec("100")

	f := &fixture{
		payrollRepo: newFakePayrollRepo(),
		configRepo:  &fakeConfigRepo{cfg: &cfg},
		staffRepo:   &fakeStaffRepo{staff: map[string]staff.Staff{}},
		attRepo:     &fakeAttendanceRepo{},
	}
	f.svc = NewPayrollService(f.payrollRepo, f.configRepo, f.staffRepo, f.attRepo, &fakeCanteenRepo{
		names: map[string]string{"canteen-1": "Engineering Faculty Canteen"},
	})
	return f
}

func (f *fixture) addHourlyStaff(id, name, rate string) {
	r := dec(rate)
	f.staffRepo.staff[id] = staff.Staff{
		ID: id, CanteenID: "canteen-1", Name: name,
		PayType: staff.PayTypeHourly, PayRate: &r, Status: staff.StatusActive,
	}
}

func (f *fixture) addPresence(staffID string, days int, hoursPerDay string) {
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		f.attRepo.records = append(f.attRepo.records, attendance.Attendance{
			StaffID:       staffID,
			CanteenID:     "canteen-1",
			Date:          base.AddDate(0, 0, i),
			DayType:       attendance.DayTypePresent,
			HoursWorked:   dec(hoursPerDay),
			OvertimeHours: decimal.Zero,
		})
	}
}

func generateReq() payroll.GeneratePayrollRequest {
	return payroll.GeneratePayrollRequest{
		CanteenID:   "canteen-1",
		PeriodStart: "2024-03-04",
		PeriodEnd:   "2024-03-10",
	}
}

// ========================================
// generation
// ========================================

func TestGenerate_SingleStaffScenario(t *testing.T) {
	f := newFixture()
	f.addHourlyStaff("staff-1", "Kasun", "500")
	f.addPresence("staff-1", 5, "8")

	resp, err := f.svc.Generate(context.Background(), generateReq())

	require.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, resp.Status)
	assert.Equal(t, "Engineering Faculty Canteen", resp.CanteenName)
	assert.Equal(t, 1, resp.StaffCount)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assertDec(t, "20000", item.BasicPay, "basic pay")
	assertDec(t, "500", item.MealAllowance, "meal allowance")
	assertDec(t, "20500", item.GrossPay, "gross pay")
	assertDec(t, "1640", item.EPFEmployee, "employee epf")
	assertDec(t, "18860", item.NetPay, "net pay")

	assertDec(t, "20500", resp.TotalGrossPay, "total gross")
	assertDec(t, "18860", resp.TotalNetPay, "total net")
}

func TestGenerate_TotalsSumRoundedItems(t *testing.T) {
	f := newFixture()
	f.addHourlyStaff("staff-1", "Amal", "333.33")
	f.addHourlyStaff("staff-2", "Bimal", "333.33")
	f.addPresence("staff-1", 1, "7.5")
	f.addPresence("staff-2", 1, "7.5")

	resp, err := f.svc.Generate(context.Background(), generateReq())

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	// Each item rounds 2499.975 to 2499.98 on its own, plus the 100 meal
	// allowance; the total is the sum of rounded values, not a re-rounding
	// of the raw sum.
	assertDec(t, "5199.96", resp.TotalGrossPay, "total gross")
}

func TestGenerate_ItemsOrderedByStaffName(t *testing.T) {
	f := newFixture()
	f.addHourlyStaff("staff-2", "Zahra", "500")
	f.addHourlyStaff("staff-1", "Amal", "500")
	f.addPresence("staff-1", 1, "8")
	f.addPresence("staff-2", 1, "8")

	resp, err := f.svc.Generate(context.Background(), generateReq())

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Amal", resp.Items[0].StaffName)
	assert.Equal(t, "Zahra", resp.Items[1].StaffName)
}

func TestGenerate_NoActiveStaff(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Generate(context.Background(), generateReq())

	assert.ErrorIs(t, err, payroll.ErrNoActiveStaff)
	assert.Empty(t, f.payrollRepo.payrolls, "a failed generation must not persist anything")
}

func TestGenerate_UnknownCanteen(t *testing.T) {
	f := newFixture()
	req := generateReq()
	req.CanteenID = "canteen-404"

	_, err := f.svc.Generate(context.Background(), req)

	assert.ErrorIs(t, err, canteen.ErrCanteenNotFound)
}

func TestGenerate_DuplicatePeriod(t *testing.T) {
	f := newFixture()
	f.addHourlyStaff("staff-1", "Kasun", "500")
	f.addPresence("staff-1", 5, "8")
	ctx := context.Background()

	first, err := f.svc.Generate(ctx, generateReq())
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, generateReq())
	var dup *payroll.DuplicatePeriodError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, payroll.StatusDraft, dup.Status)
	assert.Contains(t, err.Error(), "DRAFT")

	// Approved payrolls block the period too.
	_, err = f.svc.Submit(ctx, first.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, first.ID, payroll.ReviewPayrollRequest{ReviewedBy: "admin-1"})
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, generateReq())
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, payroll.StatusApproved, dup.Status)
}

func TestGenerate_RegenerationOverRejected(t *testing.T) {
	f := newFixture()
	f.addHourlyStaff("staff-1", "Kasun", "500")
	f.addPresence("staff-1", 5, "8")
	ctx := context.Background()

	first, err := f.svc.Generate(ctx, generateReq())
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, first.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, first.ID, payroll.ReviewPayrollRequest{ReviewedBy: "admin-1", Comments: strPtr("hours look wrong")})
	require.NoError(t, err)

	regen, err := f.svc.Generate(ctx, generateReq())

	require.NoError(t, err)
	assert.Equal(t, first.ID, regen.ID, "regeneration reuses the rejected payroll's identity")
	assert.Equal(t, payroll.StatusDraft, regen.Status)
	assert.Nil(t, regen.ReviewedBy, "review trail is cleared")
	assert.Nil(t, regen.ReviewComments)
	assert.Len(t, f.payrollRepo.payrolls, 1, "no second row for the period")
}

func TestGenerate_RegenerationIsIdempotent(t *testing.T) {
	f := newFixture()
	f.addHourlyStaff("staff-1", "Kasun", "500")
	f.addPresence("staff-1", 5, "8")
	ctx := context.Background()

	first, err := f.svc.Generate(ctx, generateReq())
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, first.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, first.ID, payroll.ReviewPayrollRequest{ReviewedBy: "admin-1"})
	require.NoError(t, err)

	regen1, err := f.svc.Generate(ctx, generateReq())
	require.NoError(t, err)

	// Rejecting and regenerating again with unchanged attendance produces
	// the same identity and the same numbers.
	_, err = f.svc.Submit(ctx, regen1.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, regen1.ID, payroll.ReviewPayrollRequest{ReviewedBy: "admin-1"})
	require.NoError(t, err)

	regen2, err := f.svc.Generate(ctx, generateReq())
	require.NoError(t, err)

	assert.Equal(t, regen1.ID, regen2.ID)
	assert.Equal(t, regen1.Items, regen2.Items)
	assert.True(t, regen1.TotalNetPay.Equal(regen2.TotalNetPay))
}

func TestGenerate_ExternalAdjustmentsFlowThrough(t *testing.T) {
	f := newFixture()
	f.addHourlyStaff("staff-1", "Kasun", "500")
	f.addPresence("staff-1", 5, "8")

	req := generateReq()
	req.Adjustments = []payroll.StaffAdjustment{
		{StaffID: "staff-1", AdvanceDeductions: dec("1000")},
	}

	resp, err := f.svc.Generate(context.Background(), req)

	require.NoError(t, err)
	item := resp.Items[0]
	assertDec(t, "1000", item.AdvanceDeductions, "advance deductions")
	assertDec(t, "2640", item.TotalDeductions, "total deductions")
	assertDec(t, "17860", item.NetPay, "net pay")
}

func TestGenerate_InvalidPayRateFailsWholeRun(t *testing.T) {
	f := newFixture()
	f.addHourlyStaff("staff-1", "Kasun", "500")
	f.staffRepo.staff["staff-2"] = staff.Staff{
		ID: "staff-2", CanteenID: "canteen-1", Name: "Nimal",
		PayType: staff.PayTypeHourly, Status: staff.StatusActive,
	}
	f.addPresence("staff-1", 5, "8")

	_, err := f.svc.Generate(context.Background(), generateReq())

	assert.ErrorIs(t, err, payroll.ErrInvalidPayTerms)
	assert.Empty(t, f.payrollRepo.payrolls)
}

// ========================================
// workflow transitions
// ========================================

func (f *fixture) generateDraft(t *testing.T) payroll.PayrollResponse {
	t.Helper()
	f.addHourlyStaff("staff-1", "Kasun", "500")
	f.addPresence("staff-1", 5, "8")
	resp, err := f.svc.Generate(context.Background(), generateReq())
	require.NoError(t, err)
	return resp
}

func TestSubmit_FromDraft(t *testing.T) {
	f := newFixture()
	draft := f.generateDraft(t)

	resp, err := f.svc.Submit(context.Background(), draft.ID, payroll.SubmitPayrollRequest{
		SubmittedBy: "manager-1",
		Notes:       strPtr("week 10 run"),
	})

	require.NoError(t, err)
	assert.Equal(t, payroll.StatusSubmitted, resp.Status)
	require.NotNil(t, resp.SubmittedBy)
	assert.Equal(t, "manager-1", *resp.SubmittedBy)
	assert.NotNil(t, resp.SubmittedAt)
}

func TestSubmit_NonDraftRejected(t *testing.T) {
	f := newFixture()
	draft := f.generateDraft(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, draft.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, draft.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})

	var invalid *payroll.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, payroll.StatusSubmitted, invalid.From)
}

func TestApprove_FromSubmitted(t *testing.T) {
	f := newFixture()
	draft := f.generateDraft(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, draft.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})
	require.NoError(t, err)

	resp, err := f.svc.Approve(ctx, draft.ID, payroll.ReviewPayrollRequest{
		ReviewedBy: "admin-1",
		Comments:   strPtr("checked against attendance sheets"),
	})

	require.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "admin-1", *resp.ReviewedBy)
}

func TestApprove_DraftFails(t *testing.T) {
	f := newFixture()
	draft := f.generateDraft(t)

	_, err := f.svc.Approve(context.Background(), draft.ID, payroll.ReviewPayrollRequest{ReviewedBy: "admin-1"})

	var invalid *payroll.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, payroll.StatusDraft, invalid.From)
}

func TestReject_DefaultsComments(t *testing.T) {
	f := newFixture()
	draft := f.generateDraft(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, draft.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})
	require.NoError(t, err)

	resp, err := f.svc.Reject(ctx, draft.ID, payroll.ReviewPayrollRequest{ReviewedBy: "admin-1"})

	require.NoError(t, err)
	assert.Equal(t, payroll.StatusRejected, resp.Status)
	require.NotNil(t, resp.ReviewComments)
	assert.Equal(t, "No reason provided", *resp.ReviewComments)
}

func TestWorkflow_UnknownPayroll(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), "missing", payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})

	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

// ========================================
// queries and config
// ========================================

func TestCountPending(t *testing.T) {
	f := newFixture()
	draft := f.generateDraft(t)
	ctx := context.Background()

	n, err := f.svc.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = f.svc.Submit(ctx, draft.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})
	require.NoError(t, err)

	n, err = f.svc.CountPending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestListPending_IncludesSubmittedAndUnderReview(t *testing.T) {
	f := newFixture()
	draft := f.generateDraft(t)
	ctx := context.Background()

	pending, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = f.svc.Submit(ctx, draft.ID, payroll.SubmitPayrollRequest{SubmittedBy: "manager-1"})
	require.NoError(t, err)

	pending, err = f.svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, draft.ID, pending[0].ID)
}

func TestGetConfig_MaterializesDefault(t *testing.T) {
	f := newFixture()
	f.configRepo.cfg = nil

	cfg, err := f.svc.GetConfig(context.Background())

	require.NoError(t, err)
	assert.Equal(t, payroll.PayPeriodMonthly, cfg.PayPeriodType)
	assertDec(t, "1.5", cfg.OvertimeMultiplier, "overtime multiplier")
	assertDec(t, "8", cfg.EPFEmployeeRate, "employee epf rate")
	assertDec(t, "12", cfg.EPFEmployerRate, "employer epf rate")
	assertDec(t, "3", cfg.ETFRate, "etf rate")
	assert.Equal(t, 8, cfg.StandardWorkHoursPerDay)
	require.NotNil(t, f.configRepo.cfg, "default config is persisted on first read")
}

func TestUpdateConfig_PatchesOnlyProvidedFields(t *testing.T) {
	f := newFixture()
	rate := dec("10")

	cfg, err := f.svc.UpdateConfig(context.Background(), payroll.UpdateConfigRequest{
		EPFEmployeeRate: &rate,
		UpdatedBy:       "admin-1",
	})

	require.NoError(t, err)
	assertDec(t, "10", cfg.EPFEmployeeRate, "employee epf rate")
	assertDec(t, "1.5", cfg.OvertimeMultiplier, "overtime multiplier untouched")
	require.NotNil(t, cfg.UpdatedBy)
	assert.Equal(t, "admin-1", *cfg.UpdatedBy)
}

func TestUpdateConfig_RejectsOutOfRangeRate(t *testing.T) {
	f := newFixture()
	rate := dec("120")

	_, err := f.svc.UpdateConfig(context.Background(), payroll.UpdateConfigRequest{
		EPFEmployeeRate: &rate,
		UpdatedBy:       "admin-1",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "epf_employee_rate")
}

func strPtr(s string) *string { return &s }
