package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/deduction"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/payroll"
)

var (
	hoursPerDay = decimal.NewFromInt(8)
	minutesHour = decimal.NewFromInt(60)
	hundred     = decimal.NewFromInt(100)

	bonusHighThreshold = decimal.NewFromInt(95)
	bonusLowThreshold  = decimal.NewFromInt(90)
	bonusHighRate      = decimal.NewFromFloat(0.10)
	bonusLowRate       = decimal.NewFromFloat(0.05)
)

type service struct {
	employees  employee.Repository
	records    attendance.Repository
	leaves     leave.Repository
	deductions deduction.Repository
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(
	employees employee.Repository,
	records attendance.Repository,
	leaves leave.Repository,
	deductions deduction.Repository,
	logger *slog.Logger,
) payroll.Service {
	return &service{
		employees:  employees,
		records:    records,
		leaves:     leaves,
		deductions: deductions,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *service) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.Breakdown, error) {
	if err := req.Validate(); err != nil {
		return payroll.Breakdown{}, err
	}
	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.Breakdown{}, err
	}
	return s.calculate(ctx, emp, req.Year, time.Month(req.Month), req.Emergency, req.IncludeBonus)
}

func (s *service) CalculateAll(ctx context.Context, req payroll.CalculateAllRequest) (payroll.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkResult{}, err
	}
	active, err := s.employees.ListActive(ctx)
	if err != nil {
		return payroll.BulkResult{}, fmt.Errorf("list active employees: %w", err)
	}

	result := payroll.BulkResult{
		Year:            req.Year,
		Month:           time.Month(req.Month),
		TotalSalary:     decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
		TotalBonus:      decimal.Zero,
	}
	for _, emp := range active {
		breakdown, err := s.calculate(ctx, emp, req.Year, time.Month(req.Month), req.Emergency, req.IncludeBonus)
		if err != nil {
			if result.Skipped == nil {
				result.Skipped = make(map[string]string)
			}
			result.Skipped[emp.ID] = err.Error()
			continue
		}
		result.Breakdowns = append(result.Breakdowns, breakdown)
		result.TotalSalary = result.TotalSalary.Add(breakdown.BaseSalary)
		result.TotalDeductions = result.TotalDeductions.Add(breakdown.TotalDeductions)
		result.TotalNet = result.TotalNet.Add(breakdown.NetSalary)
		result.TotalBonus = result.TotalBonus.Add(breakdown.Bonus)
	}
	s.logger.Info("bulk payroll calculated",
		slog.Int("year", req.Year),
		slog.Int("month", req.Month),
		slog.Int("employees", len(result.Breakdowns)),
		slog.Int("skipped", len(result.Skipped)))
	return result, nil
}

// calculate walks every calendar date of the month and applies the
// precedence leave > recorded attendance > default absent, then derives
// the salary breakdown from the day counts.
func (s *service) calculate(ctx context.Context, emp employee.Employee, year int, month time.Month, emergency, includeBonus bool) (payroll.Breakdown, error) {
	if !emergency && s.now().Day() != emp.PaymentDay {
		return payroll.Breakdown{}, payroll.ErrNotPaymentDay
	}
	if emp.WorkingDays <= 0 {
		return payroll.Breakdown{}, payroll.ErrZeroContractDays
	}

	records, err := s.records.ListByEmployeeMonth(ctx, emp.ID, year, month)
	if err != nil {
		return payroll.Breakdown{}, fmt.Errorf("list attendance: %w", err)
	}
	byDate := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byDate[rec.Date.Format("2006-01-02")] = rec
	}

	breakdown := payroll.Breakdown{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Year:         year,
		Month:        month,
		BaseSalary:   emp.Salary,
		CalculatedAt: s.now(),
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if _, onLeave, err := s.leaves.OnLeave(ctx, emp.ID, d); err != nil {
			return payroll.Breakdown{}, fmt.Errorf("check leave: %w", err)
		} else if onLeave {
			breakdown.LeaveDays++
			continue
		}
		rec, found := byDate[d.Format("2006-01-02")]
		if !found || rec.Status == attendance.StatusAbsent {
			breakdown.AbsentDays++
			continue
		}
		breakdown.WorkingDays++
		if rec.Status == attendance.StatusLate {
			breakdown.LateMinutes += rec.MinutesLate
		}
	}

	contractDays := decimal.NewFromInt(int64(emp.WorkingDays))
	breakdown.DailySalary = emp.Salary.Div(contractDays)

	hourlyRate := breakdown.DailySalary.Div(hoursPerDay)
	breakdown.LateDeduction = decimal.NewFromInt(int64(breakdown.LateMinutes)).Div(minutesHour).Mul(hourlyRate)
	breakdown.AbsentDeduction = breakdown.DailySalary.Mul(decimal.NewFromInt(int64(breakdown.AbsentDays)))

	deductions, err := s.deductions.List(ctx, deduction.Filter{EmployeeID: emp.ID})
	if err != nil {
		return payroll.Breakdown{}, fmt.Errorf("list deductions: %w", err)
	}
	breakdown.OtherDeductions = decimal.Zero
	for _, d := range deductions {
		breakdown.OtherDeductions = breakdown.OtherDeductions.Add(d.Amount)
	}
	breakdown.TotalDeductions = breakdown.LateDeduction.Add(breakdown.AbsentDeduction).Add(breakdown.OtherDeductions)

	breakdown.AttendancePercent = decimal.NewFromInt(int64(breakdown.WorkingDays)).Div(contractDays).Mul(hundred)
	breakdown.Bonus = decimal.Zero
	if includeBonus {
		switch {
		case breakdown.AttendancePercent.GreaterThanOrEqual(bonusHighThreshold):
			breakdown.Bonus = emp.Salary.Mul(bonusHighRate)
		case breakdown.AttendancePercent.GreaterThanOrEqual(bonusLowThreshold):
			breakdown.Bonus = emp.Salary.Mul(bonusLowRate)
		}
	}

	breakdown.NetSalary = emp.Salary.Sub(breakdown.TotalDeductions).Add(breakdown.Bonus)
	breakdown.Status = payroll.StatusPaid
	if breakdown.NetSalary.IsPositive() {
		breakdown.Status = payroll.StatusPending
	}
	return breakdown, nil
}
