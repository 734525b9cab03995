package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/sync"
)

type service struct {
	employees employee.Repository
	outbox    sync.Outbox
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(employees employee.Repository, outbox sync.Outbox, logger *slog.Logger) employee.Service {
	return &service{
		employees: employees,
		outbox:    outbox,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) Register(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	now := s.now()
	emp := employee.Employee{
		ID:          req.ID,
		Name:        req.Name,
		Shift:       employee.Shift(req.Shift),
		WorkingDays: req.WorkingDays,
		Salary:      req.Salary,
		PaymentDay:  req.PaymentDay,
		Department:  req.Department,
		Status:      employee.StatusActive,
		Phone:       req.Phone,
		Email:       req.Email,
		PhotoURL:    req.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return employee.Employee{}, err
	}
	s.outbox.Enqueue(sync.Operation{Kind: sync.KindEmployeeAdd, Payload: sync.EmployeeRecord(emp)})
	s.logger.Info("employee registered", slog.String("employee_id", emp.ID))
	return emp, nil
}

func (s *service) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	emp, err := s.employees.GetByID(ctx, req.ID)
	if err != nil {
		return employee.Employee{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Shift != nil {
		emp.Shift = employee.Shift(*req.Shift)
	}
	if req.WorkingDays != nil {
		emp.WorkingDays = *req.WorkingDays
	}
	if req.Salary != nil {
		emp.Salary = *req.Salary
	}
	if req.PaymentDay != nil {
		emp.PaymentDay = *req.PaymentDay
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.PhotoURL != nil {
		emp.PhotoURL = req.PhotoURL
	}
	emp.UpdatedAt = s.now()

	if err := s.employees.Update(ctx, emp); err != nil {
		return employee.Employee{}, err
	}
	s.outbox.Enqueue(sync.Operation{Kind: sync.KindEmployeeUpdate, Payload: sync.EmployeeRecord(emp)})
	return emp, nil
}

// Deactivate soft-deletes: history stays, the employee just stops
// appearing in active listings and payroll runs.
func (s *service) Deactivate(ctx context.Context, req employee.DeactivateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	emp, err := s.employees.GetByID(ctx, req.ID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive() {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}

	now := s.now()
	emp.Status = employee.StatusInactive
	emp.DeactivationReason = &req.Reason
	emp.DeactivationNotes = req.Notes
	emp.DeactivatedAt = &now
	emp.UpdatedAt = now

	if err := s.employees.Update(ctx, emp); err != nil {
		return employee.Employee{}, err
	}
	s.outbox.Enqueue(sync.Operation{Kind: sync.KindEmployeeUpdate, Payload: sync.EmployeeRecord(emp)})
	s.logger.Info("employee deactivated",
		slog.String("employee_id", emp.ID),
		slog.String("reason", req.Reason))
	return emp, nil
}

// Rename changes the employee's identifier. Local history is rekeyed in one
// step; remotely this is a delete of the old row plus inserts under the new
// ID, pushed through the queue in order.
func (s *service) Rename(ctx context.Context, req employee.RenameEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	if err := s.employees.Rename(ctx, req.ID, req.NewID); err != nil {
		return employee.Employee{}, err
	}
	emp, err := s.employees.GetByID(ctx, req.NewID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("load renamed employee: %w", err)
	}

	s.outbox.Enqueue(sync.Operation{
		Kind:   sync.KindEmployeeDelete,
		Filter: map[string]interface{}{"id": req.ID},
	})
	s.outbox.Enqueue(sync.Operation{Kind: sync.KindEmployeeAdd, Payload: sync.EmployeeRecord(emp)})
	s.outbox.Enqueue(sync.Operation{Kind: sync.KindFullSync})
	return emp, nil
}

func (s *service) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	return s.employees.List(ctx, filter)
}
