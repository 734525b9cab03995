package deduction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staffsync/attendance-backend-go/internal/domain/deduction"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/sync"
)

type service struct {
	deductions deduction.Repository
	employees  employee.Repository
	outbox     sync.Outbox
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(deductions deduction.Repository, employees employee.Repository, outbox sync.Outbox, logger *slog.Logger) deduction.Service {
	return &service{
		deductions: deductions,
		employees:  employees,
		outbox:     outbox,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *service) Create(ctx context.Context, req deduction.CreateDeductionRequest) (deduction.Deduction, error) {
	if err := req.Validate(); err != nil {
		return deduction.Deduction{}, err
	}
	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return deduction.Deduction{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	d := deduction.Deduction{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		RecordedAt:  s.now(),
	}
	if err := s.deductions.Create(ctx, d); err != nil {
		return deduction.Deduction{}, err
	}
	s.outbox.Enqueue(sync.Operation{Kind: sync.KindDeductionAdd, Payload: sync.DeductionRecord(d)})
	s.logger.Info("deduction recorded",
		slog.String("employee_id", d.EmployeeID),
		slog.String("amount", d.Amount.String()))
	return d, nil
}

func (s *service) Update(ctx context.Context, req deduction.UpdateDeductionRequest) (deduction.Deduction, error) {
	if err := req.Validate(); err != nil {
		return deduction.Deduction{}, err
	}
	d, err := s.deductions.GetByID(ctx, req.ID)
	if err != nil {
		return deduction.Deduction{}, err
	}

	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Amount != nil {
		d.Amount = *req.Amount
	}
	if req.Date != nil {
		d.Date, _ = time.Parse("2006-01-02", *req.Date)
	}

	if err := s.deductions.Update(ctx, d); err != nil {
		return deduction.Deduction{}, err
	}
	s.outbox.Enqueue(sync.Operation{
		Kind:    sync.KindDeductionUpdate,
		Payload: sync.DeductionRecord(d),
		Filter:  map[string]interface{}{"id": d.ID},
	})
	return d, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.deductions.Delete(ctx, id); err != nil {
		return err
	}
	s.outbox.Enqueue(sync.Operation{
		Kind:   sync.KindDeductionDelete,
		Filter: map[string]interface{}{"id": id},
	})
	return nil
}

func (s *service) List(ctx context.Context, filter deduction.Filter) ([]deduction.Deduction, error) {
	return s.deductions.List(ctx, filter)
}
