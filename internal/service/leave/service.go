package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/sync"
)

type service struct {
	leaves    leave.Repository
	employees employee.Repository
	outbox    sync.Outbox
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(leaves leave.Repository, employees employee.Repository, outbox sync.Outbox, logger *slog.Logger) leave.Service {
	return &service{
		leaves:    leaves,
		employees: employees,
		outbox:    outbox,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.Record, error) {
	if err := req.Validate(); err != nil {
		return leave.Record{}, err
	}
	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.Record{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	now := s.now()
	record := leave.Record{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Type:       leave.Type(req.Type),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.leaves.Create(ctx, record); err != nil {
		return leave.Record{}, err
	}
	s.outbox.Enqueue(sync.Operation{Kind: sync.KindLeaveAdd, Payload: sync.LeaveRecord(record)})
	s.logger.Info("leave recorded",
		slog.String("employee_id", record.EmployeeID),
		slog.String("type", string(record.Type)),
		slog.Int("days", record.Days()))
	return record, nil
}

func (s *service) Update(ctx context.Context, req leave.UpdateLeaveRequest) (leave.Record, error) {
	if err := req.Validate(); err != nil {
		return leave.Record{}, err
	}
	record, err := s.leaves.GetByID(ctx, req.ID)
	if err != nil {
		return leave.Record{}, err
	}

	if req.Type != nil {
		record.Type = leave.Type(*req.Type)
	}
	if req.StartDate != nil {
		record.StartDate, _ = time.Parse("2006-01-02", *req.StartDate)
	}
	if req.EndDate != nil {
		record.EndDate, _ = time.Parse("2006-01-02", *req.EndDate)
	}
	if req.Reason != nil {
		record.Reason = req.Reason
	}
	if record.EndDate.Before(record.StartDate) {
		return leave.Record{}, leave.ErrInvalidRange
	}
	record.UpdatedAt = s.now()

	if err := s.leaves.Update(ctx, record); err != nil {
		return leave.Record{}, err
	}
	s.outbox.Enqueue(sync.Operation{
		Kind:    sync.KindLeaveUpdate,
		Payload: sync.LeaveRecord(record),
		Filter:  map[string]interface{}{"id": record.ID},
	})
	return record, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.leaves.Delete(ctx, id); err != nil {
		return err
	}
	s.outbox.Enqueue(sync.Operation{
		Kind:   sync.KindLeaveDelete,
		Filter: map[string]interface{}{"id": id},
	})
	return nil
}

func (s *service) Get(ctx context.Context, id string) (leave.Record, error) {
	return s.leaves.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter leave.Filter) ([]leave.Record, error) {
	return s.leaves.List(ctx, filter)
}
