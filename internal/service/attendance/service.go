package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/sync"
)

type service struct {
	records   attendance.Repository
	employees employee.Repository
	leaves    leave.Repository
	outbox    sync.Outbox
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(records attendance.Repository, employees employee.Repository, leaves leave.Repository, outbox sync.Outbox, logger *slog.Logger) attendance.Service {
	return &service{
		records:   records,
		employees: employees,
		leaves:    leaves,
		outbox:    outbox,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Record{}, err
	}
	if !emp.IsActive() {
		return attendance.Record{}, employee.ErrEmployeeInactive
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	status, minutesLate, err := Classify(date, req.ArrivalTime, emp.Shift)
	if err != nil {
		return attendance.Record{}, err
	}

	now := s.now()
	record := attendance.Record{
		EmployeeID:  emp.ID,
		Date:        date,
		ArrivalTime: &req.ArrivalTime,
		ShiftType:   emp.Shift,
		Status:      status,
		MinutesLate: minutesLate,
		RecordedAt:  now,
		UpdatedAt:   now,
	}
	// Keep the original arrival if the employee already clocked in today.
	if existing, err := s.records.GetByEmployeeAndDate(ctx, emp.ID, date); err == nil && existing.ArrivalTime != nil {
		record = existing
		record.UpdatedAt = now
	}

	if err := s.records.Upsert(ctx, record); err != nil {
		return attendance.Record{}, fmt.Errorf("clock in: %w", err)
	}
	s.enqueueUpsert(record)
	s.logger.Info("clock in recorded",
		slog.String("employee_id", emp.ID),
		slog.String("date", req.Date),
		slog.String("status", string(record.Status)))
	return record, nil
}

func (s *service) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	record, err := s.records.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.Record{}, err
	}
	if record.ArrivalTime == nil {
		return attendance.Record{}, attendance.ErrNotClockedIn
	}

	overstay, err := Overstay(date, req.DepartureTime, record.ShiftType, req.ApprovedOvertimeMinutes)
	if err != nil {
		return attendance.Record{}, err
	}

	record.DepartureTime = &req.DepartureTime
	record.OverstayMinutes = overstay
	record.UpdatedAt = s.now()

	if err := s.records.Upsert(ctx, record); err != nil {
		return attendance.Record{}, fmt.Errorf("clock out: %w", err)
	}
	s.enqueueUpsert(record)
	return record, nil
}

func (s *service) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	now := s.now()
	record := attendance.Record{
		EmployeeID: emp.ID,
		Date:       date,
		ShiftType:  emp.Shift,
		Status:     attendance.StatusAbsent,
		RecordedAt: now,
		UpdatedAt:  now,
	}
	if err := s.records.Upsert(ctx, record); err != nil {
		return attendance.Record{}, fmt.Errorf("mark absent: %w", err)
	}
	s.enqueueUpsert(record)
	return record, nil
}

func (s *service) Update(ctx context.Context, req attendance.UpdateRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	existing, err := s.records.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.Record{}, err
	}

	record := attendance.Record{
		EmployeeID: emp.ID,
		Date:       date,
		ShiftType:  emp.Shift,
		Status:     attendance.StatusAbsent,
		RecordedAt: existing.RecordedAt,
		UpdatedAt:  s.now(),
	}
	if !req.Absent {
		status, minutesLate, err := Classify(date, *req.ArrivalTime, emp.Shift)
		if err != nil {
			return attendance.Record{}, err
		}
		record.ArrivalTime = req.ArrivalTime
		record.Status = status
		record.MinutesLate = minutesLate
		if req.DepartureTime != nil {
			overstay, err := Overstay(date, *req.DepartureTime, emp.Shift, req.ApprovedOvertimeMinutes)
			if err != nil {
				return attendance.Record{}, err
			}
			record.DepartureTime = req.DepartureTime
			record.OverstayMinutes = overstay
		}
	}

	if err := s.records.Upsert(ctx, record); err != nil {
		return attendance.Record{}, fmt.Errorf("update attendance: %w", err)
	}
	s.enqueueUpsert(record)
	return record, nil
}

func (s *service) Import(ctx context.Context, req attendance.ImportRequest) ([]attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records := make([]attendance.Record, 0, len(req.Entries))
	now := s.now()
	for _, entry := range req.Entries {
		emp, err := s.employees.GetByID(ctx, entry.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("import entry for %s: %w", entry.EmployeeID, err)
		}
		date, _ := time.Parse("2006-01-02", entry.Date)

		record := attendance.Record{
			EmployeeID: emp.ID,
			Date:       date,
			ShiftType:  emp.Shift,
			Status:     attendance.StatusAbsent,
			RecordedAt: now,
			UpdatedAt:  now,
		}
		if !entry.Absent {
			status, minutesLate, err := Classify(date, *entry.ArrivalTime, emp.Shift)
			if err != nil {
				return nil, fmt.Errorf("import entry for %s on %s: %w", emp.ID, entry.Date, err)
			}
			record.ArrivalTime = entry.ArrivalTime
			record.Status = status
			record.MinutesLate = minutesLate
			if entry.DepartureTime != nil {
				overstay, err := Overstay(date, *entry.DepartureTime, emp.Shift, 0)
				if err != nil {
					return nil, fmt.Errorf("import entry for %s on %s: %w", emp.ID, entry.Date, err)
				}
				record.DepartureTime = entry.DepartureTime
				record.OverstayMinutes = overstay
			}
		}

		if err := s.records.Upsert(ctx, record); err != nil {
			return nil, fmt.Errorf("import upsert: %w", err)
		}
		s.enqueueUpsert(record)
		records = append(records, record)
	}
	s.logger.Info("attendance import completed", slog.Int("records", len(records)))
	return records, nil
}

func (s *service) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	return s.records.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, employeeID string, dateStr string) error {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return attendance.ErrInvalidTime
	}
	if err := s.records.Delete(ctx, employeeID, date); err != nil {
		return err
	}
	s.outbox.Enqueue(sync.Operation{
		Kind:   sync.KindAttendanceDelete,
		Filter: map[string]interface{}{"employee_id": employeeID, "date": dateStr},
	})
	return nil
}

func (s *service) AutoMarkAbsent(ctx context.Context) error {
	now := s.now()
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	active, err := s.employees.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("auto mark absent: %w", err)
	}

	marked := 0
	for _, emp := range active {
		if _, err := s.records.GetByEmployeeAndDate(ctx, emp.ID, yesterday); err == nil {
			continue
		}
		_, onLeave, err := s.leaves.OnLeave(ctx, emp.ID, yesterday)
		if err != nil {
			return fmt.Errorf("auto mark absent: %w", err)
		}
		if onLeave {
			continue
		}

		record := attendance.Record{
			EmployeeID: emp.ID,
			Date:       yesterday,
			ShiftType:  emp.Shift,
			Status:     attendance.StatusAbsent,
			RecordedAt: now,
			UpdatedAt:  now,
		}
		if err := s.records.Upsert(ctx, record); err != nil {
			return fmt.Errorf("auto mark absent: %w", err)
		}
		s.enqueueUpsert(record)
		marked++
	}
	if marked > 0 {
		s.logger.Info("auto-marked absences",
			slog.String("date", yesterday.Format("2006-01-02")),
			slog.Int("employees", marked))
	}
	return nil
}

func (s *service) enqueueUpsert(record attendance.Record) {
	s.outbox.Enqueue(sync.Operation{
		Kind:    sync.KindAttendanceUpsert,
		Payload: sync.AttendanceRecord(record),
	})
}
