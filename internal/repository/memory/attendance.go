package memory

import (
	"context"
	"sort"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.Repository {
	return &attendanceRepository{store: store}
}

func (r *attendanceRepository) Upsert(_ context.Context, record attendance.Record) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := record.Key()
	action := "created"
	if _, exists := s.attendance[key]; exists {
		action = "updated"
	}
	s.attendance[key] = record
	if err := s.persist(keyAttendance, s.attendance); err != nil {
		return err
	}
	s.emit("attendance", action, record)
	return nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.attendance[employeeID+"|"+date.Format("2006-01-02")]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *attendanceRepository) ListByEmployeeMonth(_ context.Context, employeeID string, year int, month time.Month) ([]attendance.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range s.attendance {
		if rec.EmployeeID != employeeID {
			continue
		}
		if rec.Date.Year() == year && rec.Date.Month() == month {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *attendanceRepository) List(_ context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range s.attendance {
		if filter.EmployeeID != "" && rec.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.From != nil && rec.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.Date.After(*filter.To) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}

func (r *attendanceRepository) Delete(_ context.Context, employeeID string, date time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := employeeID + "|" + date.Format("2006-01-02")
	if _, ok := s.attendance[key]; !ok {
		return attendance.ErrRecordNotFound
	}
	delete(s.attendance, key)
	if err := s.persist(keyAttendance, s.attendance); err != nil {
		return err
	}
	s.emit("attendance", "deleted", map[string]string{"employee_id": employeeID, "date": date.Format("2006-01-02")})
	return nil
}
