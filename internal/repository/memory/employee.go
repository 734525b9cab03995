package memory

import (
	"context"
	"strings"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.Repository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) Create(_ context.Context, e employee.Employee) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employees[e.ID]; exists {
		return employee.ErrEmployeeExists
	}
	s.employees[e.ID] = e
	if err := s.persist(keyEmployees, s.employees); err != nil {
		return err
	}
	s.emit("employees", "created", e)
	return nil
}

func (r *employeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) Update(_ context.Context, e employee.Employee) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[e.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	s.employees[e.ID] = e
	if err := s.persist(keyEmployees, s.employees); err != nil {
		return err
	}
	s.emit("employees", "updated", e)
	return nil
}

// Rename changes an employee's ID and rewrites every record that refers to
// it, so attendance, leave, and deduction history follow the employee.
func (r *employeeRepository) Rename(_ context.Context, oldID, newID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[oldID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if _, taken := s.employees[newID]; taken {
		return employee.ErrEmployeeExists
	}

	delete(s.employees, oldID)
	e.ID = newID
	s.employees[newID] = e

	rekeyed := make(map[string]attendance.Record, len(s.attendance))
	for k, rec := range s.attendance {
		if rec.EmployeeID == oldID {
			rec.EmployeeID = newID
			rekeyed[rec.Key()] = rec
			continue
		}
		rekeyed[k] = rec
	}
	s.attendance = rekeyed

	for id, rec := range s.leaves {
		if rec.EmployeeID == oldID {
			rec.EmployeeID = newID
			s.leaves[id] = rec
		}
	}
	for id, d := range s.deductions {
		if d.EmployeeID == oldID {
			d.EmployeeID = newID
			s.deductions[id] = d
		}
	}

	for key, coll := range map[string]any{
		keyEmployees:  s.employees,
		keyAttendance: s.attendance,
		keyLeaves:     s.leaves,
		keyDeductions: s.deductions,
	} {
		if err := s.persist(key, coll); err != nil {
			return err
		}
	}
	s.emit("employees", "renamed", map[string]string{"old_id": oldID, "new_id": newID})
	return nil
}

func (r *employeeRepository) List(_ context.Context, filter employee.Filter) ([]employee.Employee, error) {
	s := r.store
	out := s.AllEmployees()
	filtered := out[:0]
	for _, e := range out {
		if filter.Status != nil && e.Status != employee.Status(*filter.Status) {
			continue
		}
		if filter.Department != nil && !strings.EqualFold(e.Department, *filter.Department) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	status := string(employee.StatusActive)
	return r.List(ctx, employee.Filter{Status: &status})
}
