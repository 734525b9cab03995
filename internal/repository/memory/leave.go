package memory

import (
	"context"
	"sort"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
)

type leaveRepository struct {
	store *Store
}

func NewLeaveRepository(store *Store) leave.Repository {
	return &leaveRepository{store: store}
}

func (r *leaveRepository) Create(_ context.Context, record leave.Record) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leaves[record.ID] = record
	if err := s.persist(keyLeaves, s.leaves); err != nil {
		return err
	}
	s.emit("leaves", "created", record)
	return nil
}

func (r *leaveRepository) Update(_ context.Context, record leave.Record) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leaves[record.ID]; !ok {
		return leave.ErrLeaveNotFound
	}
	s.leaves[record.ID] = record
	if err := s.persist(keyLeaves, s.leaves); err != nil {
		return err
	}
	s.emit("leaves", "updated", record)
	return nil
}

func (r *leaveRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leaves[id]; !ok {
		return leave.ErrLeaveNotFound
	}
	delete(s.leaves, id)
	if err := s.persist(keyLeaves, s.leaves); err != nil {
		return err
	}
	s.emit("leaves", "deleted", map[string]string{"id": id})
	return nil
}

func (r *leaveRepository) GetByID(_ context.Context, id string) (leave.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.leaves[id]
	if !ok {
		return leave.Record{}, leave.ErrLeaveNotFound
	}
	return rec, nil
}

func (r *leaveRepository) List(_ context.Context, filter leave.Filter) ([]leave.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []leave.Record
	for _, rec := range s.leaves {
		if filter.EmployeeID != "" && rec.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.From != nil && rec.EndDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.StartDate.After(*filter.To) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *leaveRepository) OnLeave(_ context.Context, employeeID string, date time.Time) (leave.Record, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.leaves {
		if rec.EmployeeID == employeeID && rec.Covers(date) {
			return rec, true, nil
		}
	}
	return leave.Record{}, false, nil
}
