package memory

import (
	"context"
	"sort"

	"github.com/staffsync/attendance-backend-go/internal/domain/deduction"
)

type deductionRepository struct {
	store *Store
}

func NewDeductionRepository(store *Store) deduction.Repository {
	return &deductionRepository{store: store}
}

func (r *deductionRepository) Create(_ context.Context, d deduction.Deduction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deductions[d.ID] = d
	if err := s.persist(keyDeductions, s.deductions); err != nil {
		return err
	}
	s.emit("deductions", "created", d)
	return nil
}

func (r *deductionRepository) Update(_ context.Context, d deduction.Deduction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deductions[d.ID]; !ok {
		return deduction.ErrDeductionNotFound
	}
	s.deductions[d.ID] = d
	if err := s.persist(keyDeductions, s.deductions); err != nil {
		return err
	}
	s.emit("deductions", "updated", d)
	return nil
}

func (r *deductionRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deductions[id]; !ok {
		return deduction.ErrDeductionNotFound
	}
	delete(s.deductions, id)
	if err := s.persist(keyDeductions, s.deductions); err != nil {
		return err
	}
	s.emit("deductions", "deleted", map[string]string{"id": id})
	return nil
}

func (r *deductionRepository) GetByID(_ context.Context, id string) (deduction.Deduction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deductions[id]
	if !ok {
		return deduction.Deduction{}, deduction.ErrDeductionNotFound
	}
	return d, nil
}

func (r *deductionRepository) List(_ context.Context, filter deduction.Filter) ([]deduction.Deduction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []deduction.Deduction
	for _, d := range s.deductions {
		if filter.EmployeeID != "" && d.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
