package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/deduction"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cache"
	"github.com/staffsync/attendance-backend-go/internal/pkg/events"
)

const (
	keyEmployees  = "employees"
	keyAttendance = "attendance"
	keyLeaves     = "leaves"
	keyDeductions = "deductions"

	// attendanceRetention is how far back attendance records are kept when
	// the cache runs out of room. Older records are pruned and the write
	// retried once.
	attendanceRetention = 3 * 30 * 24 * time.Hour
)

// Store holds all records in memory and mirrors each collection into the
// local cache after every mutation, so state survives a restart. It is the
// single authority for local data; domain repositories are thin views over it.
type Store struct {
	mu         sync.RWMutex
	employees  map[string]employee.Employee
	attendance map[string]attendance.Record // keyed employeeID|date
	leaves     map[string]leave.Record
	deductions map[string]deduction.Deduction

	cache  cache.Cache
	hub    *events.Hub
	logger *slog.Logger
	now    func() time.Time
}

func NewStore(c cache.Cache, hub *events.Hub, logger *slog.Logger) *Store {
	return &Store{
		employees:  make(map[string]employee.Employee),
		attendance: make(map[string]attendance.Record),
		leaves:     make(map[string]leave.Record),
		deductions: make(map[string]deduction.Deduction),
		cache:      c,
		hub:        hub,
		logger:     logger,
		now:        time.Now,
	}
}

// Load restores all collections from the cache. Missing keys are treated as
// empty collections, not errors.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := loadCollection(s.cache, keyEmployees, &s.employees); err != nil {
		return fmt.Errorf("load employees: %w", err)
	}
	if err := loadCollection(s.cache, keyAttendance, &s.attendance); err != nil {
		return fmt.Errorf("load attendance: %w", err)
	}
	if err := loadCollection(s.cache, keyLeaves, &s.leaves); err != nil {
		return fmt.Errorf("load leaves: %w", err)
	}
	if err := loadCollection(s.cache, keyDeductions, &s.deductions); err != nil {
		return fmt.Errorf("load deductions: %w", err)
	}
	return nil
}

func loadCollection[T any](c cache.Cache, key string, dst *map[string]T) error {
	data, ok, err := c.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	m := make(map[string]T)
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	*dst = m
	return nil
}

// persist writes one collection snapshot to the cache. On a capacity
// failure it prunes attendance history beyond the retention window and
// retries the write once.
func (s *Store) persist(key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	err = s.cache.Set(key, data)
	if err == nil {
		return nil
	}
	if !errors.Is(err, cache.ErrCapacityExceeded) {
		return fmt.Errorf("persist %s: %w", key, err)
	}

	pruned := s.pruneAttendanceLocked(s.now().Add(-attendanceRetention))
	s.logger.Warn("cache capacity exceeded, pruned old attendance records",
		slog.String("key", key), slog.Int("pruned", pruned))

	if key != keyAttendance {
		// The attendance snapshot shrank; rewrite it before retrying.
		if attData, mErr := json.Marshal(s.attendance); mErr == nil {
			if sErr := s.cache.Set(keyAttendance, attData); sErr != nil {
				return s.persistRetryErr(keyAttendance, sErr)
			}
		}
	} else {
		if data, err = json.Marshal(s.attendance); err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
	}
	if err := s.cache.Set(key, data); err != nil {
		return s.persistRetryErr(key, err)
	}
	return nil
}

func (s *Store) persistRetryErr(key string, err error) error {
	if errors.Is(err, cache.ErrCapacityExceeded) {
		return fmt.Errorf("persist %s after pruning: %w", key, ErrStorageFull)
	}
	return fmt.Errorf("persist %s after pruning: %w", key, err)
}

// pruneAttendanceLocked drops attendance records dated before cutoff.
// Caller must hold the write lock.
func (s *Store) pruneAttendanceLocked(cutoff time.Time) int {
	pruned := 0
	for k, rec := range s.attendance {
		if rec.Date.Before(cutoff) {
			delete(s.attendance, k)
			pruned++
		}
	}
	return pruned
}

func (s *Store) emit(topic, action string, payload any) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(events.Event{Topic: topic, Action: action, Payload: payload})
}

// Snapshot accessors used by the sync engine for bulk pushes. Slices are
// returned in deterministic order.

func (s *Store) AllEmployees() []employee.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]employee.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) AllAttendance() []attendance.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]attendance.Record, 0, len(s.attendance))
	for _, r := range s.attendance {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func (s *Store) AllLeaves() []leave.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]leave.Record, 0, len(s.leaves))
	for _, r := range s.leaves {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) AllDeductions() []deduction.Deduction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]deduction.Deduction, 0, len(s.deductions))
	for _, d := range s.deductions {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Replace swaps in full collections pulled from the remote store and
// persists them. Used when restoring local state.
func (s *Store) Replace(emps []employee.Employee, att []attendance.Record, lvs []leave.Record, deds []deduction.Deduction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = make(map[string]employee.Employee, len(emps))
	for _, e := range emps {
		s.employees[e.ID] = e
	}
	s.attendance = make(map[string]attendance.Record, len(att))
	for _, r := range att {
		s.attendance[r.Key()] = r
	}
	s.leaves = make(map[string]leave.Record, len(lvs))
	for _, r := range lvs {
		s.leaves[r.ID] = r
	}
	s.deductions = make(map[string]deduction.Deduction, len(deds))
	for _, d := range deds {
		s.deductions[d.ID] = d
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
	s.emit("store", "restored", nil)
	return nil
}
