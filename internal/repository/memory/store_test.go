package memory

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cache"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(cache.NewMemory(0), nil, slog.Default())
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func testEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:          id,
		Name:        "Test Person",
		Shift:       employee.ShiftDay,
		WorkingDays: 22,
		Salary:      decimal.NewFromInt(26000),
		PaymentDay:  25,
		Department:  "Engineering",
		Status:      employee.StatusActive,
	}
}

func TestEmployeeRepositoryCreateAndDuplicate(t *testing.T) {
	store := newTestStore(t)
	repo := NewEmployeeRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testEmployee("EMP-1")))
	err := repo.Create(ctx, testEmployee("EMP-1"))
	assert.ErrorIs(t, err, employee.ErrEmployeeExists)

	got, err := repo.GetByID(ctx, "EMP-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Person", got.Name)
}

func TestAttendanceUpsertReplacesSameDay(t *testing.T) {
	store := newTestStore(t)
	repo := NewAttendanceRepository(store)
	ctx := context.Background()

	arrival := "09:15"
	rec := attendance.Record{
		EmployeeID:  "EMP-1",
		Date:        date("2025-03-10"),
		ArrivalTime: &arrival,
		ShiftType:   employee.ShiftDay,
		Status:      attendance.StatusOnTime,
	}
	require.NoError(t, repo.Upsert(ctx, rec))

	later := "10:00"
	rec.ArrivalTime = &later
	rec.Status = attendance.StatusLate
	rec.MinutesLate = 30
	require.NoError(t, repo.Upsert(ctx, rec))

	all, err := repo.List(ctx, attendance.Filter{EmployeeID: "EMP-1"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, attendance.StatusLate, all[0].Status)
	assert.Equal(t, 30, all[0].MinutesLate)
}

func TestEmployeeRenameCascades(t *testing.T) {
	store := newTestStore(t)
	empRepo := NewEmployeeRepository(store)
	attRepo := NewAttendanceRepository(store)
	ctx := context.Background()

	require.NoError(t, empRepo.Create(ctx, testEmployee("OLD-ID")))
	require.NoError(t, attRepo.Upsert(ctx, attendance.Record{
		EmployeeID: "OLD-ID",
		Date:       date("2025-03-10"),
		Status:     attendance.StatusAbsent,
	}))

	require.NoError(t, empRepo.Rename(ctx, "OLD-ID", "NEW-ID"))

	_, err := empRepo.GetByID(ctx, "OLD-ID")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	_, err = empRepo.GetByID(ctx, "NEW-ID")
	require.NoError(t, err)

	recs, err := attRepo.List(ctx, attendance.Filter{EmployeeID: "NEW-ID"})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	old, err := attRepo.List(ctx, attendance.Filter{EmployeeID: "OLD-ID"})
	require.NoError(t, err)
	assert.Empty(t, old)
}

func TestRenameToExistingIDFails(t *testing.T) {
	store := newTestStore(t)
	repo := NewEmployeeRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testEmployee("A")))
	require.NoError(t, repo.Create(ctx, testEmployee("B")))
	assert.ErrorIs(t, repo.Rename(ctx, "A", "B"), employee.ErrEmployeeExists)
}

func TestLoadRoundTrip(t *testing.T) {
	c := cache.NewMemory(0)
	store := NewStore(c, nil, slog.Default())
	repo := NewEmployeeRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testEmployee("EMP-1")))

	restored := NewStore(c, nil, slog.Default())
	require.NoError(t, restored.Load())

	got, err := NewEmployeeRepository(restored).GetByID(ctx, "EMP-1")
	require.NoError(t, err)
	assert.Equal(t, "EMP-1", got.ID)
	assert.True(t, got.Salary.Equal(decimal.NewFromInt(26000)))
}

func TestCapacityFailurePrunesOldAttendance(t *testing.T) {
	// Generous enough for the retention window, too small for the full
	// history, so the capacity fallback has to kick in.
	c := cache.NewMemory(32 * 1024)
	store := NewStore(c, nil, slog.Default())
	now := date("2025-06-15")
	store.now = func() time.Time { return now }
	repo := NewAttendanceRepository(store)
	ctx := context.Background()

	// Seed ~11 months of history oldest first; the snapshot eventually
	// exceeds capacity and old records get pruned.
	inserted := 0
	var capacityHit bool
	for i := 329; i >= 0; i-- {
		rec := attendance.Record{
			EmployeeID: "EMP-1",
			Date:       now.AddDate(0, 0, -i),
			Status:     attendance.StatusAbsent,
		}
		if err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("upsert day -%d: %v", i, err)
		}
		inserted++
		if len(store.attendance) < inserted {
			capacityHit = true
		}
	}
	require.True(t, capacityHit, "expected the cache capacity to force pruning")

	cutoff := now.Add(-attendanceRetention)
	for _, rec := range store.AllAttendance() {
		assert.False(t, rec.Date.Before(cutoff), "record older than retention survived: %s", rec.Date)
	}
}
