package attendance

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
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/sync"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cache"
	"github.com/staffsync/attendance-backend-go/internal/repository/memory"
)

type recordingOutbox struct {
	ops []sync.Operation
}

func (o *recordingOutbox) Enqueue(op sync.Operation) {
	o.ops = append(o.ops, op)
}

func setup(t *testing.T) (attendance.Service, employee.Repository, *recordingOutbox) {
	t.Helper()
	store := memory.NewStore(cache.NewMemory(0), nil, slog.Default())
	empRepo := memory.NewEmployeeRepository(store)
	outbox := &recordingOutbox{}
	svc := NewService(memory.NewAttendanceRepository(store), empRepo, memory.NewLeaveRepository(store), outbox, slog.Default())
	return svc, empRepo, outbox
}

func seedEmployee(t *testing.T, repo employee.Repository, id string, shift employee.Shift) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), employee.Employee{
		ID:          id,
		Name:        "Test Person",
		Shift:       shift,
		WorkingDays: 22,
		Salary:      decimal.NewFromInt(26000),
		PaymentDay:  25,
		Status:      employee.StatusActive,
	}))
}

func TestClockInClassifiesAndEnqueues(t *testing.T) {
	svc, empRepo, outbox := setup(t)
	seedEmployee(t, empRepo, "EMP-1", employee.ShiftDay)

	rec, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{
		EmployeeID:  "EMP-1",
		Date:        "2025-03-10",
		ArrivalTime: "10:15",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.Equal(t, 45, rec.MinutesLate)

	require.Len(t, outbox.ops, 1)
	assert.Equal(t, sync.KindAttendanceUpsert, outbox.ops[0].Kind)
	assert.Equal(t, "EMP-1", outbox.ops[0].Payload["employee_id"])
}

func TestClockInUnknownEmployee(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{
		EmployeeID:  "NOBODY",
		Date:        "2025-03-10",
		ArrivalTime: "09:00",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestClockInKeepsFirstArrival(t *testing.T) {
	svc, empRepo, _ := setup(t)
	seedEmployee(t, empRepo, "EMP-1", employee.ShiftDay)
	ctx := context.Background()

	first, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "EMP-1", Date: "2025-03-10", ArrivalTime: "09:00"})
	require.NoError(t, err)

	second, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "EMP-1", Date: "2025-03-10", ArrivalTime: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, *first.ArrivalTime, *second.ArrivalTime)
	assert.Equal(t, attendance.StatusOnTime, second.Status)
}

func TestClockOutRequiresClockIn(t *testing.T) {
	svc, empRepo, _ := setup(t)
	seedEmployee(t, empRepo, "EMP-1", employee.ShiftDay)

	_, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{
		EmployeeID:    "EMP-1",
		Date:          "2025-03-10",
		DepartureTime: "17:30",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestClockOutComputesOverstay(t *testing.T) {
	svc, empRepo, _ := setup(t)
	seedEmployee(t, empRepo, "EMP-1", employee.ShiftDay)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "EMP-1", Date: "2025-03-10", ArrivalTime: "09:00"})
	require.NoError(t, err)

	rec, err := svc.ClockOut(ctx, attendance.ClockOutRequest{
		EmployeeID:              "EMP-1",
		Date:                    "2025-03-10",
		DepartureTime:           "19:00",
		ApprovedOvertimeMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, rec.OverstayMinutes)
	require.NotNil(t, rec.DepartureTime)
	assert.Equal(t, "19:00", *rec.DepartureTime)
}

func TestMarkAbsent(t *testing.T) {
	svc, empRepo, outbox := setup(t)
	seedEmployee(t, empRepo, "EMP-1", employee.ShiftNight)

	rec, err := svc.MarkAbsent(context.Background(), attendance.MarkAbsentRequest{EmployeeID: "EMP-1", Date: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Nil(t, rec.ArrivalTime)
	require.Len(t, outbox.ops, 1)
}

func TestImportMixedEntries(t *testing.T) {
	svc, empRepo, outbox := setup(t)
	seedEmployee(t, empRepo, "EMP-1", employee.ShiftDay)
	seedEmployee(t, empRepo, "EMP-2", employee.ShiftDay)

	arrive := "09:45"
	depart := "17:30"
	recs, err := svc.Import(context.Background(), attendance.ImportRequest{Entries: []attendance.ImportEntry{
		{EmployeeID: "EMP-1", Date: "2025-03-10", ArrivalTime: &arrive, DepartureTime: &depart},
		{EmployeeID: "EMP-2", Date: "2025-03-10", Absent: true},
	}})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, attendance.StatusLate, recs[0].Status)
	assert.Equal(t, 15, recs[0].MinutesLate)
	assert.Equal(t, attendance.StatusAbsent, recs[1].Status)
	assert.Len(t, outbox.ops, 2)
}

func TestDeleteEnqueuesRemoteDelete(t *testing.T) {
	svc, empRepo, outbox := setup(t)
	seedEmployee(t, empRepo, "EMP-1", employee.ShiftDay)
	ctx := context.Background()

	_, err := svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{EmployeeID: "EMP-1", Date: "2025-03-10"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "EMP-1", "2025-03-10"))
	require.Len(t, outbox.ops, 2)
	assert.Equal(t, sync.KindAttendanceDelete, outbox.ops[1].Kind)
	assert.Equal(t, "2025-03-10", outbox.ops[1].Filter["date"])
}

func TestUpdateReclassifiesRecord(t *testing.T) {
	svc, empRepo, outbox := setup(t)
	seedEmployee(t, empRepo, "EMP-1", employee.ShiftDay)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID:  "EMP-1",
		Date:        "2025-03-10",
		ArrivalTime: "09:00",
	})
	require.NoError(t, err)

	arrival := "10:00"
	rec, err := svc.Update(ctx, attendance.UpdateRequest{
		EmployeeID:  "EMP-1",
		Date:        "2025-03-10",
		ArrivalTime: &arrival,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.Equal(t, 30, rec.MinutesLate)
	assert.Len(t, outbox.ops, 2)
}

func TestUpdateMissingRecord(t *testing.T) {
	svc, empRepo, _ := setup(t)
	seedEmployee(t, empRepo, "EMP-1", employee.ShiftDay)

	_, err := svc.Update(context.Background(), attendance.UpdateRequest{
		EmployeeID: "EMP-1",
		Date:       "2025-03-10",
		Absent:     true,
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestAutoMarkAbsentSkipsRecordedAndOnLeave(t *testing.T) {
	store := memory.NewStore(cache.NewMemory(0), nil, slog.Default())
	empRepo := memory.NewEmployeeRepository(store)
	leaveRepo := memory.NewLeaveRepository(store)
	attRepo := memory.NewAttendanceRepository(store)
	outbox := &recordingOutbox{}
	svc := NewService(attRepo, empRepo, leaveRepo, outbox, slog.Default()).(*service)
	svc.now = func() time.Time { return time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	for _, id := range []string{"EMP-1", "EMP-2", "EMP-3"} {
		seedEmployee(t, empRepo, id, employee.ShiftDay)
	}

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID:  "EMP-1",
		Date:        "2025-03-10",
		ArrivalTime: "09:00",
	})
	require.NoError(t, err)
	require.NoError(t, leaveRepo.Create(ctx, leave.Record{
		ID:         "LV-1",
		EmployeeID: "EMP-2",
		Type:       leave.TypeSick,
		StartDate:  time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
	}))
	outbox.ops = nil

	require.NoError(t, svc.AutoMarkAbsent(ctx))

	yesterday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rec, err := attRepo.GetByEmployeeAndDate(ctx, "EMP-3", yesterday)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)

	_, err = attRepo.GetByEmployeeAndDate(ctx, "EMP-2", yesterday)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	rec, err = attRepo.GetByEmployeeAndDate(ctx, "EMP-1", yesterday)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnTime, rec.Status)

	require.Len(t, outbox.ops, 1)
	assert.Equal(t, "EMP-3", outbox.ops[0].Payload["employee_id"])
}
