package sync

import (
	"context"
	"errors"
	"log/slog"
	stdsync "sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	syncdomain "github.com/staffsync/attendance-backend-go/internal/domain/sync"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cache"
	"github.com/staffsync/attendance-backend-go/internal/pkg/remote"
	"github.com/staffsync/attendance-backend-go/internal/repository/memory"
)

type upsertCall struct {
	collection string
	count      int
}

type fakeRemote struct {
	mu      stdsync.Mutex
	ups     []upsertCall
	deletes []string
	fail    error
}

func (f *fakeRemote) Upsert(_ context.Context, collection string, records []remote.Record, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.ups = append(f.ups, upsertCall{collection: collection, count: len(records)})
	return nil
}

func (f *fakeRemote) Insert(ctx context.Context, collection string, record remote.Record) error {
	return f.Upsert(ctx, collection, []remote.Record{record}, "")
}

func (f *fakeRemote) Update(_ context.Context, _ string, _ remote.Filter, _ remote.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail
}

func (f *fakeRemote) Delete(_ context.Context, collection string, _ remote.Filter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.deletes = append(f.deletes, collection)
	return nil
}

func (f *fakeRemote) Select(_ context.Context, _ string, _ remote.Filter, _ string, _ int) ([]remote.Record, error) {
	return nil, nil
}

func (f *fakeRemote) Ping(_ context.Context) error {
	return f.fail
}

func (f *fakeRemote) upserts() []upsertCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]upsertCall, len(f.ups))
	copy(out, f.ups)
	return out
}

func (f *fakeRemote) setFail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

func newTestEngine(t *testing.T) (*Engine, *fakeRemote, *memory.Store) {
	t.Helper()
	store := memory.NewStore(cache.NewMemory(0), nil, slog.Default())
	rs := &fakeRemote{}
	engine := NewEngine(cache.NewMemory(0), rs, store, nil, slog.Default())
	engine.scheduleRetry = func(time.Duration, func()) {}
	return engine, rs, store
}

func employeeOp(id string) syncdomain.Operation {
	return syncdomain.Operation{
		Kind: syncdomain.KindEmployeeAdd,
		Payload: syncdomain.EmployeeRecord(employee.Employee{
			ID: id, Name: "Test Person", Shift: employee.ShiftDay,
			WorkingDays: 22, Salary: decimal.NewFromInt(26000), PaymentDay: 25,
			Status: employee.StatusActive,
		}),
	}
}

func TestEnqueueDrainRoundTrip(t *testing.T) {
	engine, rs, _ := newTestEngine(t)

	engine.Enqueue(employeeOp("EMP-1"))
	assert.Equal(t, 1, engine.Status().QueueLength)

	engine.online.Store(true)
	require.NoError(t, engine.Drain(context.Background()))

	assert.Equal(t, 0, engine.Status().QueueLength)
	ups := rs.upserts()
	require.Len(t, ups, 1)
	assert.Equal(t, syncdomain.CollectionEmployees, ups[0].collection)
	assert.Equal(t, 1, ups[0].count)
}

func TestDrainOfflineIsNoOp(t *testing.T) {
	engine, rs, _ := newTestEngine(t)

	engine.Enqueue(employeeOp("EMP-1"))
	require.NoError(t, engine.Drain(context.Background()))

	assert.Equal(t, 1, engine.Status().QueueLength)
	assert.Empty(t, rs.upserts())
}

func TestDrainEmptyQueueIsNoOp(t *testing.T) {
	engine, rs, _ := newTestEngine(t)
	engine.online.Store(true)

	require.NoError(t, engine.Drain(context.Background()))
	assert.Empty(t, rs.upserts())
}

func TestFailingEntryHaltsQueue(t *testing.T) {
	engine, rs, _ := newTestEngine(t)
	rs.setFail(errors.New("boom"))

	engine.Enqueue(employeeOp("EMP-1"))
	engine.Enqueue(employeeOp("EMP-2"))
	engine.online.Store(true)
	require.NoError(t, engine.Drain(context.Background()))

	// Head failed once; the second entry must not have been attempted.
	st := engine.Status()
	assert.Equal(t, 2, st.QueueLength)
	assert.Equal(t, 1, st.Pending[0].Attempts)
	assert.Equal(t, 0, st.Pending[1].Attempts)
	assert.NotEmpty(t, st.Pending[0].LastError)
}

func TestAbandonAfterFiveFailures(t *testing.T) {
	engine, rs, _ := newTestEngine(t)
	rs.setFail(errors.New("boom"))

	now := time.Now()
	engine.now = func() time.Time { return now }

	engine.Enqueue(employeeOp("EMP-1"))
	engine.Enqueue(employeeOp("EMP-2"))
	engine.online.Store(true)

	for i := 0; i < 4; i++ {
		require.NoError(t, engine.Drain(context.Background()))
		now = now.Add(2 * time.Minute) // past any backoff window
	}

	// Fifth failure abandons the entry and surfaces the terminal error.
	err := engine.Drain(context.Background())
	assert.ErrorIs(t, err, syncdomain.ErrAbandoned)

	// First entry abandoned, second is now head, untouched by the halt.
	st := engine.Status()
	require.Equal(t, 1, st.QueueLength)
	assert.Equal(t, syncdomain.KindEmployeeAdd, st.Pending[0].Op.Kind)
	assert.Equal(t, "EMP-2", st.Pending[0].Op.Payload["id"])
	assert.Equal(t, 0, st.Pending[0].Attempts)
}

func TestBackoffDelaysRetry(t *testing.T) {
	engine, rs, _ := newTestEngine(t)
	engine.online.Store(true)

	now := time.Now()
	engine.now = func() time.Time { return now }

	entry := syncdomain.QueueEntry{
		ID:          "entry-1",
		Op:          employeeOp("EMP-1"),
		Timestamp:   now,
		Attempts:    3,
		LastAttempt: now,
	}
	engine.queue = []syncdomain.QueueEntry{entry}

	// min(60s, 5s * 2^2) = 20s; before that the entry must not be retried.
	now = now.Add(19 * time.Second)
	require.NoError(t, engine.Drain(context.Background()))
	assert.Empty(t, rs.upserts())
	assert.Equal(t, 1, engine.Status().QueueLength)

	now = now.Add(2 * time.Second)
	require.NoError(t, engine.Drain(context.Background()))
	assert.Len(t, rs.upserts(), 1)
	assert.Equal(t, 0, engine.Status().QueueLength)
}

func TestBackoffCapsAtSixtySeconds(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	now := time.Now()
	engine.now = func() time.Time { return now }

	entry := syncdomain.QueueEntry{Attempts: 10, LastAttempt: now}
	wait := engine.retryWait(entry)
	assert.LessOrEqual(t, wait, 60*time.Second)
	assert.Greater(t, wait, 59*time.Second)
}

func TestFullSyncFailureSchedulesQuickRetry(t *testing.T) {
	engine, rs, store := newTestEngine(t)
	engine.online.Store(true)
	rs.setFail(errors.New("boom"))

	// A non-empty store so the bulk push actually hits the remote.
	require.NoError(t, memory.NewEmployeeRepository(store).Create(context.Background(), employee.Employee{
		ID: "EMP-1", Name: "Test Person", Shift: employee.ShiftDay,
		WorkingDays: 22, Salary: decimal.NewFromInt(26000), PaymentDay: 25,
		Status: employee.StatusActive,
	}))

	var scheduled []time.Duration
	engine.scheduleRetry = func(d time.Duration, _ func()) {
		scheduled = append(scheduled, d)
	}

	// A failing full_sync at the head gets one quick follow-up.
	engine.queue = []syncdomain.QueueEntry{{
		ID: "fs-1",
		Op: syncdomain.Operation{Kind: syncdomain.KindFullSync},
	}}

	require.NoError(t, engine.Drain(context.Background()))
	require.Len(t, scheduled, 1)
	assert.Equal(t, 5*time.Second, scheduled[0])

	// Second failure falls back to normal backoff, no extra quick retry.
	now := time.Now().Add(time.Hour)
	engine.now = func() time.Time { return now }
	require.NoError(t, engine.Drain(context.Background()))
	assert.Len(t, scheduled, 1)
}

func TestDrainMutualExclusion(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	engine.online.Store(true)
	engine.syncing.Store(true)

	err := engine.Drain(context.Background())
	assert.ErrorIs(t, err, syncdomain.ErrSyncInProgress)

	err = engine.FullSync(context.Background())
	assert.ErrorIs(t, err, syncdomain.ErrSyncInProgress)
}

func TestQueuePersistsAcrossRestart(t *testing.T) {
	c := cache.NewMemory(0)
	store := memory.NewStore(cache.NewMemory(0), nil, slog.Default())
	engine := NewEngine(c, &fakeRemote{}, store, nil, slog.Default())
	engine.Enqueue(employeeOp("EMP-1"))
	engine.Enqueue(employeeOp("EMP-2"))

	revived := NewEngine(c, &fakeRemote{}, store, nil, slog.Default())
	require.NoError(t, revived.Load())
	st := revived.Status()
	require.Equal(t, 2, st.QueueLength)
	assert.Equal(t, "EMP-1", st.Pending[0].Op.Payload["id"])
}

func TestFullSyncPushesInBatches(t *testing.T) {
	engine, rs, store := newTestEngine(t)
	engine.online.Store(true)
	ctx := context.Background()

	attRepo := memory.NewAttendanceRepository(store)
	for i := 0; i < 120; i++ {
		require.NoError(t, attRepo.Upsert(ctx, attendance.Record{
			EmployeeID: "EMP-1",
			Date:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Status:     attendance.StatusAbsent,
		}))
	}

	require.NoError(t, engine.FullSync(ctx))

	var sizes []int
	for _, up := range rs.upserts() {
		if up.collection == syncdomain.CollectionAttendance {
			sizes = append(sizes, up.count)
		}
	}
	assert.Equal(t, []int{50, 50, 20}, sizes)
}

func TestDeleteOperationsUseFilter(t *testing.T) {
	engine, rs, _ := newTestEngine(t)

	engine.Enqueue(syncdomain.Operation{
		Kind:   syncdomain.KindAttendanceDelete,
		Filter: map[string]interface{}{"employee_id": "EMP-1", "date": "2025-03-10"},
	})
	engine.online.Store(true)
	require.NoError(t, engine.Drain(context.Background()))

	rs.mu.Lock()
	defer rs.mu.Unlock()
	require.Len(t, rs.deletes, 1)
	assert.Equal(t, syncdomain.CollectionAttendance, rs.deletes[0])
}
