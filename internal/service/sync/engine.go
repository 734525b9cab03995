package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/deduction"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	syncdomain "github.com/staffsync/attendance-backend-go/internal/domain/sync"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cache"
	"github.com/staffsync/attendance-backend-go/internal/pkg/events"
	"github.com/staffsync/attendance-backend-go/internal/pkg/remote"
)

const (
	queueCacheKey = "sync_queue"

	baseRetryDelay = 5 * time.Second
	maxRetryDelay  = 60 * time.Second
	maxAttempts    = 5

	// fullSyncBatchSize caps how many rows go into one bulk upsert.
	fullSyncBatchSize = 50
)

// Collections is the engine's view of the local record store: full
// snapshots for pushing, wholesale replacement for restoring.
type Collections interface {
	AllEmployees() []employee.Employee
	AllAttendance() []attendance.Record
	AllLeaves() []leave.Record
	AllDeductions() []deduction.Deduction
	Replace(emps []employee.Employee, att []attendance.Record, lvs []leave.Record, deds []deduction.Deduction) error
}

// Status is a point-in-time view of the engine for the API surface.
type Status struct {
	Online        bool                   `json:"online"`
	Syncing       bool                   `json:"syncing"`
	QueueLength   int                    `json:"queue_length"`
	Pending       []syncdomain.QueueEntry `json:"pending,omitempty"`
	LastDrainedAt *time.Time             `json:"last_drained_at,omitempty"`
}

// Engine owns the durable FIFO of pending remote mutations. Mutations are
// enqueued locally and drained to the remote store with per-entry retry
// backoff. The queue halts on a failing head entry rather than skipping it,
// so remote mutations apply in the order they happened locally.
type Engine struct {
	mu    stdsync.Mutex
	queue []syncdomain.QueueEntry

	cache  cache.Cache
	remote remote.Store
	local  Collections
	hub    *events.Hub
	logger *slog.Logger

	online  atomic.Bool
	syncing atomic.Bool

	lastDrained atomic.Pointer[time.Time]

	now           func() time.Time
	scheduleRetry func(d time.Duration, fn func())
}

func NewEngine(c cache.Cache, rs remote.Store, local Collections, hub *events.Hub, logger *slog.Logger) *Engine {
	e := &Engine{
		cache:  c,
		remote: rs,
		local:  local,
		hub:    hub,
		logger: logger,
		now:    time.Now,
		scheduleRetry: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	return e
}

// Load restores the pending queue from the cache.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, ok, err := e.cache.Get(queueCacheKey)
	if err != nil {
		return fmt.Errorf("load sync queue: %w", err)
	}
	if !ok {
		return nil
	}
	var queue []syncdomain.QueueEntry
	if err := json.Unmarshal(data, &queue); err != nil {
		return fmt.Errorf("decode sync queue: %w", err)
	}
	e.queue = queue
	return nil
}

// Enqueue appends an operation to the queue and persists it. If the remote
// is reachable, a drain is kicked off in the background.
func (e *Engine) Enqueue(op syncdomain.Operation) {
	e.mu.Lock()
	entry := syncdomain.QueueEntry{
		ID:        uuid.NewString(),
		Op:        op,
		Timestamp: e.now(),
	}
	e.queue = append(e.queue, entry)
	e.persistLocked()
	length := len(e.queue)
	e.mu.Unlock()

	e.emit("enqueued", map[string]interface{}{"kind": string(op.Kind), "queue_length": length})

	if e.online.Load() {
		go func() {
			if err := e.Drain(context.Background()); err != nil && !errors.Is(err, syncdomain.ErrSyncInProgress) {
				e.logger.Warn("background drain failed", slog.String("error", err.Error()))
			}
		}()
	}
}

// SetOnline records connectivity. Coming back online triggers a drain.
func (e *Engine) SetOnline(online bool) {
	was := e.online.Swap(online)
	if was == online {
		return
	}
	e.emit("connectivity", map[string]interface{}{"online": online})
	e.logger.Info("connectivity changed", slog.Bool("online", online))
	if online {
		go func() {
			if err := e.Drain(context.Background()); err != nil && !errors.Is(err, syncdomain.ErrSyncInProgress) {
				e.logger.Warn("drain after reconnect failed", slog.String("error", err.Error()))
			}
		}()
	}
}

// Probe checks reachability of the remote store and updates the
// connectivity flag. It never returns the ping error itself so a
// scheduler can keep running it.
func (e *Engine) Probe(ctx context.Context) error {
	err := e.remote.Ping(ctx)
	e.SetOnline(err == nil)
	return nil
}

func (e *Engine) Online() bool {
	return e.online.Load()
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	pending := make([]syncdomain.QueueEntry, len(e.queue))
	copy(pending, e.queue)
	e.mu.Unlock()

	st := Status{
		Online:      e.online.Load(),
		Syncing:     e.syncing.Load(),
		QueueLength: len(pending),
		Pending:     pending,
	}
	if t := e.lastDrained.Load(); t != nil {
		st.LastDrainedAt = t
	}
	return st
}

// Drain processes the queue head-first until it is empty or the head entry
// is not yet due for retry. Only one drain or full sync runs at a time.
// Draining with no connectivity is a no-op.
func (e *Engine) Drain(ctx context.Context) error {
	if !e.online.Load() {
		return nil
	}
	if !e.syncing.CompareAndSwap(false, true) {
		return syncdomain.ErrSyncInProgress
	}
	defer e.syncing.Store(false)

	drained := 0
	var abandonErr error
	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.mu.Unlock()
			break
		}
		entry := e.queue[0]
		e.mu.Unlock()

		if wait := e.retryWait(entry); wait > 0 {
			// Head not due yet. The queue is ordered, so stop here rather
			// than skipping ahead.
			e.logger.Debug("head entry backing off",
				slog.String("kind", string(entry.Op.Kind)),
				slog.Duration("wait", wait))
			break
		}

		err := e.apply(ctx, entry.Op)
		if err == nil {
			e.removeHead(entry.ID)
			drained++
			continue
		}

		entry.Attempts++
		entry.LastAttempt = e.now()
		entry.LastError = err.Error()

		if entry.Attempts >= maxAttempts {
			e.removeHead(entry.ID)
			e.emit("abandoned", map[string]interface{}{
				"kind":  string(entry.Op.Kind),
				"error": entry.LastError,
			})
			e.logger.Error("sync operation abandoned",
				slog.String("kind", string(entry.Op.Kind)),
				slog.Int("attempts", entry.Attempts),
				slog.String("error", entry.LastError))
			// Abandonment stops the drain; the operator decides whether
			// the rest of the queue should proceed.
			abandonErr = fmt.Errorf("%s: %w", entry.Op.Kind, syncdomain.ErrAbandoned)
			break
		}

		e.updateHead(entry)
		e.logger.Warn("sync operation failed, will retry",
			slog.String("kind", string(entry.Op.Kind)),
			slog.Int("attempts", entry.Attempts),
			slog.String("error", entry.LastError))

		// A failed full sync gets one quick follow-up before the regular
		// backoff schedule takes over.
		if entry.Op.Kind == syncdomain.KindFullSync && entry.Attempts == 1 {
			e.scheduleRetry(baseRetryDelay, func() {
				if err := e.Drain(context.Background()); err != nil && !errors.Is(err, syncdomain.ErrSyncInProgress) {
					e.logger.Warn("full sync retry failed", slog.String("error", err.Error()))
				}
			})
		}
		break
	}

	if drained > 0 {
		now := e.now()
		e.lastDrained.Store(&now)
		e.emit("drained", map[string]interface{}{"count": drained})
	}
	return abandonErr
}

// retryWait returns how long the entry still has to back off, zero when it
// is due. The delay doubles per attempt from 5s and caps at 60s.
func (e *Engine) retryWait(entry syncdomain.QueueEntry) time.Duration {
	if entry.Attempts == 0 {
		return 0
	}
	delay := baseRetryDelay << (entry.Attempts - 1)
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	due := entry.LastAttempt.Add(delay)
	if wait := due.Sub(e.now()); wait > 0 {
		return wait
	}
	return 0
}

func (e *Engine) apply(ctx context.Context, op syncdomain.Operation) error {
	if op.Kind == syncdomain.KindFullSync {
		return e.pushAll(ctx)
	}

	collection := op.Collection()
	switch op.Kind {
	case syncdomain.KindEmployeeDelete, syncdomain.KindAttendanceDelete,
		syncdomain.KindLeaveDelete, syncdomain.KindDeductionDelete:
		return e.remote.Delete(ctx, collection, op.Filter)
	default:
		return e.remote.Upsert(ctx, collection, []remote.Record{op.Payload}, syncdomain.ConflictKey(collection))
	}
}

// removeHead drops the head entry if it still matches id and persists.
func (e *Engine) removeHead(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) > 0 && e.queue[0].ID == id {
		e.queue = e.queue[1:]
		e.persistLocked()
	}
}

func (e *Engine) updateHead(entry syncdomain.QueueEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) > 0 && e.queue[0].ID == entry.ID {
		e.queue[0] = entry
		e.persistLocked()
	}
}

func (e *Engine) persistLocked() {
	data, err := json.Marshal(e.queue)
	if err != nil {
		e.logger.Error("encode sync queue", slog.String("error", err.Error()))
		return
	}
	if err := e.cache.Set(queueCacheKey, data); err != nil {
		e.logger.Error("persist sync queue", slog.String("error", err.Error()))
	}
}

func (e *Engine) emit(action string, payload any) {
	if e.hub == nil {
		return
	}
	e.hub.Publish(events.Event{Topic: "sync", Action: action, Payload: payload})
}
