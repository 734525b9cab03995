package sync

import (
	"context"
	"fmt"
	"log/slog"

	syncdomain "github.com/staffsync/attendance-backend-go/internal/domain/sync"
	"github.com/staffsync/attendance-backend-go/internal/pkg/remote"
)

// FullSync pushes every local collection to the remote store in batches.
// On failure the remaining work is re-queued as a full_sync operation so
// the retry machinery picks it up.
func (e *Engine) FullSync(ctx context.Context) error {
	if !e.online.Load() {
		return syncdomain.ErrOffline
	}
	if !e.syncing.CompareAndSwap(false, true) {
		return syncdomain.ErrSyncInProgress
	}
	err := e.pushAll(ctx)
	e.syncing.Store(false)

	if err != nil {
		e.logger.Warn("full sync failed, queueing for retry", slog.String("error", err.Error()))
		e.Enqueue(syncdomain.Operation{Kind: syncdomain.KindFullSync})
		return err
	}
	e.emit("full_sync", map[string]interface{}{"status": "completed"})
	return nil
}

func (e *Engine) pushAll(ctx context.Context) error {
	emps := e.local.AllEmployees()
	records := make([]remote.Record, 0, len(emps))
	for _, emp := range emps {
		records = append(records, syncdomain.EmployeeRecord(emp))
	}
	if err := e.pushBatched(ctx, syncdomain.CollectionEmployees, records); err != nil {
		return err
	}

	att := e.local.AllAttendance()
	records = make([]remote.Record, 0, len(att))
	for _, rec := range att {
		records = append(records, syncdomain.AttendanceRecord(rec))
	}
	if err := e.pushBatched(ctx, syncdomain.CollectionAttendance, records); err != nil {
		return err
	}

	leaves := e.local.AllLeaves()
	records = make([]remote.Record, 0, len(leaves))
	for _, rec := range leaves {
		records = append(records, syncdomain.LeaveRecord(rec))
	}
	if err := e.pushBatched(ctx, syncdomain.CollectionLeaves, records); err != nil {
		return err
	}

	deds := e.local.AllDeductions()
	records = make([]remote.Record, 0, len(deds))
	for _, d := range deds {
		records = append(records, syncdomain.DeductionRecord(d))
	}
	return e.pushBatched(ctx, syncdomain.CollectionDeductions, records)
}

func (e *Engine) pushBatched(ctx context.Context, collection string, records []remote.Record) error {
	for start := 0; start < len(records); start += fullSyncBatchSize {
		end := start + fullSyncBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := e.remote.Upsert(ctx, collection, records[start:end], syncdomain.ConflictKey(collection)); err != nil {
			return fmt.Errorf("push %s batch %d-%d: %w", collection, start, end, err)
		}
	}
	return nil
}

// Restore pulls all collections from the remote store and replaces the
// local state wholesale. Intended for first run or recovery on a new
// machine, not for merging.
func (e *Engine) Restore(ctx context.Context) error {
	if !e.online.Load() {
		return syncdomain.ErrOffline
	}
	if !e.syncing.CompareAndSwap(false, true) {
		return syncdomain.ErrSyncInProgress
	}
	defer e.syncing.Store(false)

	empRows, err := e.remote.Select(ctx, syncdomain.CollectionEmployees, nil, "id", 0)
	if err != nil {
		return fmt.Errorf("fetch employees: %w", err)
	}
	attRows, err := e.remote.Select(ctx, syncdomain.CollectionAttendance, nil, "employee_id", 0)
	if err != nil {
		return fmt.Errorf("fetch attendance: %w", err)
	}
	leaveRows, err := e.remote.Select(ctx, syncdomain.CollectionLeaves, nil, "id", 0)
	if err != nil {
		return fmt.Errorf("fetch leaves: %w", err)
	}
	dedRows, err := e.remote.Select(ctx, syncdomain.CollectionDeductions, nil, "id", 0)
	if err != nil {
		return fmt.Errorf("fetch deductions: %w", err)
	}

	emps, err := employeesFromRecords(empRows)
	if err != nil {
		return err
	}
	att, err := attendanceFromRecords(attRows)
	if err != nil {
		return err
	}
	leaves, err := leavesFromRecords(leaveRows)
	if err != nil {
		return err
	}
	deds, err := deductionsFromRecords(dedRows)
	if err != nil {
		return err
	}

	if err := e.local.Replace(emps, att, leaves, deds); err != nil {
		return fmt.Errorf("replace local state: %w", err)
	}
	e.emit("restored", map[string]interface{}{
		"employees":  len(emps),
		"attendance": len(att),
		"leaves":     len(leaves),
		"deductions": len(deds),
	})
	e.logger.Info("local state restored from remote",
		slog.Int("employees", len(emps)),
		slog.Int("attendance", len(att)))
	return nil
}
