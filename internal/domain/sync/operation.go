package sync

import (
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/deduction"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/remote"
)

type Kind string

const (
	KindEmployeeAdd      Kind = "employee_add"
	KindEmployeeUpdate   Kind = "employee_update"
	KindEmployeeDelete   Kind = "employee_delete"
	KindAttendanceUpsert Kind = "attendance_upsert"
	KindAttendanceDelete Kind = "attendance_delete"
	KindLeaveAdd         Kind = "leave_add"
	KindLeaveUpdate      Kind = "leave_update"
	KindLeaveDelete      Kind = "leave_delete"
	KindDeductionAdd     Kind = "deduction_add"
	KindDeductionUpdate  Kind = "deduction_update"
	KindDeductionDelete  Kind = "deduction_delete"
	KindFullSync         Kind = "full_sync"
)

const (
	CollectionEmployees  = "employees"
	CollectionAttendance = "attendance_records"
	CollectionLeaves     = "leave_records"
	CollectionDeductions = "deductions"
)

// Operation is one pending remote mutation. Payload carries the column
// values the remote store needs; Filter identifies the target rows for
// updates and deletes.
type Operation struct {
	Kind    Kind          `json:"kind"`
	Payload remote.Record `json:"payload,omitempty"`
	Filter  remote.Filter `json:"filter,omitempty"`
}

// Collection returns the remote collection the operation targets.
// full_sync has no single collection and returns "".
func (o Operation) Collection() string {
	switch o.Kind {
	case KindEmployeeAdd, KindEmployeeUpdate, KindEmployeeDelete:
		return CollectionEmployees
	case KindAttendanceUpsert, KindAttendanceDelete:
		return CollectionAttendance
	case KindLeaveAdd, KindLeaveUpdate, KindLeaveDelete:
		return CollectionLeaves
	case KindDeductionAdd, KindDeductionUpdate, KindDeductionDelete:
		return CollectionDeductions
	}
	return ""
}

// ConflictKey returns the column(s) used for upsert conflict resolution
// in the operation's collection.
func ConflictKey(collection string) string {
	if collection == CollectionAttendance {
		return "employee_id,date"
	}
	return "id"
}

// QueueEntry wraps an operation with its retry bookkeeping. Entries are
// persisted to the local cache so a restart does not lose pending work.
type QueueEntry struct {
	ID          string    `json:"id"`
	Op          Operation `json:"op"`
	Timestamp   time.Time `json:"timestamp"`
	Attempts    int       `json:"attempts"`
	LastAttempt time.Time `json:"last_attempt,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
}

// Outbox accepts operations for eventual delivery to the remote store.
// Enqueue never blocks on network activity.
type Outbox interface {
	Enqueue(op Operation)
}

func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// EmployeeRecord maps an employee to its remote row.
func EmployeeRecord(e employee.Employee) remote.Record {
	rec := remote.Record{
		"id":                   e.ID,
		"name":                 e.Name,
		"shift":                string(e.Shift),
		"working_days":         e.WorkingDays,
		"salary":               e.Salary.String(),
		"payment_day":          e.PaymentDay,
		"department":           e.Department,
		"status":               string(e.Status),
		"phone":                e.Phone,
		"email":                e.Email,
		"photo_url":            e.PhotoURL,
		"deactivation_reason":  e.DeactivationReason,
		"deactivation_notes":   e.DeactivationNotes,
		"deactivated_at":       e.DeactivatedAt,
		"created_at":           e.CreatedAt,
		"updated_at":           e.UpdatedAt,
	}
	return rec
}

// AttendanceRecord maps an attendance record to its remote row.
func AttendanceRecord(r attendance.Record) remote.Record {
	return remote.Record{
		"employee_id":      r.EmployeeID,
		"date":             dateString(r.Date),
		"arrival_time":     r.ArrivalTime,
		"departure_time":   r.DepartureTime,
		"shift_type":       string(r.ShiftType),
		"status":           string(r.Status),
		"minutes_late":     r.MinutesLate,
		"overstay_minutes": r.OverstayMinutes,
		"recorded_at":      r.RecordedAt,
		"updated_at":       r.UpdatedAt,
	}
}

// LeaveRecord maps a leave record to its remote row.
func LeaveRecord(r leave.Record) remote.Record {
	return remote.Record{
		"id":          r.ID,
		"employee_id": r.EmployeeID,
		"type":        string(r.Type),
		"start_date":  dateString(r.StartDate),
		"end_date":    dateString(r.EndDate),
		"reason":      r.Reason,
		"created_at":  r.CreatedAt,
		"updated_at":  r.UpdatedAt,
	}
}

// DeductionRecord maps a deduction to its remote row.
func DeductionRecord(d deduction.Deduction) remote.Record {
	return remote.Record{
		"id":          d.ID,
		"employee_id": d.EmployeeID,
		"description": d.Description,
		"amount":      d.Amount.String(),
		"date":        dateString(d.Date),
		"recorded_at": d.RecordedAt,
	}
}
