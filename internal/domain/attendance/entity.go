package attendance

import (
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
)

// Record is one employee-day. At most one record exists per (employee, date);
// writes are upserts on that key.
type Record struct {
	EmployeeID      string
	Date            time.Time // calendar date, midnight UTC
	ArrivalTime     *string   // "HH:MM", nil when absent
	DepartureTime   *string
	ShiftType       employee.Shift
	Status          Status
	MinutesLate     int // 0 unless Status is late
	OverstayMinutes int // past expected departure, net of approved overtime
	RecordedAt      time.Time
	UpdatedAt       time.Time
}

type Status string

const (
	StatusOnTime Status = "on_time"
	StatusLate   Status = "late"
	StatusAbsent Status = "absent"
)

// Present reports whether the record counts as a worked day.
func (r Record) Present() bool {
	return r.Status == StatusOnTime || r.Status == StatusLate
}

// Key returns the composite record key.
func (r Record) Key() string {
	return r.EmployeeID + "|" + r.Date.Format("2006-01-02")
}
