package sync

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/deduction"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/remote"
)

// Row values coming back from the remote store arrive as driver types:
// text as string or []byte, timestamps as time.Time, integers as any int
// width. The helpers below normalize them.

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func asStringPtr(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	return &s
}

func asInt(v interface{}) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(t)
		return n
	case []byte:
		n, _ := strconv.Atoi(string(t))
		return n
	}
	return 0
}

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts
		}
		if ts, err := time.Parse("2006-01-02", t); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func asTimePtr(v interface{}) *time.Time {
	if v == nil {
		return nil
	}
	t := asTime(v)
	if t.IsZero() {
		return nil
	}
	return &t
}

// asDate truncates to a calendar date at midnight UTC, the keying
// convention for attendance and leave dates.
func asDate(v interface{}) time.Time {
	t := asTime(v)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func asDecimal(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, nil
	case string:
		return decimal.NewFromString(t)
	case []byte:
		return decimal.NewFromString(string(t))
	case float64:
		return decimal.NewFromFloat(t), nil
	case int64:
		return decimal.NewFromInt(t), nil
	}
	return decimal.Zero, fmt.Errorf("unsupported decimal value %T", v)
}

func employeesFromRecords(rows []remote.Record) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(rows))
	for _, row := range rows {
		salary, err := asDecimal(row["salary"])
		if err != nil {
			return nil, fmt.Errorf("employee %s salary: %w", asString(row["id"]), err)
		}
		out = append(out, employee.Employee{
			ID:                 asString(row["id"]),
			Name:               asString(row["name"]),
			Shift:              employee.Shift(asString(row["shift"])),
			WorkingDays:        asInt(row["working_days"]),
			Salary:             salary,
			PaymentDay:         asInt(row["payment_day"]),
			Department:         asString(row["department"]),
			Status:             employee.Status(asString(row["status"])),
			Phone:              asStringPtr(row["phone"]),
			Email:              asStringPtr(row["email"]),
			PhotoURL:           asStringPtr(row["photo_url"]),
			DeactivationReason: asStringPtr(row["deactivation_reason"]),
			DeactivationNotes:  asStringPtr(row["deactivation_notes"]),
			DeactivatedAt:      asTimePtr(row["deactivated_at"]),
			CreatedAt:          asTime(row["created_at"]),
			UpdatedAt:          asTime(row["updated_at"]),
		})
	}
	return out, nil
}

func attendanceFromRecords(rows []remote.Record) ([]attendance.Record, error) {
	out := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, attendance.Record{
			EmployeeID:      asString(row["employee_id"]),
			Date:            asDate(row["date"]),
			ArrivalTime:     asStringPtr(row["arrival_time"]),
			DepartureTime:   asStringPtr(row["departure_time"]),
			ShiftType:       employee.Shift(asString(row["shift_type"])),
			Status:          attendance.Status(asString(row["status"])),
			MinutesLate:     asInt(row["minutes_late"]),
			OverstayMinutes: asInt(row["overstay_minutes"]),
			RecordedAt:      asTime(row["recorded_at"]),
			UpdatedAt:       asTime(row["updated_at"]),
		})
	}
	return out, nil
}

func leavesFromRecords(rows []remote.Record) ([]leave.Record, error) {
	out := make([]leave.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, leave.Record{
			ID:         asString(row["id"]),
			EmployeeID: asString(row["employee_id"]),
			Type:       leave.Type(asString(row["type"])),
			StartDate:  asDate(row["start_date"]),
			EndDate:    asDate(row["end_date"]),
			Reason:     asStringPtr(row["reason"]),
			CreatedAt:  asTime(row["created_at"]),
			UpdatedAt:  asTime(row["updated_at"]),
		})
	}
	return out, nil
}

func deductionsFromRecords(rows []remote.Record) ([]deduction.Deduction, error) {
	out := make([]deduction.Deduction, 0, len(rows))
	for _, row := range rows {
		amount, err := asDecimal(row["amount"])
		if err != nil {
			return nil, fmt.Errorf("deduction %s amount: %w", asString(row["id"]), err)
		}
		out = append(out, deduction.Deduction{
			ID:          asString(row["id"]),
			EmployeeID:  asString(row["employee_id"]),
			Description: asString(row["description"]),
			Amount:      amount,
			Date:        asDate(row["date"]),
			RecordedAt:  asTime(row["recorded_at"]),
		})
	}
	return out, nil
}
