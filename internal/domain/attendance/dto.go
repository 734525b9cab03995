package attendance

import (
	"strconv"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"`         // "2006-01-02"
	ArrivalTime string `json:"arrival_time"` // "HH:MM"
}

func (r ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must contain only letters, digits, spaces, '.', '_' or '-'"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsValidTimeOfDay(r.ArrivalTime) {
		errs = append(errs, validator.ValidationError{Field: "arrival_time", Message: "must be in HH:MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID              string `json:"employee_id"`
	Date                    string `json:"date"`
	DepartureTime           string `json:"departure_time"` // "HH:MM"
	ApprovedOvertimeMinutes int    `json:"approved_overtime_minutes"`
}

func (r ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must contain only letters, digits, spaces, '.', '_' or '-'"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsValidTimeOfDay(r.DepartureTime) {
		errs = append(errs, validator.ValidationError{Field: "departure_time", Message: "must be in HH:MM format"})
	}
	if r.ApprovedOvertimeMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "approved_overtime_minutes", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkAbsentRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r MarkAbsentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must contain only letters, digits, spaces, '.', '_' or '-'"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest rewrites the record for one employee and date. Times are
// reclassified from scratch; setting absent clears both times.
type UpdateRequest struct {
	EmployeeID              string  `json:"employee_id"`
	Date                    string  `json:"date"`
	ArrivalTime             *string `json:"arrival_time"`
	DepartureTime           *string `json:"departure_time"`
	Absent                  bool    `json:"absent"`
	ApprovedOvertimeMinutes int     `json:"approved_overtime_minutes"`
}

func (r UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must contain only letters, digits, spaces, '.', '_' or '-'"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !r.Absent && (r.ArrivalTime == nil || !validator.IsValidTimeOfDay(*r.ArrivalTime)) {
		errs = append(errs, validator.ValidationError{Field: "arrival_time", Message: "is required for present records and must be in HH:MM format"})
	}
	if r.DepartureTime != nil && !validator.IsValidTimeOfDay(*r.DepartureTime) {
		errs = append(errs, validator.ValidationError{Field: "departure_time", Message: "must be in HH:MM format"})
	}
	if r.ApprovedOvertimeMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "approved_overtime_minutes", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportEntry is one row of a bulk attendance import. Departure is optional
// so half-entered days can be loaded as-is.
type ImportEntry struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	ArrivalTime   *string `json:"arrival_time"`
	DepartureTime *string `json:"departure_time"`
	Absent        bool    `json:"absent"`
}

type ImportRequest struct {
	Entries []ImportEntry `json:"entries"`
}

func (r ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{Field: "entries", Message: "must not be empty"})
		return errs
	}
	for i, e := range r.Entries {
		idx := strconv.Itoa(i)
		if !validator.IsValidEmployeeID(e.EmployeeID) {
			errs = append(errs, validator.ValidationError{Field: "entries[" + idx + "].employee_id", Message: "must contain only letters, digits, spaces, '.', '_' or '-'"})
		}
		if _, ok := validator.IsValidDate(e.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "entries[" + idx + "].date", Message: "must be in YYYY-MM-DD format"})
		}
		if !e.Absent && (e.ArrivalTime == nil || !validator.IsValidTimeOfDay(*e.ArrivalTime)) {
			errs = append(errs, validator.ValidationError{Field: "entries[" + idx + "].arrival_time", Message: "is required for present entries and must be in HH:MM format"})
		}
		if e.DepartureTime != nil && !validator.IsValidTimeOfDay(*e.DepartureTime) {
			errs = append(errs, validator.ValidationError{Field: "entries[" + idx + "].departure_time", Message: "must be in HH:MM format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
}
