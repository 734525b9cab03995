package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type CalculateRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	// Emergency bypasses the payment-day gate for off-cycle runs.
	Emergency    bool `json:"emergency"`
	IncludeBonus bool `json:"include_bonus"`
}

func (r CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must contain only letters, digits, spaces, '.', '_' or '-'"})
	}
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculateAllRequest struct {
	Year         int  `json:"year"`
	Month        int  `json:"month"`
	Emergency    bool `json:"emergency"`
	IncludeBonus bool `json:"include_bonus"`
}

func (r CalculateAllRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "is out of range"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkResult aggregates a payroll run across all active employees.
// Employees whose calculation failed are listed in Skipped with the reason.
type BulkResult struct {
	Year            int               `json:"year"`
	Month           time.Month        `json:"month"`
	Breakdowns      []Breakdown       `json:"breakdowns"`
	TotalSalary     decimal.Decimal   `json:"total_salary"`
	TotalDeductions decimal.Decimal   `json:"total_deductions"`
	TotalNet        decimal.Decimal   `json:"total_net"`
	TotalBonus      decimal.Decimal   `json:"total_bonus"`
	Skipped         map[string]string `json:"skipped,omitempty"`
}
