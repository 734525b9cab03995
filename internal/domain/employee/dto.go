package employee

import (
	"github.com/shopspring/decimal"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type RegisterEmployeeRequest struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Shift       string          `json:"shift"`
	WorkingDays int             `json:"working_days"`
	Salary      decimal.Decimal `json:"salary"`
	PaymentDay  int             `json:"payment_day"`
	Department  string          `json:"department"`
	Phone       *string         `json:"phone,omitempty"`
	Email       *string         `json:"email,omitempty"`
	PhotoURL    *string         `json:"photo_url,omitempty"`
}

func (r RegisterEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must contain only letters, digits, spaces, '.', '_' or '-'"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Shift, []string{string(ShiftDay), string(ShiftNight)}) {
		errs = append(errs, validator.ValidationError{Field: "shift", Message: "must be 'day' or 'night'"})
	}
	if !validator.IsValidDayOfMonth(r.WorkingDays) {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be between 1 and 31"})
	}
	if !r.Salary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be positive"})
	}
	if !validator.IsValidDayOfMonth(r.PaymentDay) {
		errs = append(errs, validator.ValidationError{Field: "payment_day", Message: "must be between 1 and 31"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email address"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID          string           `json:"id"`
	Name        *string          `json:"name,omitempty"`
	Shift       *string          `json:"shift,omitempty"`
	WorkingDays *int             `json:"working_days,omitempty"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	PaymentDay  *int             `json:"payment_day,omitempty"`
	Department  *string          `json:"department,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Email       *string          `json:"email,omitempty"`
	PhotoURL    *string          `json:"photo_url,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "must contain only letters, digits, spaces, '.', '_' or '-'"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Shift != nil && !validator.IsInSlice(*r.Shift, []string{string(ShiftDay), string(ShiftNight)}) {
		errs = append(errs, validator.ValidationError{Field: "shift", Message: "must be 'day' or 'night'"})
	}
	if r.WorkingDays != nil && !validator.IsValidDayOfMonth(*r.WorkingDays) {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be between 1 and 31"})
	}
	if r.Salary != nil && !r.Salary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be positive"})
	}
	if r.PaymentDay != nil && !validator.IsValidDayOfMonth(*r.PaymentDay) {
		errs = append(errs, validator.ValidationError{Field: "payment_day", Message: "must be between 1 and 31"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email address"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeactivateEmployeeRequest struct {
	ID     string  `json:"id"`
	Reason string  `json:"reason"`
	Notes  *string `json:"notes,omitempty"`
}

func (r DeactivateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RenameEmployeeRequest struct {
	ID    string `json:"id"`
	NewID string `json:"new_id"`
}

func (r RenameEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if !validator.IsValidEmployeeID(r.NewID) {
		errs = append(errs, validator.ValidationError{Field: "new_id", Message: "must contain only letters, digits, spaces, '.', '_' or '-'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	Status     *string `json:"status,omitempty"`
	Department *string `json:"department,omitempty"`
}
