package payroll

import "errors"

var (
	ErrNotPaymentDay    = errors.New("today is not the employee's payment day")
	ErrZeroContractDays = errors.New("employee has no contract working days configured")
)
