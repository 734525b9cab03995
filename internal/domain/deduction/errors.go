package deduction

import "errors"

var (
	ErrDeductionNotFound = errors.New("deduction not found")
	ErrInvalidAmount     = errors.New("deduction amount must be positive")
)
