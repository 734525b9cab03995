package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee id already registered")
	ErrEmployeeInactive = errors.New("employee is inactive")
)
