package response

import (
	"errors"
	"net/http"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/auth"
	"github.com/staffsync/attendance-backend-go/internal/domain/deduction"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/payroll"
	syncdomain "github.com/staffsync/attendance-backend-go/internal/domain/sync"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
	"github.com/staffsync/attendance-backend-go/internal/repository/memory"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, "Employee ID already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is not active")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidTime):
		BadRequest(w, "Invalid time value", nil)
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "Employee has not clocked in for this date")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrInvalidRange):
		BadRequest(w, "Leave end date precedes start date", nil)

	// Deduction domain errors
	case errors.Is(err, deduction.ErrDeductionNotFound):
		NotFound(w, "Deduction not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNotPaymentDay):
		Conflict(w, "Today is not the employee's payment day")
	case errors.Is(err, payroll.ErrZeroContractDays):
		Conflict(w, "Employee has no contract working days configured")

	// Sync domain errors
	case errors.Is(err, syncdomain.ErrSyncInProgress):
		Conflict(w, "A sync is already in progress")
	case errors.Is(err, syncdomain.ErrOffline):
		ServiceUnavailable(w, "Remote store is unreachable")
	case errors.Is(err, syncdomain.ErrAbandoned):
		ServiceUnavailable(w, "A sync operation was abandoned after repeated failures")

	// Local storage errors
	case errors.Is(err, memory.ErrStorageFull):
		ServiceUnavailable(w, "Local storage is full")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
