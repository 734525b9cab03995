package attendance

import "errors"

var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrInvalidTime    = errors.New("invalid time value")
	ErrNotClockedIn   = errors.New("employee has not clocked in for this date")
)
