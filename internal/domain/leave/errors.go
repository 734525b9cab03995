package leave

import "errors"

var (
	ErrLeaveNotFound = errors.New("leave record not found")
	ErrInvalidRange  = errors.New("leave end date precedes start date")
)
