package sync

import "errors"

var (
	ErrSyncInProgress = errors.New("a sync is already in progress")
	ErrOffline        = errors.New("remote store is unreachable")
	ErrAbandoned      = errors.New("operation abandoned after repeated failures")
)
