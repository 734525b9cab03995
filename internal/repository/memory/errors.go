package memory

import "errors"

// ErrStorageFull means the local cache rejected a write for capacity even
// after old attendance records were pruned.
var ErrStorageFull = errors.New("local storage full")
