package commons

import "errors"

// ErrRecordNotFound is the storage-level miss; services translate it
// into the domain error for whatever entity they were fetching.
var ErrRecordNotFound = errors.New("Record not found")
