package analyzer

import "errors"

var (
	// ErrNotFound is returned by repository reads when the requested object does not exist.
	ErrNotFound = errors.New("not found")
	// ErrProvider wraps every other failure reported by the hosting platform.
	ErrProvider = errors.New("provider error")
)
