package notification

import "errors"

var (
	// ErrNotFound is returned when a notification does not exist.
	ErrNotFound = errors.New("notification not found")

	// ErrStorage wraps failures of the underlying storage. The cause is
	// attached with errors.Join for diagnostics and never re-classified as
	// another error kind.
	ErrStorage = errors.New("notification storage failure")
)
