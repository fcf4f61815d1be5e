package preference

import "errors"

var (
	// ErrNotFound is returned when no preference record exists for the user.
	ErrNotFound = errors.New("preference not found")

	// ErrAlreadyExists is returned when inserting a record for a user who
	// already has one. Each user holds at most one preference record.
	ErrAlreadyExists = errors.New("preference already exists")

	// ErrStorage wraps backend failures. The underlying cause is joined and
	// reachable with errors.As.
	ErrStorage = errors.New("preference storage error")
)
