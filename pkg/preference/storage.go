package preference

import (
	"context"
	"time"

	"github.com/shipfwd/notifyd/pkg/notification"
)

// Storage is the persistence contract for preference records. Implementations
// enforce the one-record-per-user invariant: Insert fails with
// ErrAlreadyExists when the user already has a record.
type Storage interface {
	// Get returns the user's preference record, or ErrNotFound.
	Get(ctx context.Context, userID string) (*Preference, error)

	// List returns all preference records, ordered by userID.
	List(ctx context.Context) ([]Preference, error)

	// Insert stores a new record. Returns ErrAlreadyExists when the user
	// already has one.
	Insert(ctx context.Context, p Preference) error

	// Replace overwrites the user's record wholesale, creating it when
	// absent. CreatedAt of an existing record is preserved.
	Replace(ctx context.Context, p Preference) (*Preference, error)

	// SetCategory updates one category's channel set on an existing record,
	// or ErrNotFound.
	SetCategory(ctx context.Context, userID string, t notification.Type, channels []notification.Channel, at time.Time) (*Preference, error)

	// SetDoNotDisturb updates the quiet-hours settings on an existing
	// record, or ErrNotFound.
	SetDoNotDisturb(ctx context.Context, userID string, dnd DoNotDisturb, at time.Time) (*Preference, error)

	// Delete removes the user's record, or ErrNotFound.
	Delete(ctx context.Context, userID string) (*Preference, error)
}
