package notification

import (
	"context"
	"time"
)

// Storage handles notification persistence. Implementations must enforce the
// lifecycle invariants atomically per record: mark operations stamp their
// timestamp only on the false-to-true transition, and bulk operations report
// how many records they touched (zero matches is a normal outcome, not an
// error).
type Storage interface {
	// Insert stores a new notification.
	Insert(ctx context.Context, n Notification) error

	// Get retrieves a notification by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Notification, error)

	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, f ListFilter) ([]Notification, error)

	// CountUnread returns the number of unread notifications for a user.
	CountUnread(ctx context.Context, userID string) (int64, error)

	// MarkRead sets isRead and stamps readAt at most once. Marking an
	// already-read notification returns it unchanged.
	MarkRead(ctx context.Context, id string, at time.Time) (*Notification, error)

	// MarkAllRead marks every unread notification of the user as read with a
	// single shared timestamp and returns the number modified.
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)

	// MarkSent sets isSent and stamps sentAt at most once, analogous to
	// MarkRead.
	MarkSent(ctx context.Context, id string, at time.Time) (*Notification, error)

	// Update merges the non-nil fields into the notification and returns the
	// updated record, or ErrNotFound.
	Update(ctx context.Context, id string, fields UpdateFields) (*Notification, error)

	// Delete removes the notification, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// DeleteReadBefore removes the user's read notifications created strictly
	// before the cutoff and returns the number deleted. Unread notifications
	// are never touched.
	DeleteReadBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error)

	// ListPending returns unsent notifications, oldest first, capped at
	// limit. A non-empty channel restricts results to notifications whose
	// channel set contains it.
	ListPending(ctx context.Context, channel Channel, limit int64) ([]Notification, error)

	// ListByEntity returns notifications for a business object, newest first.
	ListByEntity(ctx context.Context, entityType EntityType, entityID string) ([]Notification, error)

	// StatsByType returns per-category total and unread counts for a user.
	// Categories with no notifications are absent from the result.
	StatsByType(ctx context.Context, userID string) (map[Type]Stats, error)
}

// ListFilter narrows and pages ListByUser results. Nil booleans mean "any".
type ListFilter struct {
	IsRead *bool
	IsSent *bool
	Type   Type
	Limit  int64
	Skip   int64
}

// UpdateFields is a partial update. Nil fields are left untouched. Identity
// and ownership (id, userId) are deliberately not representable here; the
// transport layer strips them before they reach the service.
type UpdateFields struct {
	Title      *string     `json:"title,omitempty"`
	Message    *string     `json:"message,omitempty"`
	Type       *Type       `json:"type,omitempty"`
	Channels   *[]Channel  `json:"channels,omitempty"`
	EntityType *EntityType `json:"entityType,omitempty"`
	EntityID   *string     `json:"entityId,omitempty"`
}

// IsZero reports whether no field is set.
func (u UpdateFields) IsZero() bool {
	return u.Title == nil && u.Message == nil && u.Type == nil &&
		u.Channels == nil && u.EntityType == nil && u.EntityID == nil
}

// Stats holds per-category counters.
type Stats struct {
	Total  int64 `bson:"total" json:"total"`
	Unread int64 `bson:"unread" json:"unread"`
}
