package notification

import (
	"context"
	"log/slog"

	"github.com/shipfwd/notifyd/pkg/validator"
)

const (
	// DefaultListLimit is the page size applied when the caller does not set one.
	DefaultListLimit = 50

	// PendingLimit caps a single pending poll; callers needing more re-poll.
	PendingLimit = 100
)

// Query builds filtered, paginated views over stored notifications.
type Query struct {
	storage Storage
	cache   *CountCache
	log     *slog.Logger
}

// QueryOption configures a Query.
type QueryOption func(*Query)

// WithQueryLogger sets the logger for the Query.
func WithQueryLogger(log *slog.Logger) QueryOption {
	return func(q *Query) {
		if log != nil {
			q.log = log
		}
	}
}

// WithQueryCountCache attaches a read-through unread-count cache.
func WithQueryCountCache(cache *CountCache) QueryOption {
	return func(q *Query) {
		q.cache = cache
	}
}

// NewQuery creates a notification query service.
func NewQuery(storage Storage, opts ...QueryOption) *Query {
	q := &Query{
		storage: storage,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Get retrieves a single notification by ID, or ErrNotFound.
func (q *Query) Get(ctx context.Context, id string) (*Notification, error) {
	return q.storage.Get(ctx, id)
}

// ListForUser returns the user's notifications, newest first. Limit defaults
// to DefaultListLimit and skip to zero.
func (q *Query) ListForUser(ctx context.Context, userID string, f ListFilter) ([]Notification, error) {
	rules := []validator.Rule{validator.Required("userId", userID)}
	if f.Type != "" {
		rules = append(rules, validator.OneOf("type", string(f.Type), TypeValues()))
	}
	if err := validator.Apply(rules...); err != nil {
		return nil, err
	}

	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Skip < 0 {
		f.Skip = 0
	}

	return q.storage.ListByUser(ctx, userID, f)
}

// UnreadCount returns the user's unread notification count, served from the
// cache when one is attached.
func (q *Query) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return 0, err
	}

	if q.cache != nil {
		if count, ok := q.cache.Get(ctx, userID); ok {
			return count, nil
		}
	}

	count, err := q.storage.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if q.cache != nil {
		q.cache.Set(ctx, userID, count)
	}
	return count, nil
}

// Pending returns unsent notifications oldest first, capped at PendingLimit
// per call for fair delivery ordering. A non-empty channel restricts results
// to notifications targeting it.
func (q *Query) Pending(ctx context.Context, channel Channel) ([]Notification, error) {
	if channel != "" {
		if err := validator.Apply(validator.OneOf("channel", string(channel), ChannelValues())); err != nil {
			return nil, err
		}
	}
	return q.storage.ListPending(ctx, channel, PendingLimit)
}

// ByEntity returns notifications referencing a business object, newest first.
func (q *Query) ByEntity(ctx context.Context, entityType EntityType, entityID string) ([]Notification, error) {
	if err := validator.Apply(
		validator.OneOf("entityType", string(entityType), EntityTypeValues()),
		validator.Required("entityId", entityID),
	); err != nil {
		return nil, err
	}
	return q.storage.ListByEntity(ctx, entityType, entityID)
}

// StatsByType returns per-category total and unread counts for the user.
// Categories without notifications are absent from the map.
func (q *Query) StatsByType(ctx context.Context, userID string) (map[Type]Stats, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return nil, err
	}
	return q.storage.StatsByType(ctx, userID)
}
