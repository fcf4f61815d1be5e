package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shipfwd/notifyd/pkg/logger"
	"github.com/shipfwd/notifyd/pkg/validator"
)

// Service owns the notification lifecycle: creation, read/sent transitions,
// partial updates, deletion, and age-based cleanup.
type Service struct {
	storage Storage
	cache   *CountCache
	log     *slog.Logger
	now     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for the Service.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithServiceCountCache attaches an unread-count cache that is invalidated
// whenever an operation changes a user's unread set.
func WithServiceCountCache(cache *CountCache) ServiceOption {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithServiceClock overrides the time source. Intended for tests.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a notification lifecycle service.
func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage: storage,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateParams carries the caller-supplied fields for a new notification.
type CreateParams struct {
	UserID     string     `json:"userId"`
	Type       Type       `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	EntityType EntityType `json:"entityType,omitempty"`
	EntityID   string     `json:"entityId,omitempty"`
	Channels   []Channel  `json:"channels,omitempty"`
}

func (p CreateParams) validate() error {
	rules := []validator.Rule{
		validator.Required("userId", p.UserID),
		validator.OneOf("type", string(p.Type), TypeValues()),
		validator.Required("title", p.Title),
		validator.Required("message", p.Message),
		validator.EachOneOf("channels", channelStrings(p.Channels), ChannelValues()),
		validator.BothOrNeither("entityType", string(p.EntityType), p.EntityID),
	}
	if p.EntityType != "" {
		rules = append(rules, validator.OneOf("entityType", string(p.EntityType), EntityTypeValues()))
	}
	return validator.Apply(rules...)
}

// Create validates the params and persists a new notification. Channels
// default to the empty set when omitted; they are typically copied from the
// user's resolved preference by the caller.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Notification, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	channels := p.Channels
	if channels == nil {
		channels = []Channel{}
	}

	n := Notification{
		ID:         uuid.New().String(),
		UserID:     p.UserID,
		Type:       p.Type,
		Title:      p.Title,
		Message:    p.Message,
		EntityType: p.EntityType,
		EntityID:   p.EntityID,
		Channels:   channels,
		CreatedAt:  s.now(),
	}

	if err := s.storage.Insert(ctx, n); err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, n.UserID)

	s.log.InfoContext(ctx, "notification created",
		logger.NotificationID(n.ID),
		logger.UserID(n.UserID),
		logger.Category(string(n.Type)),
	)
	return &n, nil
}

// BulkResult reports the outcome of a bulk create.
type BulkResult struct {
	Count         int            `json:"count"`
	Notifications []Notification `json:"notifications"`
}

// CreateBulk inserts each item independently, in order. There is no
// rollback: when an item fails validation or insertion, the error is returned
// together with the result for the items already created. Callers relying on
// all-or-nothing semantics must check the returned count.
func (s *Service) CreateBulk(ctx context.Context, items []CreateParams) (*BulkResult, error) {
	result := &BulkResult{Notifications: []Notification{}}

	for i, p := range items {
		n, err := s.Create(ctx, p)
		if err != nil {
			return result, fmt.Errorf("item %d: %w", i, err)
		}
		result.Notifications = append(result.Notifications, *n)
		result.Count++
	}

	return result, nil
}

// MarkRead marks the notification as read. Marking an already-read
// notification is a no-op that returns the record with its original readAt.
func (s *Service) MarkRead(ctx context.Context, id string) (*Notification, error) {
	n, err := s.storage.MarkRead(ctx, id, s.now())
	if err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, n.UserID)
	return n, nil
}

// MarkAllRead marks every unread notification of the user as read, stamping
// one shared readAt for the batch. It returns the number modified; zero is a
// normal outcome.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return 0, err
	}

	count, err := s.storage.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return 0, err
	}
	s.invalidateCount(ctx, userID)

	s.log.InfoContext(ctx, "notifications marked read",
		logger.UserID(userID),
		logger.Count(count),
	)
	return count, nil
}

// MarkSent marks the notification as sent, stamping sentAt at most once.
func (s *Service) MarkSent(ctx context.Context, id string) (*Notification, error) {
	return s.storage.MarkSent(ctx, id, s.now())
}

// Update merges the given fields into the notification. Type and channel
// values are validated; identity and ownership fields are not updatable.
func (s *Service) Update(ctx context.Context, id string, fields UpdateFields) (*Notification, error) {
	var rules []validator.Rule
	if fields.Type != nil {
		rules = append(rules, validator.OneOf("type", string(*fields.Type), TypeValues()))
	}
	if fields.Channels != nil {
		rules = append(rules, validator.EachOneOf("channels", channelStrings(*fields.Channels), ChannelValues()))
	}
	if fields.EntityType != nil && *fields.EntityType != "" {
		rules = append(rules, validator.OneOf("entityType", string(*fields.EntityType), EntityTypeValues()))
	}
	if fields.Title != nil {
		rules = append(rules, validator.Required("title", *fields.Title))
	}
	if fields.Message != nil {
		rules = append(rules, validator.Required("message", *fields.Message))
	}
	if err := validator.Apply(rules...); err != nil {
		return nil, err
	}

	return s.storage.Update(ctx, id, fields)
}

// Delete removes the notification, or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) (*Notification, error) {
	n, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, n.UserID)
	return n, nil
}

// DefaultCleanupDays is the retention threshold applied when the caller does
// not provide one.
const DefaultCleanupDays = 30

// Cleanup deletes the user's read notifications older than the given number
// of days and returns the number deleted. Unread notifications are retained
// regardless of age.
func (s *Service) Cleanup(ctx context.Context, userID string, olderThanDays int) (int64, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return 0, err
	}
	if olderThanDays <= 0 {
		olderThanDays = DefaultCleanupDays
	}

	cutoff := s.now().AddDate(0, 0, -olderThanDays)
	count, err := s.storage.DeleteReadBefore(ctx, userID, cutoff)
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "old notifications deleted",
		logger.UserID(userID),
		logger.Count(count),
	)
	return count, nil
}

func (s *Service) invalidateCount(ctx context.Context, userID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

func channelStrings(channels []Channel) []string {
	values := make([]string, len(channels))
	for i, c := range channels {
		values[i] = string(c)
	}
	return values
}
