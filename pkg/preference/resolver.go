package preference

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shipfwd/notifyd/pkg/logger"
	"github.com/shipfwd/notifyd/pkg/notification"
	"github.com/shipfwd/notifyd/pkg/validator"
)

// Resolver answers "which channels does this user want for this category"
// and "is delivery suppressed right now". It materializes default records
// lazily on first access and owns all preference mutations.
type Resolver struct {
	storage Storage
	log     *slog.Logger
	now     func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger for the Resolver.
func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithResolverClock overrides the time source. Intended for tests.
func WithResolverClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewResolver creates a preference resolver.
func NewResolver(storage Storage, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		storage: storage,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the user's preference record, materializing one with
// default channel sets and quiet hours disabled when none exists. Losing the
// materialization race to a concurrent caller is resolved by refetching, so
// both callers observe the same record.
func (r *Resolver) GetOrCreate(ctx context.Context, userID string) (*Preference, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return nil, err
	}

	p, err := r.storage.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := r.now()
	fresh := Preference{
		ID:          uuid.New().String(),
		UserID:      userID,
		Preferences: DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.storage.Insert(ctx, fresh); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return r.storage.Get(ctx, userID)
		}
		return nil, err
	}

	r.log.InfoContext(ctx, "preference record materialized", logger.UserID(userID))
	return &fresh, nil
}

// Create stores a caller-supplied preference record. Unlike GetOrCreate it
// fails with ErrAlreadyExists when the user already has one.
func (r *Resolver) Create(ctx context.Context, userID string, prefs map[notification.Type][]notification.Channel, dnd DoNotDisturb) (*Preference, error) {
	if err := validatePrefs(userID, prefs, &dnd); err != nil {
		return nil, err
	}

	now := r.now()
	p := Preference{
		ID:           uuid.New().String(),
		UserID:       userID,
		Preferences:  normalizePrefs(prefs),
		DoNotDisturb: dnd,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.storage.Insert(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the user's stored record without materializing defaults.
func (r *Resolver) Get(ctx context.Context, userID string) (*Preference, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return nil, err
	}
	return r.storage.Get(ctx, userID)
}

// List returns all stored preference records.
func (r *Resolver) List(ctx context.Context) ([]Preference, error) {
	return r.storage.List(ctx)
}

// ChannelsFor resolves the channel set for one category. Users without a
// record get the category default; users with a record get exactly what it
// stores, including the empty set for categories it omits.
func (r *Resolver) ChannelsFor(ctx context.Context, userID string, t notification.Type) ([]notification.Channel, error) {
	if err := validator.Apply(
		validator.Required("userId", userID),
		validator.OneOf("type", string(t), notification.TypeValues()),
	); err != nil {
		return nil, err
	}

	p, err := r.storage.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return DefaultChannels(t), nil
	}
	if err != nil {
		return nil, err
	}
	return p.Channels(t), nil
}

// SetCategory replaces the channel set for one category, materializing the
// record first when needed. The other categories are untouched.
func (r *Resolver) SetCategory(ctx context.Context, userID string, t notification.Type, channels []notification.Channel) (*Preference, error) {
	if err := validator.Apply(
		validator.Required("userId", userID),
		validator.OneOf("type", string(t), notification.TypeValues()),
		validator.EachOneOf("channels", channelStrings(channels), notification.ChannelValues()),
	); err != nil {
		return nil, err
	}

	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	if channels == nil {
		channels = []notification.Channel{}
	}
	p, err := r.storage.SetCategory(ctx, userID, t, channels, r.now())
	if err != nil {
		return nil, err
	}

	r.log.InfoContext(ctx, "preference category updated",
		logger.UserID(userID),
		logger.Category(string(t)),
	)
	return p, nil
}

// EnableDoNotDisturb turns quiet hours on with the given daily window.
func (r *Resolver) EnableDoNotDisturb(ctx context.Context, userID, from, to string) (*Preference, error) {
	if err := validator.Apply(
		validator.Required("userId", userID),
		validator.ClockTime("startTime", from),
		validator.ClockTime("endTime", to),
	); err != nil {
		return nil, err
	}

	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	return r.storage.SetDoNotDisturb(ctx, userID, DoNotDisturb{
		Enabled: true,
		From:    from,
		To:      to,
	}, r.now())
}

// DisableDoNotDisturb turns quiet hours off. The stored window bounds are
// kept so a later enable restores them.
func (r *Resolver) DisableDoNotDisturb(ctx context.Context, userID string) (*Preference, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return nil, err
	}

	p, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	dnd := p.DoNotDisturb
	dnd.Enabled = false
	return r.storage.SetDoNotDisturb(ctx, userID, dnd, r.now())
}

// IsSuppressed reports whether delivery to the user is currently inside an
// enabled quiet-hours window. Users without a record, or with quiet hours
// disabled, are never suppressed.
func (r *Resolver) IsSuppressed(ctx context.Context, userID string) (bool, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return false, err
	}

	p, err := r.storage.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	dnd := p.DoNotDisturb
	if !dnd.Enabled || dnd.From == "" || dnd.To == "" {
		return false, nil
	}
	return WithinWindow(r.now(), dnd.From, dnd.To), nil
}

// ResetToDefault replaces the user's record with the default channel sets
// and quiet hours disabled, creating the record when absent.
func (r *Resolver) ResetToDefault(ctx context.Context, userID string) (*Preference, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return nil, err
	}

	now := r.now()
	return r.storage.Replace(ctx, Preference{
		ID:          uuid.New().String(),
		UserID:      userID,
		Preferences: DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Replace overwrites the user's full preference map and quiet-hours settings,
// creating the record when absent.
func (r *Resolver) Replace(ctx context.Context, userID string, prefs map[notification.Type][]notification.Channel, dnd DoNotDisturb) (*Preference, error) {
	if err := validatePrefs(userID, prefs, &dnd); err != nil {
		return nil, err
	}

	now := r.now()
	return r.storage.Replace(ctx, Preference{
		ID:           uuid.New().String(),
		UserID:       userID,
		Preferences:  normalizePrefs(prefs),
		DoNotDisturb: dnd,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Delete removes the user's preference record, returning it for the caller.
func (r *Resolver) Delete(ctx context.Context, userID string) (*Preference, error) {
	if err := validator.Apply(validator.Required("userId", userID)); err != nil {
		return nil, err
	}
	return r.storage.Delete(ctx, userID)
}

func validatePrefs(userID string, prefs map[notification.Type][]notification.Channel, dnd *DoNotDisturb) error {
	rules := []validator.Rule{validator.Required("userId", userID)}
	for t, channels := range prefs {
		rules = append(rules,
			validator.OneOf("preferences", string(t), notification.TypeValues()),
			validator.EachOneOf("preferences."+string(t), channelStrings(channels), notification.ChannelValues()),
		)
	}
	if dnd.Enabled || dnd.From != "" || dnd.To != "" {
		rules = append(rules,
			validator.ClockTime("doNotDisturb.startTime", dnd.From),
			validator.ClockTime("doNotDisturb.endTime", dnd.To),
		)
	}
	return validator.Apply(rules...)
}

func normalizePrefs(prefs map[notification.Type][]notification.Channel) map[notification.Type][]notification.Channel {
	normalized := make(map[notification.Type][]notification.Channel, len(prefs))
	for t, channels := range prefs {
		if channels == nil {
			channels = []notification.Channel{}
		}
		normalized[t] = channels
	}
	return normalized
}

func channelStrings(channels []notification.Channel) []string {
	values := make([]string, len(channels))
	for i, c := range channels {
		values[i] = string(c)
	}
	return values
}
