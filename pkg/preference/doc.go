// Package preference manages per-user delivery preferences: which channels
// each notification category goes to, and daily quiet-hours windows during
// which delivery is suppressed.
//
// Each user holds at most one preference record, enforced by a unique index
// in the MongoDB backend. Records are materialized lazily with default
// channel sets on first access; users without a record resolve to the
// category defaults, while an existing record is authoritative, so a category
// it omits resolves to the empty set.
//
// Quiet-hours windows are "HH:MM" wall-clock bounds and may wrap past
// midnight (22:00 to 07:00 covers late evening and early morning). Disabling
// quiet hours keeps the stored bounds so re-enabling restores them.
//
// # Usage
//
//	storage := preference.NewMongoStorage(db)
//	resolver := preference.NewResolver(storage, preference.WithResolverLogger(log))
//
//	channels, err := resolver.ChannelsFor(ctx, "u-123", notification.TypeParcelUpdate)
//	quiet, err := resolver.IsSuppressed(ctx, "u-123")
package preference
