package preference

import (
	"time"

	"github.com/shipfwd/notifyd/pkg/notification"
)

// DoNotDisturb is a daily quiet-hours window in the user's local clock.
// From and To are "HH:MM" strings; a window with From after To wraps past
// midnight. Bounds are kept even while Enabled is false so re-enabling
// restores the previous window.
type DoNotDisturb struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	From    string `bson:"startTime,omitempty" json:"startTime,omitempty"`
	To      string `bson:"endTime,omitempty" json:"endTime,omitempty"`
}

// Preference holds a user's per-category channel selections and quiet-hours
// settings. One record per user.
type Preference struct {
	ID           string                                       `bson:"_id" json:"id"`
	UserID       string                                       `bson:"userId" json:"userId"`
	Preferences  map[notification.Type][]notification.Channel `bson:"preferences" json:"preferences"`
	DoNotDisturb DoNotDisturb                                 `bson:"doNotDisturb" json:"doNotDisturb"`
	CreatedAt    time.Time                                    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time                                    `bson:"updatedAt" json:"updatedAt"`
}

// DefaultChannels returns the channel set a category resolves to for users
// without a stored preference record.
func DefaultChannels(t notification.Type) []notification.Channel {
	switch t {
	case notification.TypeWarehouseUpdate:
		return []notification.Channel{notification.ChannelInApp}
	case notification.TypeParcelUpdate,
		notification.TypeConsolidationUpdate,
		notification.TypeSystemAlert,
		notification.TypePaymentUpdate:
		return []notification.Channel{notification.ChannelEmail, notification.ChannelInApp}
	default:
		return []notification.Channel{}
	}
}

// DefaultPreferences returns the full default category-to-channels map used
// when materializing a fresh preference record.
func DefaultPreferences() map[notification.Type][]notification.Channel {
	prefs := make(map[notification.Type][]notification.Channel, len(notification.Types()))
	for _, t := range notification.Types() {
		prefs[t] = DefaultChannels(t)
	}
	return prefs
}

// Channels returns the stored channel set for the category. A category the
// record does not mention resolves to the empty set, not to defaults; an
// existing record is authoritative for every category.
func (p *Preference) Channels(t notification.Type) []notification.Channel {
	if channels, ok := p.Preferences[t]; ok && channels != nil {
		return channels
	}
	return []notification.Channel{}
}
