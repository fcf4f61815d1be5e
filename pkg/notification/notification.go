package notification

import (
	"slices"
	"time"
)

// Type represents the notification category.
type Type string

const (
	TypeParcelUpdate        Type = "parcel_update"
	TypeConsolidationUpdate Type = "consolidation_update"
	TypeWarehouseUpdate     Type = "warehouse_update"
	TypeSystemAlert         Type = "system_alert"
	TypePaymentUpdate       Type = "payment_update"
)

// Types lists every notification category.
func Types() []Type {
	return []Type{
		TypeParcelUpdate,
		TypeConsolidationUpdate,
		TypeWarehouseUpdate,
		TypeSystemAlert,
		TypePaymentUpdate,
	}
}

// TypeValues lists every category as a string, for validation rules.
func TypeValues() []string {
	types := Types()
	values := make([]string, len(types))
	for i, t := range types {
		values[i] = string(t)
	}
	return values
}

// Valid reports whether t is a known category.
func (t Type) Valid() bool {
	return slices.Contains(Types(), t)
}

// Channel represents a delivery medium.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
	ChannelInApp Channel = "in_app"
)

// Channels lists every delivery channel.
func Channels() []Channel {
	return []Channel{ChannelEmail, ChannelSMS, ChannelPush, ChannelInApp}
}

// ChannelValues lists every channel as a string, for validation rules.
func ChannelValues() []string {
	channels := Channels()
	values := make([]string, len(channels))
	for i, c := range channels {
		values[i] = string(c)
	}
	return values
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return slices.Contains(Channels(), c)
}

// EntityType represents the kind of business object a notification refers to.
type EntityType string

const (
	EntityParcel        EntityType = "Parcel"
	EntityConsolidation EntityType = "Consolidation"
	EntityWarehouse     EntityType = "Warehouse"
)

// EntityTypeValues lists every entity type as a string, for validation rules.
func EntityTypeValues() []string {
	return []string{
		string(EntityParcel),
		string(EntityConsolidation),
		string(EntityWarehouse),
	}
}

// Notification is a persisted message addressed to a user. Read and sent are
// independent status pairs: ReadAt is set exactly once when IsRead flips to
// true, and SentAt is set exactly once when IsSent flips to true.
type Notification struct {
	ID         string     `bson:"_id" json:"id"`
	UserID     string     `bson:"userId" json:"userId"`
	Type       Type       `bson:"type" json:"type"`
	Title      string     `bson:"title" json:"title"`
	Message    string     `bson:"message" json:"message"`
	EntityType EntityType `bson:"entityType,omitempty" json:"entityType,omitempty"`
	EntityID   string     `bson:"entityId,omitempty" json:"entityId,omitempty"`
	Channels   []Channel  `bson:"channels" json:"channels"`
	IsRead     bool       `bson:"isRead" json:"isRead"`
	IsSent     bool       `bson:"isSent" json:"isSent"`
	ReadAt     *time.Time `bson:"readAt,omitempty" json:"readAt,omitempty"`
	SentAt     *time.Time `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	CreatedAt  time.Time  `bson:"createdTimestamp" json:"createdTimestamp"`
}

// HasChannel reports whether the notification targets the given channel.
func (n *Notification) HasChannel(c Channel) bool {
	return slices.Contains(n.Channels, c)
}
