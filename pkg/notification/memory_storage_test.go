package notification_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipfwd/notifyd/pkg/notification"
)

func seed(t *testing.T, s notification.Storage, n notification.Notification) notification.Notification {
	t.Helper()
	if n.Channels == nil {
		n.Channels = []notification.Channel{notification.ChannelInApp}
	}
	require.NoError(t, s.Insert(context.Background(), n))
	return n
}

func TestMemoryStorage_InsertAndGet(t *testing.T) {
	t.Parallel()

	s := notification.NewMemoryStorage()
	ctx := context.Background()

	seed(t, s, notification.Notification{
		ID:        "n1",
		UserID:    "u1",
		Type:      notification.TypeParcelUpdate,
		Title:     "Parcel received",
		Message:   "Your parcel arrived",
		CreatedAt: time.Now(),
	})

	got, err := s.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.False(t, got.IsRead)
	assert.False(t, got.IsSent)
	assert.Nil(t, got.ReadAt)
	assert.Nil(t, got.SentAt)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, notification.ErrNotFound)

	assert.Error(t, s.Insert(ctx, notification.Notification{}), "empty ID rejected")
}

func TestMemoryStorage_ListByUser(t *testing.T) {
	t.Parallel()

	s := notification.NewMemoryStorage()
	ctx := context.Background()
	base := time.Now()

	for i := range 5 {
		n := notification.Notification{
			ID:        fmt.Sprintf("n%d", i),
			UserID:    "u1",
			Type:      notification.TypeParcelUpdate,
			Title:     "t",
			Message:   "m",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if i%2 == 0 {
			n.IsRead = true
		}
		seed(t, s, n)
	}
	seed(t, s, notification.Notification{
		ID: "other", UserID: "u2", Type: notification.TypeSystemAlert,
		Title: "t", Message: "m", CreatedAt: base,
	})

	t.Run("newest first", func(t *testing.T) {
		list, err := s.ListByUser(ctx, "u1", notification.ListFilter{})
		require.NoError(t, err)
		require.Len(t, list, 5)
		for i := 1; i < len(list); i++ {
			assert.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt))
		}
	})

	t.Run("filter by read state", func(t *testing.T) {
		unread := false
		list, err := s.ListByUser(ctx, "u1", notification.ListFilter{IsRead: &unread})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		list, err := s.ListByUser(ctx, "u1", notification.ListFilter{Limit: 2, Skip: 1})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "n3", list[0].ID)

		list, err = s.ListByUser(ctx, "u1", notification.ListFilter{Skip: 99})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestMemoryStorage_MarkReadIdempotent(t *testing.T) {
	t.Parallel()

	s := notification.NewMemoryStorage()
	ctx := context.Background()
	seed(t, s, notification.Notification{
		ID: "n1", UserID: "u1", Type: notification.TypeSystemAlert,
		Title: "t", Message: "m", CreatedAt: time.Now(),
	})

	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	n, err := s.MarkRead(ctx, "n1", first)
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	require.NotNil(t, n.ReadAt)
	assert.Equal(t, first, *n.ReadAt)

	// Second mark must not move the original readAt.
	again, err := s.MarkRead(ctx, "n1", first.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, again.IsRead)
	assert.Equal(t, first, *again.ReadAt)

	_, err = s.MarkRead(ctx, "missing", first)
	assert.ErrorIs(t, err, notification.ErrNotFound)
}

func TestMemoryStorage_MarkAllRead(t *testing.T) {
	t.Parallel()

	s := notification.NewMemoryStorage()
	ctx := context.Background()
	now := time.Now()

	for i := range 3 {
		seed(t, s, notification.Notification{
			ID: fmt.Sprintf("unread%d", i), UserID: "u1",
			Type: notification.TypeParcelUpdate, Title: "t", Message: "m", CreatedAt: now,
		})
	}
	for i := range 2 {
		seed(t, s, notification.Notification{
			ID: fmt.Sprintf("read%d", i), UserID: "u1", IsRead: true,
			Type: notification.TypeParcelUpdate, Title: "t", Message: "m", CreatedAt: now,
		})
	}

	count, err := s.MarkAllRead(ctx, "u1", now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = s.MarkAllRead(ctx, "u1", now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count, "second pass has nothing left to mark")

	unread, err := s.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)
}

func TestMemoryStorage_DeleteReadBefore(t *testing.T) {
	t.Parallel()

	s := notification.NewMemoryStorage()
	ctx := context.Background()
	now := time.Now()
	cutoff := now.AddDate(0, 0, -30)

	seed(t, s, notification.Notification{
		ID: "old-read", UserID: "u1", IsRead: true,
		Type: notification.TypeParcelUpdate, Title: "t", Message: "m",
		CreatedAt: now.AddDate(0, 0, -31),
	})
	seed(t, s, notification.Notification{
		ID: "old-unread", UserID: "u1",
		Type: notification.TypeParcelUpdate, Title: "t", Message: "m",
		CreatedAt: now.AddDate(0, 0, -31),
	})
	seed(t, s, notification.Notification{
		ID: "recent-read", UserID: "u1", IsRead: true,
		Type: notification.TypeParcelUpdate, Title: "t", Message: "m",
		CreatedAt: now.AddDate(0, 0, -5),
	})

	count, err := s.DeleteReadBefore(ctx, "u1", cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = s.Get(ctx, "old-read")
	assert.ErrorIs(t, err, notification.ErrNotFound)

	_, err = s.Get(ctx, "old-unread")
	assert.NoError(t, err, "unread notifications are never auto-deleted")

	_, err = s.Get(ctx, "recent-read")
	assert.NoError(t, err)
}

func TestMemoryStorage_ListPending(t *testing.T) {
	t.Parallel()

	s := notification.NewMemoryStorage()
	ctx := context.Background()
	base := time.Now()

	seed(t, s, notification.Notification{
		ID: "p2", UserID: "u1", Type: notification.TypeParcelUpdate,
		Title: "t", Message: "m", CreatedAt: base.Add(2 * time.Minute),
		Channels: []notification.Channel{notification.ChannelEmail},
	})
	seed(t, s, notification.Notification{
		ID: "p1", UserID: "u1", Type: notification.TypeParcelUpdate,
		Title: "t", Message: "m", CreatedAt: base.Add(time.Minute),
		Channels: []notification.Channel{notification.ChannelSMS},
	})
	sent := notification.Notification{
		ID: "done", UserID: "u1", Type: notification.TypeParcelUpdate,
		Title: "t", Message: "m", CreatedAt: base, IsSent: true,
	}
	seed(t, s, sent)

	t.Run("oldest first, unsent only", func(t *testing.T) {
		list, err := s.ListPending(ctx, "", 100)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "p1", list[0].ID)
		assert.Equal(t, "p2", list[1].ID)
	})

	t.Run("channel filter", func(t *testing.T) {
		list, err := s.ListPending(ctx, notification.ChannelEmail, 100)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "p2", list[0].ID)
	})

	t.Run("limit applies", func(t *testing.T) {
		list, err := s.ListPending(ctx, "", 1)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestMemoryStorage_ListByEntity(t *testing.T) {
	t.Parallel()

	s := notification.NewMemoryStorage()
	ctx := context.Background()
	base := time.Now()

	for i := range 3 {
		seed(t, s, notification.Notification{
			ID: fmt.Sprintf("e%d", i), UserID: "u1",
			Type: notification.TypeParcelUpdate, Title: "t", Message: "m",
			EntityType: notification.EntityParcel, EntityID: "parcel-1",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	seed(t, s, notification.Notification{
		ID: "other-entity", UserID: "u1",
		Type: notification.TypeWarehouseUpdate, Title: "t", Message: "m",
		EntityType: notification.EntityWarehouse, EntityID: "wh-1",
		CreatedAt: base,
	})

	list, err := s.ListByEntity(ctx, notification.EntityParcel, "parcel-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt),
			"byEntity results must be non-increasing by createdTimestamp")
	}
}

func TestMemoryStorage_StatsByType(t *testing.T) {
	t.Parallel()

	s := notification.NewMemoryStorage()
	ctx := context.Background()
	now := time.Now()

	seed(t, s, notification.Notification{ID: "a", UserID: "u1", Type: notification.TypeParcelUpdate, Title: "t", Message: "m", CreatedAt: now})
	seed(t, s, notification.Notification{ID: "b", UserID: "u1", Type: notification.TypeParcelUpdate, Title: "t", Message: "m", CreatedAt: now, IsRead: true})
	seed(t, s, notification.Notification{ID: "c", UserID: "u1", Type: notification.TypeSystemAlert, Title: "t", Message: "m", CreatedAt: now})

	stats, err := s.StatsByType(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, notification.Stats{Total: 2, Unread: 1}, stats[notification.TypeParcelUpdate])
	assert.Equal(t, notification.Stats{Total: 1, Unread: 1}, stats[notification.TypeSystemAlert])
	assert.NotContains(t, stats, notification.TypePaymentUpdate)
}
