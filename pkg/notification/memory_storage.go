package notification

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing; production uses MongoStorage.
type MemoryStorage struct {
	byID map[string]Notification
	mu   sync.RWMutex
}

// NewMemoryStorage creates a new in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{byID: make(map[string]Notification)}
}

func (s *MemoryStorage) Insert(ctx context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		return errors.New("notification ID is required")
	}
	if _, exists := s.byID[n.ID]; exists {
		return errors.New("duplicate notification ID")
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	s.byID[n.ID] = n
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, exists := s.byID[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (s *MemoryStorage) ListByUser(ctx context.Context, userID string, f ListFilter) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []Notification
	for _, n := range s.byID {
		if n.UserID != userID {
			continue
		}
		if f.IsRead != nil && n.IsRead != *f.IsRead {
			continue
		}
		if f.IsSent != nil && n.IsSent != *f.IsSent {
			continue
		}
		if f.Type != "" && n.Type != f.Type {
			continue
		}
		filtered = append(filtered, n)
	}

	sortByCreated(filtered, false)
	return paginate(filtered, f.Skip, f.Limit), nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, n := range s.byID {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, id string, at time.Time) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.byID[id]
	if !exists {
		return nil, ErrNotFound
	}
	if !n.IsRead {
		n.IsRead = true
		readAt := at
		n.ReadAt = &readAt
		s.byID[id] = n
	}
	return &n, nil
}

func (s *MemoryStorage) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for id, n := range s.byID {
		if n.UserID != userID || n.IsRead {
			continue
		}
		n.IsRead = true
		readAt := at
		n.ReadAt = &readAt
		s.byID[id] = n
		count++
	}
	return count, nil
}

func (s *MemoryStorage) MarkSent(ctx context.Context, id string, at time.Time) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.byID[id]
	if !exists {
		return nil, ErrNotFound
	}
	if !n.IsSent {
		n.IsSent = true
		sentAt := at
		n.SentAt = &sentAt
		s.byID[id] = n
	}
	return &n, nil
}

func (s *MemoryStorage) Update(ctx context.Context, id string, fields UpdateFields) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.byID[id]
	if !exists {
		return nil, ErrNotFound
	}

	if fields.Title != nil {
		n.Title = *fields.Title
	}
	if fields.Message != nil {
		n.Message = *fields.Message
	}
	if fields.Type != nil {
		n.Type = *fields.Type
	}
	if fields.Channels != nil {
		n.Channels = *fields.Channels
	}
	if fields.EntityType != nil {
		n.EntityType = *fields.EntityType
	}
	if fields.EntityID != nil {
		n.EntityID = *fields.EntityID
	}

	s.byID[id] = n
	return &n, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[id]; !exists {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *MemoryStorage) DeleteReadBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for id, n := range s.byID {
		if n.UserID == userID && n.IsRead && n.CreatedAt.Before(cutoff) {
			delete(s.byID, id)
			count++
		}
	}
	return count, nil
}

func (s *MemoryStorage) ListPending(ctx context.Context, channel Channel, limit int64) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []Notification
	for _, n := range s.byID {
		if n.IsSent {
			continue
		}
		if channel != "" && !n.HasChannel(channel) {
			continue
		}
		pending = append(pending, n)
	}

	sortByCreated(pending, true)
	return paginate(pending, 0, limit), nil
}

func (s *MemoryStorage) ListByEntity(ctx context.Context, entityType EntityType, entityID string) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Notification
	for _, n := range s.byID {
		if n.EntityType == entityType && n.EntityID == entityID {
			matched = append(matched, n)
		}
	}

	sortByCreated(matched, false)
	return matched, nil
}

func (s *MemoryStorage) StatsByType(ctx context.Context, userID string) (map[Type]Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[Type]Stats)
	for _, n := range s.byID {
		if n.UserID != userID {
			continue
		}
		st := stats[n.Type]
		st.Total++
		if !n.IsRead {
			st.Unread++
		}
		stats[n.Type] = st
	}
	return stats, nil
}

func sortByCreated(list []Notification, ascending bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if ascending {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

func paginate(list []Notification, skip, limit int64) []Notification {
	if skip >= int64(len(list)) {
		return []Notification{}
	}
	list = list[skip:]
	if limit > 0 && limit < int64(len(list)) {
		list = list[:limit]
	}
	return list
}
