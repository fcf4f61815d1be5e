package preference

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shipfwd/notifyd/pkg/notification"
)

// MemoryStorage is an in-memory implementation of the Storage interface,
// keyed by userID. Suitable for development and testing.
type MemoryStorage struct {
	byUser map[string]Preference
	mu     sync.RWMutex
}

// NewMemoryStorage creates a new in-memory preference storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{byUser: make(map[string]Preference)}
}

func (s *MemoryStorage) Get(ctx context.Context, userID string) (*Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.byUser[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (s *MemoryStorage) List(ctx context.Context) ([]Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Preference, 0, len(s.byUser))
	for _, p := range s.byUser {
		list = append(list, *clone(p))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UserID < list[j].UserID
	})
	return list, nil
}

func (s *MemoryStorage) Insert(ctx context.Context, p Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.UserID == "" {
		return errors.New("preference userID is required")
	}
	if _, exists := s.byUser[p.UserID]; exists {
		return ErrAlreadyExists
	}

	s.byUser[p.UserID] = *clone(p)
	return nil
}

func (s *MemoryStorage) Replace(ctx context.Context, p Preference) (*Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.UserID == "" {
		return nil, errors.New("preference userID is required")
	}
	if existing, ok := s.byUser[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}

	s.byUser[p.UserID] = *clone(p)
	return clone(p), nil
}

func (s *MemoryStorage) SetCategory(ctx context.Context, userID string, t notification.Type, channels []notification.Channel, at time.Time) (*Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.byUser[userID]
	if !exists {
		return nil, ErrNotFound
	}

	updated := *clone(p)
	if updated.Preferences == nil {
		updated.Preferences = make(map[notification.Type][]notification.Channel)
	}
	updated.Preferences[t] = append([]notification.Channel{}, channels...)
	updated.UpdatedAt = at

	s.byUser[userID] = updated
	return clone(updated), nil
}

func (s *MemoryStorage) SetDoNotDisturb(ctx context.Context, userID string, dnd DoNotDisturb, at time.Time) (*Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.byUser[userID]
	if !exists {
		return nil, ErrNotFound
	}

	updated := *clone(p)
	updated.DoNotDisturb = dnd
	updated.UpdatedAt = at

	s.byUser[userID] = updated
	return clone(updated), nil
}

func (s *MemoryStorage) Delete(ctx context.Context, userID string) (*Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.byUser[userID]
	if !exists {
		return nil, ErrNotFound
	}
	delete(s.byUser, userID)
	return clone(p), nil
}

// clone deep-copies the preferences map so callers cannot mutate stored state.
func clone(p Preference) *Preference {
	copied := p
	if p.Preferences != nil {
		copied.Preferences = make(map[notification.Type][]notification.Channel, len(p.Preferences))
		for t, channels := range p.Preferences {
			copied.Preferences[t] = append([]notification.Channel{}, channels...)
		}
	}
	return &copied
}
