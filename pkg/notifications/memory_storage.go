package notifications

import (
	"slices"
	"sync"
	"time"
)

// ListOptions provides filtering and pagination options for listing notifications.
type ListOptions struct {
	Limit      int       // Maximum number of notifications to return (0 = no limit)
	Offset     int       // Number of notifications to skip for pagination
	OnlyUnread bool      // When true, only return unread notifications
	Types      []Type    // If specified, only return notifications of these types
	Since      time.Time // If non-zero, only return notifications at or after this time
}

// MemoryStorage is the live notification set, kept in arrival order and
// keyed by id. All methods are safe for concurrent use.
type MemoryStorage struct {
	byID  map[string]*Notification
	order []string
	mu    sync.RWMutex
}

// NewMemoryStorage returns an empty notification list.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{byID: make(map[string]*Notification)}
}

// Create stores n. Ids are unique within the set.
func (s *MemoryStorage) Create(n Notification) error {
	if n.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[n.ID]; exists {
		return ErrDuplicateNotification
	}
	s.byID[n.ID] = &n
	s.order = append(s.order, n.ID)
	return nil
}

// Get returns the notification with id or ErrNotificationNotFound.
func (s *MemoryStorage) Get(id string) (Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.byID[id]
	if !ok {
		return Notification{}, ErrNotificationNotFound
	}
	return *n, nil
}

// List returns matching notifications, newest first.
func (s *MemoryStorage) List(opts ListOptions) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Notification, 0, len(s.order))
	skipped := 0
	for i := len(s.order) - 1; i >= 0; i-- {
		n := s.byID[s.order[i]]
		if opts.OnlyUnread && n.IsRead {
			continue
		}
		if len(opts.Types) > 0 && !slices.Contains(opts.Types, n.Type) {
			continue
		}
		if !opts.Since.IsZero() && n.Timestamp.Before(opts.Since) {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		out = append(out, *n)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}

// MarkRead flips the given notifications to read and returns the ids that
// actually changed. Read notifications never become unread again.
func (s *MemoryStorage) MarkRead(ids ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []string
	for _, id := range ids {
		if n, ok := s.byID[id]; ok && !n.IsRead {
			n.IsRead = true
			changed = append(changed, id)
		}
	}
	return changed
}

// MarkAllRead flips every unread notification and returns their ids.
func (s *MemoryStorage) MarkAllRead() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []string
	for _, id := range s.order {
		if n := s.byID[id]; !n.IsRead {
			n.IsRead = true
			changed = append(changed, id)
		}
	}
	return changed
}

// Delete removes the given notifications and returns the ids that existed.
func (s *MemoryStorage) Delete(ids ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for _, id := range ids {
		if _, ok := s.byID[id]; ok {
			delete(s.byID, id)
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		s.order = slices.DeleteFunc(s.order, func(id string) bool {
			_, ok := s.byID[id]
			return !ok
		})
	}
	return removed
}

// Clear removes everything and returns how many notifications were dropped.
func (s *MemoryStorage) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.order)
	clear(s.byID)
	s.order = nil
	return n
}

// CountUnread scans the set; it is never cached.
func (s *MemoryStorage) CountUnread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.byID {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// Len returns the number of stored notifications.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
