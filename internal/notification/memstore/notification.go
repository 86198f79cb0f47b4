package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pushparaj09/medishift-ai/internal/notification"
)

// NotificationStore holds persistent per-user notifications.
type NotificationStore struct {
	mu   sync.RWMutex
	byID map[string]*notification.UserNotification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		byID: make(map[string]*notification.UserNotification),
	}
}

func (s *NotificationStore) Add(n *notification.UserNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	cp := *n
	s.byID[n.ID] = &cp
	return nil
}

// ListForUser returns one user's notifications, newest first.
func (s *NotificationStore) ListForUser(userID string) ([]*notification.UserNotification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*notification.UserNotification, 0)
	for _, n := range s.byID {
		if n.TargetUserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *NotificationStore) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.byID[id]
	if !ok {
		return notification.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}
