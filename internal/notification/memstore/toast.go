package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pushparaj09/medishift-ai/internal/notification"
)

// ToastStore keeps live toasts and expires each one ttl after it was
// added. The store owns the expiry timers: dismissing a toast cancels
// its timer and Close stops them all, so nothing fires after shutdown.
type ToastStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	toasts map[string]*notification.Toast
	timers map[string]*time.Timer
	closed bool
}

func NewToastStore(ttl time.Duration) *ToastStore {
	if ttl <= 0 {
		ttl = notification.DefaultToastTTL
	}
	return &ToastStore{
		ttl:    ttl,
		toasts: make(map[string]*notification.Toast),
		timers: make(map[string]*time.Timer),
	}
}

func (s *ToastStore) Add(t *notification.Toast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	cp := *t
	s.toasts[t.ID] = &cp

	id := t.ID
	s.timers[id] = time.AfterFunc(s.ttl, func() {
		s.expire(id)
	})
	return nil
}

func (s *ToastStore) expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.toasts, id)
	delete(s.timers, id)
}

// Remove dismisses a toast early and cancels its expiry timer.
func (s *ToastStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.toasts[id]; !ok {
		return notification.ErrToastNotFound
	}
	delete(s.toasts, id)
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	return nil
}

func (s *ToastStore) List() ([]*notification.Toast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*notification.Toast, 0, len(s.toasts))
	for _, t := range s.toasts {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Close stops all pending expiry timers. Further Adds are ignored.
func (s *ToastStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
