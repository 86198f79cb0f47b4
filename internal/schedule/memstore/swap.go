package memstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pushparaj09/medishift-ai/internal/schedule"
)

// SwapStore holds swap requests in creation order.
type SwapStore struct {
	mu    sync.RWMutex
	byID  map[string]*schedule.SwapRequest
	order []string
}

func NewSwapStore() *SwapStore {
	return &SwapStore{
		byID: make(map[string]*schedule.SwapRequest),
	}
}

func (s *SwapStore) Create(r *schedule.SwapRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	cp := *r
	s.byID[r.ID] = &cp
	s.order = append(s.order, r.ID)
	return nil
}

func (s *SwapStore) GetByID(id string) (*schedule.SwapRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, schedule.ErrSwapNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *SwapStore) List() ([]*schedule.SwapRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*schedule.SwapRequest, 0, len(s.order))
	for _, id := range s.order {
		if r, ok := s.byID[id]; ok {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *SwapStore) Update(r *schedule.SwapRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[r.ID]; !ok {
		return schedule.ErrSwapNotFound
	}
	cp := *r
	s.byID[r.ID] = &cp
	return nil
}
