package memstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pushparaj09/medishift-ai/internal/leave"
)

// LeaveStore holds leave requests, listed newest first.
type LeaveStore struct {
	mu    sync.RWMutex
	byID  map[string]*leave.Request
	order []string
}

func NewLeaveStore() *LeaveStore {
	return &LeaveStore{
		byID: make(map[string]*leave.Request),
	}
}

func (s *LeaveStore) Create(r *leave.Request) error {
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
	s.order = append([]string{r.ID}, s.order...)
	return nil
}

func (s *LeaveStore) GetByID(id string) (*leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, leave.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *LeaveStore) List() ([]*leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*leave.Request, 0, len(s.order))
	for _, id := range s.order {
		if r, ok := s.byID[id]; ok {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *LeaveStore) ListByEmployee(employeeID string) ([]*leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*leave.Request, 0)
	for _, id := range s.order {
		if r, ok := s.byID[id]; ok && r.EmployeeID == employeeID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *LeaveStore) Update(r *leave.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[r.ID]; !ok {
		return leave.ErrNotFound
	}
	cp := *r
	s.byID[r.ID] = &cp
	return nil
}
