package memstore

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pushparaj09/medishift-ai/internal/employee"
)

// EmployeeStore is an in-memory staff directory. Listing preserves
// insertion order so the roster renders stably.
type EmployeeStore struct {
	mu    sync.RWMutex
	byID  map[string]*employee.Employee
	order []string
}

func NewEmployeeStore() *EmployeeStore {
	return &EmployeeStore{
		byID: make(map[string]*employee.Employee),
	}
}

func (s *EmployeeStore) Create(e *employee.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	cp := *e
	s.byID[e.ID] = &cp
	s.order = append(s.order, e.ID)
	return nil
}

func (s *EmployeeStore) GetByID(id string) (*employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, employee.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *EmployeeStore) GetByUsername(username string) (*employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.byID {
		if e.Username == username {
			cp := *e
			return &cp, nil
		}
	}
	return nil, employee.ErrUsernameNotFound
}

// GetByIdentifier matches email or username, case-insensitively.
func (s *EmployeeStore) GetByIdentifier(identifier string) (*employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.byID {
		if strings.EqualFold(e.Email, identifier) || strings.EqualFold(e.Username, identifier) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, employee.ErrNotFound
}

func (s *EmployeeStore) List() ([]*employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*employee.Employee, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.byID[id]; ok {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *EmployeeStore) Update(e *employee.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[e.ID]; !ok {
		return employee.ErrNotFound
	}
	cp := *e
	s.byID[e.ID] = &cp
	return nil
}

func (s *EmployeeStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return employee.ErrNotFound
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
