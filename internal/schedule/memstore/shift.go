package memstore

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pushparaj09/medishift-ai/internal/schedule"
)

type shiftKey struct {
	employeeID string
	date       string
}

// ShiftStore keeps at most one shift per employee per calendar day.
type ShiftStore struct {
	mu     sync.RWMutex
	shifts map[shiftKey]*schedule.Shift
}

func NewShiftStore() *ShiftStore {
	return &ShiftStore{
		shifts: make(map[shiftKey]*schedule.Shift),
	}
}

func (s *ShiftStore) Get(employeeID, date string) (*schedule.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shift, ok := s.shifts[shiftKey{employeeID, date}]
	if !ok {
		return nil, schedule.ErrShiftNotFound
	}
	cp := *shift
	return &cp, nil
}

// Upsert overwrites the cell's shift type, keeping the existing shift
// ID when the cell was already assigned.
func (s *ShiftStore) Upsert(employeeID, date string, t schedule.ShiftType) (*schedule.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := shiftKey{employeeID, date}
	if existing, ok := s.shifts[key]; ok {
		existing.Type = t
		cp := *existing
		return &cp, nil
	}

	shift := &schedule.Shift{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
		Type:       t,
	}
	s.shifts[key] = shift
	cp := *shift
	return &cp, nil
}

func (s *ShiftStore) Delete(employeeID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.shifts, shiftKey{employeeID, date})
	return nil
}

// ListForDates returns shifts for the given days ordered by date then
// employee, so week views render deterministically.
func (s *ShiftStore) ListForDates(dates []string) ([]*schedule.Shift, error) {
	wanted := make(map[string]bool, len(dates))
	for _, d := range dates {
		wanted[d] = true
	}

	s.mu.RLock()
	out := make([]*schedule.Shift, 0)
	for _, shift := range s.shifts {
		if wanted[shift.Date] {
			cp := *shift
			out = append(out, &cp)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}
