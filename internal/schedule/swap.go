package schedule

import (
	"sync"
	"time"
)

type SwapStatus string

const (
	SwapPending  SwapStatus = "Pending"
	SwapApproved SwapStatus = "Approved"
	SwapRejected SwapStatus = "Rejected"
)

// SwapRequest proposes exchanging two schedule cells. Approved and
// Rejected are terminal.
type SwapRequest struct {
	ID                  string     `json:"id"`
	RequestingEmployee  string     `json:"requestingEmployeeId"`
	TargetEmployee      string     `json:"targetEmployeeId"`
	RequestingDate      string     `json:"requestingDate"`
	TargetDate          string     `json:"targetDate"`
	RequestingShiftType ShiftType  `json:"requestingShiftType"`
	TargetShiftType     ShiftType  `json:"targetShiftType"`
	Status              SwapStatus `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func (r *SwapRequest) Decided() bool {
	return r.Status != SwapPending
}

// CellRef identifies one schedule grid cell together with the shift
// type it held when selected.
type CellRef struct {
	EmployeeID string    `json:"employeeId"`
	Date       string    `json:"date"`
	Type       ShiftType `json:"type"`
}

// SameCell ignores the shift type: reselecting the same employee and
// day cancels the selection even if the shift changed in between.
func (c CellRef) SameCell(other CellRef) bool {
	return c.EmployeeID == other.EmployeeID && c.Date == other.Date
}

type SelectionState string

const (
	SelectionIdle           SelectionState = "Idle"
	SelectionAwaitingSource SelectionState = "AwaitingSource"
	SelectionAwaitingTarget SelectionState = "AwaitingTarget"
)

type SelectionOutcome string

const (
	OutcomeSourceSelected SelectionOutcome = "SourceSelected"
	OutcomeCancelled      SelectionOutcome = "Cancelled"
	OutcomeProposed       SelectionOutcome = "Proposed"
)

// SwapCoordinator tracks each user's two-click swap selection. Entering
// swap mode moves the user to AwaitingSource; the first cell selection
// moves to AwaitingTarget; reselecting the same cell cancels back to
// AwaitingSource; a different cell completes the proposal and returns
// the user to Idle.
type SwapCoordinator struct {
	mu      sync.Mutex
	sources map[string]*CellRef
}

func NewSwapCoordinator() *SwapCoordinator {
	return &SwapCoordinator{
		sources: make(map[string]*CellRef),
	}
}

func (c *SwapCoordinator) EnterSwapMode(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[userID] = nil
}

func (c *SwapCoordinator) ExitSwapMode(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, userID)
}

func (c *SwapCoordinator) State(userID string) SelectionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	source, inMode := c.sources[userID]
	switch {
	case !inMode:
		return SelectionIdle
	case source == nil:
		return SelectionAwaitingSource
	default:
		return SelectionAwaitingTarget
	}
}

// Select advances the selection state machine. On OutcomeProposed the
// returned CellRef is the source cell and the user leaves swap mode.
func (c *SwapCoordinator) Select(userID string, cell CellRef) (SelectionOutcome, *CellRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	source, inMode := c.sources[userID]
	if !inMode {
		return "", nil, ErrNotInSwapMode
	}

	if source == nil {
		selected := cell
		c.sources[userID] = &selected
		return OutcomeSourceSelected, &selected, nil
	}

	if source.SameCell(cell) {
		c.sources[userID] = nil
		return OutcomeCancelled, nil, nil
	}

	delete(c.sources, userID)
	return OutcomeProposed, source, nil
}
