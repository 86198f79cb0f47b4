package schedule

import (
	"context"
	"log/slog"

	"github.com/pushparaj09/medishift-ai/internal/core/events"
	"github.com/pushparaj09/medishift-ai/internal/employee"
)

// ShiftRepository defines the data access methods for schedule cells.
type ShiftRepository interface {
	Get(employeeID, date string) (*Shift, error)
	Upsert(employeeID, date string, t ShiftType) (*Shift, error)
	Delete(employeeID, date string) error
	ListForDates(dates []string) ([]*Shift, error)
}

// SwapRepository defines the data access methods for swap requests.
type SwapRepository interface {
	Create(r *SwapRequest) error
	GetByID(id string) (*SwapRequest, error)
	List() ([]*SwapRequest, error)
	Update(r *SwapRequest) error
}

// Directory is the slice of the staff directory the scheduler needs.
type Directory interface {
	GetEmployee(id string) (*employee.Employee, error)
	ListEmployees() ([]*employee.Employee, error)
}

// Service handles schedule business logic.
type Service struct {
	shifts      ShiftRepository
	swaps       SwapRepository
	directory   Directory
	coordinator *SwapCoordinator
	bus         *events.EventBus
	logger      *slog.Logger
}

func NewService(shifts ShiftRepository, swaps SwapRepository, directory Directory, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		shifts:      shifts,
		swaps:       swaps,
		directory:   directory,
		coordinator: NewSwapCoordinator(),
		bus:         bus,
		logger:      logger,
	}
}

// SetShift assigns a shift type to one schedule cell, replacing any
// existing assignment for that employee and day.
func (s *Service) SetShift(ctx context.Context, dto SetShiftDTO) (*Shift, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("shift validation failed", "error", err)
		return nil, err
	}

	emp, err := s.directory.GetEmployee(dto.EmployeeID)
	if err != nil {
		s.logger.Error("shift rejected: unknown employee", "employee_id", dto.EmployeeID)
		return nil, ErrUnknownStaff
	}

	shift, err := s.shifts.Upsert(dto.EmployeeID, dto.Date, dto.Type)
	if err != nil {
		s.logger.Error("failed to store shift", "error", err, "employee_id", dto.EmployeeID, "date", dto.Date)
		return nil, err
	}

	s.logger.Info("shift assigned",
		"employee_id", dto.EmployeeID,
		"date", dto.Date,
		"type", dto.Type)

	if dto.Type == ShiftOff && emp.IsDoctor() {
		if err := s.bus.PublishSync(ctx, events.DoctorMarkedOff(emp.Name, dto.Date)); err != nil {
			s.logger.Error("failed to publish doctor off event", "error", err, "employee_id", emp.ID)
		}
	}

	return shift, nil
}

// ShiftTypeFor returns the shift type for a cell, defaulting to Off
// when nothing is recorded.
func (s *Service) ShiftTypeFor(employeeID, date string) ShiftType {
	shift, err := s.shifts.Get(employeeID, date)
	if err != nil {
		return ShiftOff
	}
	return shift.Type
}

// IsOff reports whether the employee has no working shift that day.
// Satisfies the directory's shift lookup for emergency dispatch.
func (s *Service) IsOff(employeeID, date string) bool {
	return !s.ShiftTypeFor(employeeID, date).Working()
}

// WeekSchedule returns all recorded shifts for the 7 days starting at
// the given date.
func (s *Service) WeekSchedule(start string) (*WeekScheduleDTO, error) {
	dates, err := WeekDates(start)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shifts.ListForDates(dates)
	if err != nil {
		s.logger.Error("failed to list shifts", "error", err, "start", start)
		return nil, err
	}

	return &WeekScheduleDTO{Dates: dates, Shifts: shifts}, nil
}

// --- swap selection ---

func (s *Service) EnterSwapMode(userID string) SelectionState {
	s.coordinator.EnterSwapMode(userID)
	return s.coordinator.State(userID)
}

func (s *Service) ExitSwapMode(userID string) SelectionState {
	s.coordinator.ExitSwapMode(userID)
	return s.coordinator.State(userID)
}

func (s *Service) SelectionState(userID string) SelectionState {
	return s.coordinator.State(userID)
}

// SelectCell advances the caller's swap selection by one click. The
// second distinct cell completes a pending swap request.
func (s *Service) SelectCell(ctx context.Context, userID string, dto SelectCellDTO) (*SelectionResponseDTO, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("cell selection validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	if _, err := s.directory.GetEmployee(dto.EmployeeID); err != nil {
		return nil, ErrUnknownStaff
	}

	cell := CellRef{
		EmployeeID: dto.EmployeeID,
		Date:       dto.Date,
		Type:       s.ShiftTypeFor(dto.EmployeeID, dto.Date),
	}

	outcome, source, err := s.coordinator.Select(userID, cell)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case OutcomeSourceSelected:
		if err := s.bus.PublishSync(ctx, events.SwapSourceSelected()); err != nil {
			s.logger.Error("failed to publish selection event", "error", err, "user_id", userID)
		}
		return &SelectionResponseDTO{
			Outcome: outcome,
			State:   s.coordinator.State(userID),
			Source:  source,
		}, nil

	case OutcomeCancelled:
		if err := s.bus.PublishSync(ctx, events.SwapSelectionCancelled()); err != nil {
			s.logger.Error("failed to publish selection event", "error", err, "user_id", userID)
		}
		return &SelectionResponseDTO{
			Outcome: outcome,
			State:   s.coordinator.State(userID),
		}, nil
	}

	request := &SwapRequest{
		RequestingEmployee:  source.EmployeeID,
		TargetEmployee:      cell.EmployeeID,
		RequestingDate:      source.Date,
		TargetDate:          cell.Date,
		RequestingShiftType: source.Type,
		TargetShiftType:     cell.Type,
		Status:              SwapPending,
	}

	if err := s.swaps.Create(request); err != nil {
		s.logger.Error("failed to create swap request", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("swap proposed",
		"swap_id", request.ID,
		"requesting_employee", request.RequestingEmployee,
		"target_employee", request.TargetEmployee)

	if err := s.bus.PublishSync(ctx, events.SwapProposed()); err != nil {
		s.logger.Error("failed to publish swap proposed event", "error", err, "swap_id", request.ID)
	}

	return &SelectionResponseDTO{
		Outcome: outcome,
		State:   s.coordinator.State(userID),
		Request: request,
	}, nil
}

// --- swap decisions ---

func (s *Service) ListSwaps(status SwapStatus) ([]*SwapRequest, error) {
	requests, err := s.swaps.List()
	if err != nil {
		s.logger.Error("failed to list swap requests", "error", err)
		return nil, err
	}

	if status == "" {
		return requests, nil
	}

	filtered := make([]*SwapRequest, 0, len(requests))
	for _, r := range requests {
		if r.Status == status {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// ApproveSwap exchanges the two cells of a pending request: the
// requester takes the target's day and shift, the target takes the
// requester's.
func (s *Service) ApproveSwap(ctx context.Context, id string) (*SwapRequest, error) {
	request, err := s.swaps.GetByID(id)
	if err != nil {
		return nil, ErrSwapNotFound
	}

	if request.Decided() {
		s.logger.Warn("cannot approve swap in current status", "swap_id", id, "status", request.Status)
		return nil, ErrSwapDecided
	}

	if err := s.shifts.Delete(request.RequestingEmployee, request.RequestingDate); err != nil {
		return nil, err
	}
	if err := s.shifts.Delete(request.TargetEmployee, request.TargetDate); err != nil {
		return nil, err
	}
	if _, err := s.shifts.Upsert(request.RequestingEmployee, request.TargetDate, request.TargetShiftType); err != nil {
		return nil, err
	}
	if _, err := s.shifts.Upsert(request.TargetEmployee, request.RequestingDate, request.RequestingShiftType); err != nil {
		return nil, err
	}

	request.Status = SwapApproved
	if err := s.swaps.Update(request); err != nil {
		s.logger.Error("failed to update swap request", "error", err, "swap_id", id)
		return nil, err
	}

	requesterName := s.employeeName(request.RequestingEmployee)
	targetName := s.employeeName(request.TargetEmployee)

	s.logger.Info("swap approved", "swap_id", id)

	event := events.SwapApproved(
		request.RequestingEmployee, requesterName,
		request.TargetEmployee, targetName,
		request.RequestingDate, request.TargetDate)
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.logger.Error("failed to publish swap approved event", "error", err, "swap_id", id)
	}

	return request, nil
}

// RejectSwap marks a pending request rejected. The schedule is not
// touched.
func (s *Service) RejectSwap(ctx context.Context, id string) (*SwapRequest, error) {
	request, err := s.swaps.GetByID(id)
	if err != nil {
		return nil, ErrSwapNotFound
	}

	if request.Decided() {
		s.logger.Warn("cannot reject swap in current status", "swap_id", id, "status", request.Status)
		return nil, ErrSwapDecided
	}

	request.Status = SwapRejected
	if err := s.swaps.Update(request); err != nil {
		s.logger.Error("failed to update swap request", "error", err, "swap_id", id)
		return nil, err
	}

	s.logger.Info("swap rejected", "swap_id", id)

	event := events.SwapRejected(
		request.RequestingEmployee, request.TargetEmployee,
		request.RequestingDate, request.TargetDate)
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.logger.Error("failed to publish swap rejected event", "error", err, "swap_id", id)
	}

	return request, nil
}

func (s *Service) employeeName(id string) string {
	emp, err := s.directory.GetEmployee(id)
	if err != nil {
		return ""
	}
	return emp.Name
}
