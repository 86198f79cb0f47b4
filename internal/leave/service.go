package leave

import (
	"context"
	"log/slog"

	"github.com/pushparaj09/medishift-ai/internal/core/events"
	"github.com/pushparaj09/medishift-ai/internal/employee"
)

// Repository defines the data access methods for leave requests.
type Repository interface {
	Create(r *Request) error
	GetByID(id string) (*Request, error)
	List() ([]*Request, error)
	ListByEmployee(employeeID string) ([]*Request, error)
	Update(r *Request) error
}

// Directory resolves employees for decision notifications.
type Directory interface {
	GetEmployee(id string) (*employee.Employee, error)
}

// Service handles leave request business logic.
type Service struct {
	repo      Repository
	directory Directory
	bus       *events.EventBus
	logger    *slog.Logger
}

func NewService(repo Repository, directory Directory, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		bus:       bus,
		logger:    logger,
	}
}

// Submit validates and records a new pending leave request. An invalid
// range creates no record.
func (s *Service) Submit(ctx context.Context, employeeID string, dto SubmitLeaveDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("leave validation failed", "error", err, "employee_id", employeeID)
		return nil, err
	}

	if _, err := s.directory.GetEmployee(employeeID); err != nil {
		s.logger.Error("leave rejected: unknown employee", "employee_id", employeeID)
		return nil, employee.ErrNotFound
	}

	request := &Request{
		EmployeeID: employeeID,
		StartDate:  dto.StartDate,
		EndDate:    dto.EndDate,
		Reason:     dto.Reason,
		Status:     StatusPending,
	}

	if err := s.repo.Create(request); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("leave request submitted",
		"leave_id", request.ID,
		"employee_id", employeeID,
		"start", dto.StartDate,
		"end", dto.EndDate)

	if err := s.bus.PublishSync(ctx, events.LeaveSubmitted(employeeID)); err != nil {
		s.logger.Error("failed to publish leave submitted event", "error", err, "leave_id", request.ID)
	}

	return request, nil
}

// ListAll returns every leave request, newest first.
func (s *Service) ListAll() ([]*Request, error) {
	requests, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err)
		return nil, err
	}
	return requests, nil
}

// ListForEmployee returns one employee's leave requests, newest first.
func (s *Service) ListForEmployee(employeeID string) ([]*Request, error) {
	requests, err := s.repo.ListByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err, "employee_id", employeeID)
		return nil, err
	}
	return requests, nil
}

// Approve grants a pending request. The requester is notified; if the
// requester is a doctor a coverage warning is broadcast.
func (s *Service) Approve(ctx context.Context, id string) (*Request, error) {
	request, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if request.Decided() {
		s.logger.Warn("cannot approve leave in current status", "leave_id", id, "status", request.Status)
		return nil, ErrDecided
	}

	request.Status = StatusApproved
	if err := s.repo.Update(request); err != nil {
		s.logger.Error("failed to update leave request", "error", err, "leave_id", id)
		return nil, err
	}

	name := ""
	isDoctor := false
	if emp, err := s.directory.GetEmployee(request.EmployeeID); err == nil {
		name = emp.Name
		isDoctor = emp.IsDoctor()
	}

	s.logger.Info("leave approved", "leave_id", id, "employee_id", request.EmployeeID)

	event := events.LeaveApproved(request.EmployeeID, name, request.StartDate, request.EndDate, isDoctor)
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.logger.Error("failed to publish leave approved event", "error", err, "leave_id", id)
	}

	return request, nil
}

// Reject declines a pending request and alerts the requester.
func (s *Service) Reject(ctx context.Context, id string) (*Request, error) {
	request, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if request.Decided() {
		s.logger.Warn("cannot reject leave in current status", "leave_id", id, "status", request.Status)
		return nil, ErrDecided
	}

	request.Status = StatusRejected
	if err := s.repo.Update(request); err != nil {
		s.logger.Error("failed to update leave request", "error", err, "leave_id", id)
		return nil, err
	}

	s.logger.Info("leave rejected", "leave_id", id, "employee_id", request.EmployeeID)

	event := events.LeaveRejected(request.EmployeeID, request.StartDate, request.EndDate)
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.logger.Error("failed to publish leave rejected event", "error", err, "leave_id", id)
	}

	return request, nil
}
