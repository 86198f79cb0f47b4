package employee

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pushparaj09/medishift-ai/internal/core/events"
)

// Repository defines the data access methods for the staff directory.
type Repository interface {
	Create(e *Employee) error
	GetByID(id string) (*Employee, error)
	GetByUsername(username string) (*Employee, error)
	GetByIdentifier(identifier string) (*Employee, error)
	List() ([]*Employee, error)
	Update(e *Employee) error
	Delete(id string) error
}

// ShiftLookup answers whether an employee has a working shift on a
// given calendar day. Implemented by the schedule service.
type ShiftLookup interface {
	IsOff(employeeID, date string) bool
}

// Service handles staff directory business logic.
type Service struct {
	repo       Repository
	shifts     ShiftLookup
	bus        *events.EventBus
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, shifts ShiftLookup, bus *events.EventBus, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		shifts:     shifts,
		bus:        bus,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// SetShiftLookup wires the schedule service in after construction. The
// schedule service itself needs the directory, so one side attaches late.
func (s *Service) SetShiftLookup(shifts ShiftLookup) {
	s.shifts = shifts
}

func (s *Service) ListEmployees() ([]*Employee, error) {
	employees, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

func (s *Service) GetEmployee(id string) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, ErrNotFound
	}
	return emp, nil
}

func (s *Service) GetByUsername(username string) (*Employee, error) {
	return s.repo.GetByUsername(username)
}

// GetByIdentifier looks up an employee by email or username. Used by
// the password reset flow.
func (s *Service) GetByIdentifier(identifier string) (*Employee, error) {
	return s.repo.GetByIdentifier(identifier)
}

func (s *Service) Onboard(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err)
		return nil, err
	}

	if existing, _ := s.repo.GetByUsername(dto.Username); existing != nil {
		s.logger.Warn("onboarding rejected: username taken", "username", dto.Username)
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	emp := &Employee{
		Name:          dto.Name,
		Role:          dto.Role,
		Department:    dto.Department,
		CurrentStatus: StatusAvailable,
		DistanceKM:    dto.DistanceKM,
		Email:         dto.Email,
		PhoneNumber:   dto.PhoneNumber,
		AvatarURL:     dto.AvatarURL,
		Username:      dto.Username,
		PasswordHash:  string(hash),
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err)
		return nil, err
	}

	s.logger.Info("employee onboarded", "employee_id", emp.ID, "role", emp.Role, "department", emp.Department)

	if err := s.bus.PublishSync(ctx, events.EmployeeOnboarded(emp.Name)); err != nil {
		s.logger.Error("failed to publish onboarded event", "error", err, "employee_id", emp.ID)
	}

	return emp, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee update validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if dto.Name != "" {
		emp.Name = dto.Name
	}
	if dto.Role != "" {
		emp.Role = dto.Role
	}
	if dto.Department != "" {
		emp.Department = dto.Department
	}
	if dto.DistanceKM != nil {
		emp.DistanceKM = *dto.DistanceKM
	}
	if dto.Email != "" {
		emp.Email = dto.Email
	}
	if dto.PhoneNumber != "" {
		emp.PhoneNumber = dto.PhoneNumber
	}
	if dto.AvatarURL != "" {
		emp.AvatarURL = dto.AvatarURL
	}

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("employee profile updated", "employee_id", id)

	if err := s.bus.PublishSync(ctx, events.EmployeeUpdated(emp.Name)); err != nil {
		s.logger.Error("failed to publish updated event", "error", err, "employee_id", id)
	}

	return emp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, dto UpdateStatusDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("status validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	emp.CurrentStatus = dto.Status
	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee status", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("employee status changed", "employee_id", id, "status", dto.Status)

	if err := s.bus.PublishSync(ctx, events.EmployeeStatusChanged(string(dto.Status))); err != nil {
		s.logger.Error("failed to publish status event", "error", err, "employee_id", id)
	}

	return emp, nil
}

// UpdateCredentials changes the username and/or password of an account.
// Empty password means username-only change.
func (s *Service) UpdateCredentials(ctx context.Context, id string, dto UpdateCredentialsDTO) error {
	if err := dto.Validate(); err != nil {
		s.logger.Error("credentials validation failed", "error", err, "employee_id", id)
		return err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}

	if dto.Username != "" && dto.Username != emp.Username {
		if existing, _ := s.repo.GetByUsername(dto.Username); existing != nil && existing.ID != id {
			return ErrDuplicateUsername
		}
		emp.Username = dto.Username
	}

	if dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err, "employee_id", id)
			return err
		}
		emp.PasswordHash = string(hash)
	}

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update credentials", "error", err, "employee_id", id)
		return err
	}

	s.logger.Info("credentials updated", "employee_id", id)

	if err := s.bus.PublishSync(ctx, events.CredentialsUpdated()); err != nil {
		s.logger.Error("failed to publish credentials event", "error", err, "employee_id", id)
	}

	return nil
}

// SetPasswordHash stores an already-hashed password. Used by the
// password reset flow, which hashes through the auth service.
func (s *Service) SetPasswordHash(id, hash string) error {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return ErrNotFound
	}
	emp.PasswordHash = hash
	return s.repo.Update(emp)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return err
	}

	s.logger.Info("employee removed", "employee_id", id)

	if err := s.bus.PublishSync(ctx, events.EmployeeRemoved()); err != nil {
		s.logger.Error("failed to publish removed event", "error", err, "employee_id", id)
	}

	return nil
}

// NearestAvailable returns staff eligible for an emergency call-in on
// the given day, nearest first. Eligible means not in surgery and
// either currently available or off shift that day.
func (s *Service) NearestAvailable(date string) ([]*Employee, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	employees, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list employees for dispatch", "error", err)
		return nil, err
	}

	eligible := make([]*Employee, 0, len(employees))
	for _, emp := range employees {
		if !emp.Dispatchable() {
			continue
		}
		offToday := s.shifts != nil && s.shifts.IsOff(emp.ID, date)
		if emp.CurrentStatus == StatusAvailable || offToday {
			eligible = append(eligible, emp)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].DistanceKM < eligible[j].DistanceKM
	})

	return eligible, nil
}

// Dispatch alerts the nearest eligible staff for an emergency and
// returns who was called in.
func (s *Service) Dispatch(ctx context.Context, dto DispatchDTO) ([]*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("dispatch validation failed", "error", err)
		return nil, err
	}

	eligible, err := s.NearestAvailable(dto.Date)
	if err != nil {
		return nil, err
	}

	if len(eligible) > dto.Count {
		eligible = eligible[:dto.Count]
	}

	for _, emp := range eligible {
		if err := s.bus.PublishSync(ctx, events.EmergencyDispatched(emp.ID, emp.Name)); err != nil {
			s.logger.Error("failed to publish dispatch event", "error", err, "employee_id", emp.ID)
		}
	}

	if err := s.bus.PublishSync(ctx, events.EmergencyDispatchCompleted(len(eligible))); err != nil {
		s.logger.Error("failed to publish dispatch completed event", "error", err)
	}

	s.logger.Info("emergency dispatch issued", "date", dto.Date, "dispatched", len(eligible))

	return eligible, nil
}
