package notification

import "log/slog"

// ToastRepository defines the data access methods for live toasts.
type ToastRepository interface {
	Add(t *Toast) error
	Remove(id string) error
	List() ([]*Toast, error)
	Close()
}

// Repository defines the data access methods for persistent
// notifications.
type Repository interface {
	Add(n *UserNotification) error
	ListForUser(userID string) ([]*UserNotification, error)
	MarkRead(id string) error
}

// Service handles toast broadcast and per-user notification delivery.
type Service struct {
	toasts ToastRepository
	repo   Repository
	logger *slog.Logger
}

func NewService(toasts ToastRepository, repo Repository, logger *slog.Logger) *Service {
	return &Service{
		toasts: toasts,
		repo:   repo,
		logger: logger,
	}
}

// Push broadcasts a transient toast.
func (s *Service) Push(title, message string, severity Severity) (*Toast, error) {
	toast := &Toast{
		Title:    title,
		Message:  message,
		Severity: severity,
	}
	if err := s.toasts.Add(toast); err != nil {
		s.logger.Error("failed to push toast", "error", err, "title", title)
		return nil, err
	}

	s.logger.Info("toast pushed", "title", title, "severity", severity)
	return toast, nil
}

// Dismiss removes a toast before its timer expires it.
func (s *Service) Dismiss(id string) error {
	if err := s.toasts.Remove(id); err != nil {
		return err
	}
	s.logger.Debug("toast dismissed", "toast_id", id)
	return nil
}

func (s *Service) ActiveToasts() ([]*Toast, error) {
	return s.toasts.List()
}

// Send delivers a persistent notification to one employee.
func (s *Service) Send(targetUserID, title, message string, category Category) (*UserNotification, error) {
	n := &UserNotification{
		TargetUserID: targetUserID,
		Title:        title,
		Message:      message,
		Category:     category,
	}
	if err := s.repo.Add(n); err != nil {
		s.logger.Error("failed to send notification", "error", err, "target_user_id", targetUserID)
		return nil, err
	}

	s.logger.Info("notification sent", "target_user_id", targetUserID, "title", title, "category", category)
	return n, nil
}

// ListForUser returns one user's notifications, newest first.
func (s *Service) ListForUser(userID string) ([]*UserNotification, error) {
	notifications, err := s.repo.ListForUser(userID)
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err, "user_id", userID)
		return nil, err
	}
	return notifications, nil
}

func (s *Service) MarkRead(id string) error {
	if err := s.repo.MarkRead(id); err != nil {
		return err
	}
	s.logger.Debug("notification marked read", "notification_id", id)
	return nil
}

// Close stops the toast expiry timers. Call on shutdown.
func (s *Service) Close() {
	s.toasts.Close()
}
