package notification

import (
	"errors"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Toast is a transient broadcast message. Toasts expire on their own
// shortly after being pushed.
type Toast struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category string

const (
	CategorySystem  Category = "system"
	CategoryAlert   Category = "alert"
	CategorySuccess Category = "success"
)

// UserNotification is a persistent message addressed to one employee.
// It stays until marked read; marking read never removes it.
type UserNotification struct {
	ID           string    `json:"id"`
	TargetUserID string    `json:"targetUserId"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Category     Category  `json:"category"`
	Timestamp    time.Time `json:"timestamp"`
	IsRead       bool      `json:"isRead"`
}

// DefaultToastTTL is how long a toast stays visible before the store
// expires it.
const DefaultToastTTL = 5 * time.Second

// Domain errors
var (
	ErrToastNotFound        = errors.New("toast not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
