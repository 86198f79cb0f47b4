package notification

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/pushparaj09/medishift-ai/internal"
	"github.com/pushparaj09/medishift-ai/internal/transport"
	"github.com/pushparaj09/medishift-ai/pkg/logger"
)

type ServiceAPI interface {
	ActiveToasts() ([]*Toast, error)
	Dismiss(id string) error
	ListForUser(userID string) ([]*UserNotification, error)
	MarkRead(id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListToasts(w http.ResponseWriter, r *http.Request) {
	toasts, err := h.Service.ActiveToasts()
	if err != nil {
		h.Logger.Error("ListToasts: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list toasts")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"toasts": toasts})
}

func (h *Handler) DismissToast(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Dismiss(id); err != nil {
		switch err {
		case ErrToastNotFound:
			h.WriteError(w, http.StatusNotFound, "toast not found")
		default:
			h.Logger.Error("DismissToast: service error", "error", err, "toast_id", id)
			h.WriteError(w, http.StatusInternalServerError, "failed to dismiss toast")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "dismissed"})
}

// ListMyNotifications returns the caller's notifications, newest first.
func (h *Handler) ListMyNotifications(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	notifications, err := h.Service.ListForUser(userID)
	if err != nil {
		h.Logger.Error("ListMyNotifications: service error", "error", err, "user_id", userID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.MarkRead(id); err != nil {
		switch err {
		case ErrNotificationNotFound:
			h.WriteError(w, http.StatusNotFound, "notification not found")
		default:
			h.Logger.Error("MarkRead: service error", "error", err, "notification_id", id)
			h.WriteError(w, http.StatusInternalServerError, "failed to mark notification as read")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
