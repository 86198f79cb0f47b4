package leave

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/pushparaj09/medishift-ai/internal"
	"github.com/pushparaj09/medishift-ai/internal/transport"
	"github.com/pushparaj09/medishift-ai/pkg/logger"
)

type ServiceAPI interface {
	Submit(ctx context.Context, employeeID string, dto SubmitLeaveDTO) (*Request, error)
	ListAll() ([]*Request, error)
	ListForEmployee(employeeID string) ([]*Request, error)
	Approve(ctx context.Context, id string) (*Request, error)
	Reject(ctx context.Context, id string) (*Request, error)
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

func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.Logger.Error("SubmitLeave: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitLeave: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.Service.Submit(r.Context(), userID, dto)
	if err != nil {
		h.Logger.Error("SubmitLeave: service error", "error", err, "employee_id", userID)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Logger.Info("SubmitLeave: request created", "leave_id", request.ID, "employee_id", userID)
	h.WriteJSON(w, http.StatusCreated, request)
}

// ListLeaves returns all requests for administrators and only the
// caller's own requests otherwise.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var (
		requests []*Request
		err      error
	)
	if internal.RoleFromContext(r.Context()) == "Administrator" {
		requests, err = h.Service.ListAll()
	} else {
		requests, err = h.Service.ListForEmployee(userID)
	}
	if err != nil {
		h.Logger.Error("ListLeaves: service error", "error", err, "employee_id", userID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list leave requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	request, err := h.Service.Approve(r.Context(), id)
	if err != nil {
		h.Logger.Error("ApproveLeave: service error", "error", err, "leave_id", id)
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "leave request not found")
		case ErrDecided:
			h.WriteError(w, http.StatusConflict, "leave request has already been decided")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to approve leave request")
		}
		return
	}

	h.Logger.Info("ApproveLeave: request approved", "leave_id", id)
	h.WriteJSON(w, http.StatusOK, request)
}

func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	request, err := h.Service.Reject(r.Context(), id)
	if err != nil {
		h.Logger.Error("RejectLeave: service error", "error", err, "leave_id", id)
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "leave request not found")
		case ErrDecided:
			h.WriteError(w, http.StatusConflict, "leave request has already been decided")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to reject leave request")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, request)
}
