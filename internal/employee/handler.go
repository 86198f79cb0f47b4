package employee

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
	ListEmployees() ([]*Employee, error)
	GetEmployee(id string) (*Employee, error)
	Onboard(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error)
	UpdateProfile(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error)
	UpdateStatus(ctx context.Context, id string, dto UpdateStatusDTO) (*Employee, error)
	UpdateCredentials(ctx context.Context, id string, dto UpdateCredentialsDTO) error
	Remove(ctx context.Context, id string) error
	NearestAvailable(date string) ([]*Employee, error)
	Dispatch(ctx context.Context, dto DispatchDTO) ([]*Employee, error)
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees()
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employees": employees,
	})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Service.GetEmployee(id)
	if err != nil {
		h.Logger.Error("GetEmployee: service error", "error", err, "employee_id", id)
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "employee not found")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to get employee")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Onboard(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err)
		switch err {
		case ErrDuplicateUsername:
			h.WriteError(w, http.StatusConflict, "username already taken")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.Logger.Info("CreateEmployee: employee onboarded", "employee_id", emp.ID)
	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.UpdateProfile(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err, "employee_id", id)
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "employee not found")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateStatus: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.UpdateStatus(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateStatus: service error", "error", err, "employee_id", id)
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "employee not found")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

// UpdateCredentials changes the caller's own username or password.
func (h *Handler) UpdateCredentials(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.Logger.Error("UpdateCredentials: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateCredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCredentials: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateCredentials(r.Context(), userID, dto); err != nil {
		h.Logger.Error("UpdateCredentials: service error", "error", err, "employee_id", userID)
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "employee not found")
		case ErrDuplicateUsername:
			h.WriteError(w, http.StatusConflict, "username already taken")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Remove(r.Context(), id); err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err, "employee_id", id)
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "employee not found")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to delete employee")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) NearestAvailable(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	employees, err := h.Service.NearestAvailable(date)
	if err != nil {
		h.Logger.Error("NearestAvailable: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute nearest staff")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employees": employees,
	})
}

func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var dto DispatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Dispatch: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dispatched, err := h.Service.Dispatch(r.Context(), dto)
	if err != nil {
		h.Logger.Error("Dispatch: service error", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Logger.Info("Dispatch: emergency staff alerted", "count", len(dispatched))
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"dispatched": dispatched,
	})
}
