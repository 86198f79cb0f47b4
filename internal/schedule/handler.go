package schedule

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
	SetShift(ctx context.Context, dto SetShiftDTO) (*Shift, error)
	WeekSchedule(start string) (*WeekScheduleDTO, error)
	AutoFill(ctx context.Context, dto AutoFillDTO) (*AutoFillResult, error)
	EnterSwapMode(userID string) SelectionState
	ExitSwapMode(userID string) SelectionState
	SelectionState(userID string) SelectionState
	SelectCell(ctx context.Context, userID string, dto SelectCellDTO) (*SelectionResponseDTO, error)
	ListSwaps(status SwapStatus) ([]*SwapRequest, error)
	ApproveSwap(ctx context.Context, id string) (*SwapRequest, error)
	RejectSwap(ctx context.Context, id string) (*SwapRequest, error)
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

func (h *Handler) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")

	week, err := h.Service.WeekSchedule(start)
	if err != nil {
		h.Logger.Error("GetWeekSchedule: service error", "error", err, "start", start)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.WriteJSON(w, http.StatusOK, week)
}

func (h *Handler) SetShift(w http.ResponseWriter, r *http.Request) {
	var dto SetShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SetShift: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shift, err := h.Service.SetShift(r.Context(), dto)
	if err != nil {
		h.Logger.Error("SetShift: service error", "error", err, "employee_id", dto.EmployeeID)
		switch err {
		case ErrUnknownStaff:
			h.WriteError(w, http.StatusNotFound, "employee not found")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, shift)
}

func (h *Handler) AutoFill(w http.ResponseWriter, r *http.Request) {
	var dto AutoFillDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AutoFill: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.AutoFill(r.Context(), dto)
	if err != nil {
		h.Logger.Error("AutoFill: service error", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Logger.Info("AutoFill: completed", "filled", result.Filled, "gaps", len(result.GapDates))
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) EnterSwapMode(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	state := h.Service.EnterSwapMode(userID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"state": state})
}

func (h *Handler) ExitSwapMode(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	state := h.Service.ExitSwapMode(userID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"state": state})
}

func (h *Handler) SelectionState(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	state := h.Service.SelectionState(userID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"state": state})
}

func (h *Handler) SelectCell(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SelectCellDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SelectCell: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.SelectCell(r.Context(), userID, dto)
	if err != nil {
		h.Logger.Error("SelectCell: service error", "error", err, "user_id", userID)
		switch err {
		case ErrNotInSwapMode:
			h.WriteError(w, http.StatusConflict, "swap mode is not active")
		case ErrUnknownStaff:
			h.WriteError(w, http.StatusNotFound, "employee not found")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListSwaps(w http.ResponseWriter, r *http.Request) {
	status := SwapStatus(r.URL.Query().Get("status"))

	requests, err := h.Service.ListSwaps(status)
	if err != nil {
		h.Logger.Error("ListSwaps: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list swap requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (h *Handler) ApproveSwap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	request, err := h.Service.ApproveSwap(r.Context(), id)
	if err != nil {
		h.Logger.Error("ApproveSwap: service error", "error", err, "swap_id", id)
		switch err {
		case ErrSwapNotFound:
			h.WriteError(w, http.StatusNotFound, "swap request not found")
		case ErrSwapDecided:
			h.WriteError(w, http.StatusConflict, "swap request has already been decided")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to approve swap")
		}
		return
	}

	h.Logger.Info("ApproveSwap: shifts exchanged", "swap_id", id)
	h.WriteJSON(w, http.StatusOK, request)
}

func (h *Handler) RejectSwap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	request, err := h.Service.RejectSwap(r.Context(), id)
	if err != nil {
		h.Logger.Error("RejectSwap: service error", "error", err, "swap_id", id)
		switch err {
		case ErrSwapNotFound:
			h.WriteError(w, http.StatusNotFound, "swap request not found")
		case ErrSwapDecided:
			h.WriteError(w, http.StatusConflict, "swap request has already been decided")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to reject swap")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, request)
}
