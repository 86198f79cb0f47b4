package forecast

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pushparaj09/medishift-ai/internal/employee"
	"github.com/pushparaj09/medishift-ai/internal/transport"
	"github.com/pushparaj09/medishift-ai/pkg/logger"
)

type Generator interface {
	Generate(ctx context.Context, department, startDate string) *Forecast
}

type Handler struct {
	*transport.BaseHandler
	Client Generator
}

func NewHandler(client Generator) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Client:      client,
	}
}

// GetForecast returns the 7-day staffing projection for a department.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")
	if !employee.Department(department).Valid() {
		h.WriteError(w, http.StatusBadRequest, "unknown department")
		return
	}

	start := r.URL.Query().Get("start")
	if start == "" {
		start = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", start); err != nil {
		h.WriteError(w, http.StatusBadRequest, "start must be in YYYY-MM-DD format")
		return
	}

	forecast := h.Client.Generate(r.Context(), department, start)
	h.WriteJSON(w, http.StatusOK, forecast)
}
