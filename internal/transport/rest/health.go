package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthDegraded HealthStatus = "degraded"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	UptimeSecs int64                 `json:"uptime_secs"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

type HealthHandler struct {
	startedAt          time.Time
	forecastConfigured bool
}

func NewHealthHandler(forecastConfigured bool) *HealthHandler {
	return &HealthHandler{
		startedAt:          time.Now(),
		forecastConfigured: forecastConfigured,
	}
}

// pingHandler just says the service is up
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "OK"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// healthCheckHandler reports component states. All state is in-memory,
// so the only degradable component is the external forecast API.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	forecastEntry := CheckEntry{Status: HealthHealthy}
	if !h.forecastConfigured {
		forecastEntry.Status = HealthDegraded
		forecastEntry.Message = "forecast API not configured; serving fallback data"
	}

	resp := HealthResponse{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		UptimeSecs: int64(time.Since(h.startedAt).Seconds()),
		Components: map[string]CheckEntry{
			"stores":       {Status: HealthHealthy},
			"forecast_api": forecastEntry,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
