package handlers

import (
	"context"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	CountTables int    `json:"countTables"`
}

// Health reports database reachability and the number of tables in the
// public schema.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.DB != nil {
		if err := h.DB.HealthCheck(ctx); err != nil {
			logger.Warningf("health check: %v", err)
			writeSuccess(w, HealthResponse{Status: "unavailable", Database: err.Error()}, http.StatusServiceUnavailable)
			return
		}
	}

	count, err := h.StatsService.CountTables(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Database: "up", CountTables: count}, http.StatusOK)
}

func (h *Handlers) CommunityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.Community(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, stats, http.StatusOK)
}
