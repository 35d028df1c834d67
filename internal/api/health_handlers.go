package api

import (
	"net/http"

	"github.com/lifedash/lifedash/internal/logger"
)

// handleHealth is a liveness probe - always returns 200 OK while the
// process is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady is a readiness probe - returns 200 only when the database
// answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if err := s.DB.PingContext(ctx); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
