package api

import (
	"net/http"

	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/worker"
)

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlParamID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.StatsService.DeckStats(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRefreshStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	deckID, err := urlParamID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	// Verify the deck exists before queueing work for it.
	if _, err := s.DeckService.GetDeck(r.Context(), deckID); err != nil {
		handleError(w, r, err)
		return
	}

	queued := s.StatsPool.TrySubmit(&worker.RefreshDeckStatsJob{
		StatsRepo: s.StatsRepo,
		DeckID:    deckID,
	})
	if !queued {
		log.Warn("stats refresh queue full: deck_id=%d", deckID)
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"queued": false,
		})
		return
	}

	log.Info("stats refresh queued: deck_id=%d", deckID)
	respondJSON(w, http.StatusAccepted, map[string]any{
		"queued": true,
	})
}
