package api

import (
	"net/http"

	"github.com/lifedash/lifedash/internal/errors"
	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/models"
	"github.com/lifedash/lifedash/internal/worker"
)

type reviewRequest struct {
	Rating      string  `json:"rating" validate:"required"`
	TimeSeconds float64 `json:"time_seconds" validate:"gte=0"`
}

type summaryRequest struct {
	StudiedCardIDs []int64 `json:"studied_card_ids"`
}

func (s *Server) handleStudyNext(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlParamID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.StudyService.NextCard(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if card == nil {
		respondJSON(w, http.StatusOK, map[string]any{"card": nil, "done": true})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"card": card, "done": false})
}

func (s *Server) handleStudyDue(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlParamID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.StudyService.DueCards(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"cards": cards,
		"count": len(cards),
	})
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	cardID, err := urlParamID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	rating, err := models.ParseRating(req.Rating)
	if err != nil {
		log.Warn("invalid rating value: %s", req.Rating)
		handleError(w, r, errors.NewInvalidArgumentError("rating", err))
		return
	}

	log = log.WithFields(map[string]any{
		"card_id": cardID,
		"rating":  rating,
	})
	log.Debug("reviewing card")

	card, err := s.StudyService.ReviewCard(r.Context(), cardID, rating, req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// Refresh the deck's cached stats in the background.
	s.StatsPool.TrySubmit(&worker.RefreshDeckStatsJob{
		StatsRepo: s.StatsRepo,
		DeckID:    card.DeckID,
	})

	log.Info("card reviewed successfully")
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleStudySummary(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlParamID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req summaryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.StudyService.SummarizeSession(r.Context(), deckID, req.StudiedCardIDs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
