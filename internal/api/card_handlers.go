package api

import (
	"net/http"

	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/models"
)

type cardRequest struct {
	Front string `json:"front" validate:"required,max=5000"`
	Back  string `json:"back" validate:"required,max=5000"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlParamID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := models.CardFilter{
		DeckID:     deckID,
		Status:     q.Get("status"),
		Difficulty: q.Get("difficulty"),
		Limit:      queryInt(r, "limit", 50),
		Offset:     queryInt(r, "offset", 0),
		OrderBy:    q.Get("order_by"),
		OrderDir:   q.Get("order_dir"),
	}

	log := logger.FromContext(r.Context())
	log.Debug("listing cards: deck_id=%d, status=%q", deckID, filter.Status)

	cards, total, err := s.CardService.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"cards":  cards,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlParamID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), deckID, req.Front, req.Back)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateCard(r.Context(), id, req.Front, req.Back)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
