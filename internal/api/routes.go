package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/decks", func(r chi.Router) {
		r.Get("/", s.handleListDecks)
		r.Post("/", s.handleCreateDeck)

		r.Route("/{deckID}", func(r chi.Router) {
			r.Get("/", s.handleGetDeck)
			r.Delete("/", s.handleDeleteDeck)

			r.Get("/cards", s.handleListCards)
			r.Post("/cards", s.handleCreateCard)

			r.Get("/study/next", s.handleStudyNext)
			r.Get("/study/due", s.handleStudyDue)
			r.Post("/study/summary", s.handleStudySummary)

			r.Get("/stats", s.handleDeckStats)
			r.Post("/stats/refresh", s.handleRefreshStats)
		})
	})

	r.Route("/cards/{cardID}", func(r chi.Router) {
		r.Get("/", s.handleGetCard)
		r.Put("/", s.handleUpdateCard)
		r.Delete("/", s.handleDeleteCard)
		r.Post("/review", s.handleReviewCard)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   s.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	return c.Handler(r)
}
