package api

import (
	"github.com/lifedash/lifedash/internal/db"
	"github.com/lifedash/lifedash/internal/repository"
	"github.com/lifedash/lifedash/internal/services"
	"github.com/lifedash/lifedash/internal/worker"
)

type Server struct {
	DB             *db.DB
	DeckService    services.DeckService
	CardService    services.CardService
	StudyService   services.StudyService
	StatsService   services.StatsService
	StatsRepo      repository.StatsRepository
	StatsPool      *worker.Pool
	AllowedOrigins []string
}
