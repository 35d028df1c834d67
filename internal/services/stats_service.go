package services

import (
	"context"

	"github.com/lifedash/lifedash/internal/errors"
	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/models"
	"github.com/lifedash/lifedash/internal/repository"
)

// StatsService exposes cached per-deck aggregate statistics.
type StatsService interface {
	DeckStats(ctx context.Context, deckID int64) (*models.DeckStat, error)
	RefreshStats(ctx context.Context, deckID int64) error
}

type statsService struct {
	deckRepo  repository.DeckRepository
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(deckRepo repository.DeckRepository, statsRepo repository.StatsRepository) StatsService {
	return &statsService{
		deckRepo:  deckRepo,
		statsRepo: statsRepo,
	}
}

func (s *statsService) DeckStats(ctx context.Context, deckID int64) (*models.DeckStat, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck stats: deck_id=%d", deckID)

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	stats, err := s.statsRepo.DeckStats(ctx, deckID)
	if err != nil {
		log.Error("failed to get deck stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) RefreshStats(ctx context.Context, deckID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("refreshing deck stats: deck_id=%d", deckID)

	if err := s.statsRepo.RefreshDeckStats(ctx, deckID); err != nil {
		log.Error("failed to refresh deck stats: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
