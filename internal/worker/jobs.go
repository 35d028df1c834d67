package worker

import (
	"context"

	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/repository"
)

// RefreshDeckStatsJob recomputes the cached aggregate row for one deck.
// Queued after reviews so study requests never pay for the aggregation.
type RefreshDeckStatsJob struct {
	StatsRepo repository.StatsRepository
	DeckID    int64
}

func (j *RefreshDeckStatsJob) Name() string { return "refresh_deck_stats" }

func (j *RefreshDeckStatsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("deck_id", j.DeckID)
	if err := j.StatsRepo.RefreshDeckStats(ctx, j.DeckID); err != nil {
		log.Error("failed to refresh deck stats: %v", err)
		return err
	}
	log.Debug("deck stats refreshed")
	return nil
}
