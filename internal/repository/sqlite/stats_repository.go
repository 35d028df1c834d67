package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/models"
	"github.com/lifedash/lifedash/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) DeckStats(ctx context.Context, deckID int64) (*models.DeckStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting deck stats: deck_id=%d", deckID)

	var s models.DeckStat
	err := r.db.QueryRowContext(ctx, `
SELECT deck_id, total_cards, new_cards, learning_cards, review_cards, mastered_cards,
       total_reviews, overall_accuracy, avg_ease_factor, avg_interval_days, refreshed_at
FROM deck_stats
WHERE deck_id = ?
`, deckID).Scan(&s.DeckID, &s.TotalCards, &s.NewCards, &s.LearningCards, &s.ReviewCards, &s.MasteredCards,
		&s.TotalReviews, &s.OverallAccuracy, &s.AvgEaseFactor, &s.AvgIntervalDays, &s.RefreshedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// No cached row yet; compute one on demand.
		log.Debug("no cached stats for deck %d, refreshing", deckID)
		if err := r.RefreshDeckStats(ctx, deckID); err != nil {
			return nil, err
		}
		return r.DeckStats(ctx, deckID)
	}
	if err != nil {
		log.Error("failed to get deck stats: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) RefreshDeckStats(ctx context.Context, deckID int64) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("refreshing deck stats: deck_id=%d", deckID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO deck_stats (deck_id, total_cards, new_cards, learning_cards, review_cards, mastered_cards,
                        total_reviews, overall_accuracy, avg_ease_factor, avg_interval_days, refreshed_at)
SELECT
    ?,
    COUNT(*),
    COALESCE(SUM(CASE WHEN status = 'new' THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN status = 'learning' THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN status = 'review' THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN status = 'mastered' THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(times_reviewed), 0),
    CASE WHEN COALESCE(SUM(times_reviewed), 0) > 0
         THEN ROUND(SUM(times_correct) * 100.0 / SUM(times_reviewed), 1)
         ELSE 0 END,
    COALESCE(AVG(easiness_factor), 0),
    COALESCE(AVG(interval_days), 0),
    CURRENT_TIMESTAMP
FROM cards
WHERE deck_id = ?
ON CONFLICT(deck_id) DO UPDATE SET
    total_cards = excluded.total_cards,
    new_cards = excluded.new_cards,
    learning_cards = excluded.learning_cards,
    review_cards = excluded.review_cards,
    mastered_cards = excluded.mastered_cards,
    total_reviews = excluded.total_reviews,
    overall_accuracy = excluded.overall_accuracy,
    avg_ease_factor = excluded.avg_ease_factor,
    avg_interval_days = excluded.avg_interval_days,
    refreshed_at = excluded.refreshed_at
`, deckID, deckID)
	if err != nil {
		log.Error("failed to refresh deck stats: %v", err)
	}
	return err
}
