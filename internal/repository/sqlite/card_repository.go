package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/models"
	"github.com/lifedash/lifedash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const cardColumns = `id, deck_id, front, back, easiness_factor, interval_days, times_reviewed, times_correct, status, difficulty, last_reviewed, next_review_date, created_at`

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func scanCard(row interface{ Scan(...any) error }, c *models.Card) error {
	return row.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back,
		&c.EasinessFactor, &c.IntervalDays, &c.TimesReviewed, &c.TimesCorrect,
		&c.Status, &c.Difficulty, &c.LastReviewed, &c.NextReviewDate, &c.CreatedAt)
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, front, back, easiness_factor, interval_days, times_reviewed, times_correct, status, difficulty, last_reviewed, next_review_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.DeckID, c.Front, c.Back, c.EasinessFactor, c.IntervalDays, c.TimesReviewed, c.TimesCorrect, c.Status, c.Difficulty, c.LastReviewed, c.NextReviewDate)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	var c models.Card
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	err := scanCard(row, &c)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards with filter: deck_id=%d, status=%s, difficulty=%s",
		filter.DeckID, filter.Status, filter.Difficulty)

	query := sqlBuilder.Select(
		"id", "deck_id", "front", "back", "easiness_factor", "interval_days",
		"times_reviewed", "times_correct", "status", "difficulty",
		"last_reviewed", "next_review_date", "created_at",
	).From("cards")

	// Dynamic WHERE clauses
	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}

	// Safe ORDER BY with validation
	orderBy := "created_at"
	switch filter.OrderBy {
	case "created_at", "next_review_date", "easiness_factor":
		orderBy = filter.OrderBy
	}
	orderDir := "ASC"
	if filter.OrderDir == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sql, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()
	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := scanCard(rows, &c); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Count(ctx context.Context, filter models.CardFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("counting cards with filter: deck_id=%d, status=%s, difficulty=%s",
		filter.DeckID, filter.Status, filter.Difficulty)

	query := sqlBuilder.Select("COUNT(*)").From("cards")

	// Same WHERE logic as List()
	if filter.DeckID != 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, sql, args...).Scan(&count)
	if err != nil {
		log.Error("failed to count cards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *cardRepository) CardsForDeck(ctx context.Context, deckID int64, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching cards for deck: deck_id=%d, limit=%d", deckID, limit)

	if limit <= 0 {
		limit = 200
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+cardColumns+`
FROM cards
WHERE deck_id = ?
ORDER BY created_at ASC
LIMIT ?
`, deckID, limit)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()
	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := scanCard(rows, &c); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards for deck", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) UpdateContent(ctx context.Context, id int64, front, back string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card content: id=%d", id)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET front = ?, back = ?
WHERE id = ?
`, front, back, id)
	if err != nil {
		log.Error("failed to update card content: %v", err)
	}
	return err
}

func (r *cardRepository) UpdateReviewState(ctx context.Context, id int64, s models.ReviewState) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating review state: id=%d, interval=%d, ease=%.2f, status=%s", id, s.IntervalDays, s.EasinessFactor, s.Status)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET easiness_factor = ?, interval_days = ?, times_reviewed = ?, times_correct = ?,
    status = ?, difficulty = ?, last_reviewed = ?, next_review_date = ?
WHERE id = ?
`, s.EasinessFactor, s.IntervalDays, s.TimesReviewed, s.TimesCorrect,
		s.Status, s.Difficulty, s.LastReviewed, s.NextReviewDate, id)
	if err != nil {
		log.Error("failed to update review state: %v", err)
	}
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM review_history WHERE card_id = ?`, id); err != nil {
			log.Error("failed to delete review history for card %d: %v", id, err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
			log.Error("failed to delete card %d: %v", id, err)
			return err
		}
		return nil
	})
}

func (r *cardRepository) InsertReviewEntry(ctx context.Context, entry models.ReviewEntry) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting review entry: card_id=%d, rating=%s, time=%.2fs", entry.CardID, entry.Rating, entry.TimeSeconds)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (card_id, rating, time_seconds, reviewed_at)
VALUES (?, ?, ?, ?)
`, entry.CardID, entry.Rating, entry.TimeSeconds, entry.ReviewedAt)
	if err != nil {
		log.Error("failed to insert review entry: %v", err)
	}
	return err
}
