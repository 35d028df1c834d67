package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/lifedash/lifedash/internal/errors"
	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/models"
	"github.com/lifedash/lifedash/internal/repository"
	"github.com/lifedash/lifedash/internal/srs"
)

// StudyService handles study-session business logic: picking the next due
// card, applying a review, and summarizing a session.
type StudyService interface {
	NextCard(ctx context.Context, deckID int64) (*models.Card, error)
	DueCards(ctx context.Context, deckID int64) ([]models.Card, error)
	ReviewCard(ctx context.Context, cardID int64, rating models.Rating, timeSeconds float64) (*models.Card, error)
	SummarizeSession(ctx context.Context, deckID int64, studiedCardIDs []int64) (*models.SessionStats, error)
}

type studyService struct {
	cardRepo  repository.CardRepository
	scheduler *srs.Scheduler
	batchSize int
	now       func() time.Time
}

// NewStudyService creates a new StudyService. batchSize bounds how many of a
// deck's cards are loaded per study operation.
func NewStudyService(cardRepo repository.CardRepository, scheduler *srs.Scheduler, batchSize int) StudyService {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &studyService{
		cardRepo:  cardRepo,
		scheduler: scheduler,
		batchSize: batchSize,
		now:       time.Now,
	}
}

func (s *studyService) DueCards(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting due cards: deck_id=%d", deckID)

	cards, err := s.cardRepo.CardsForDeck(ctx, deckID, s.batchSize)
	if err != nil {
		log.Error("failed to load cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	due := srs.SelectDue(cards, s.now())
	log.Debug("%d of %d cards due", len(due), len(cards))
	return srs.OrderForStudy(due), nil
}

func (s *studyService) NextCard(ctx context.Context, deckID int64) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting next card for study: deck_id=%d", deckID)

	due, err := s.DueCards(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		log.Debug("no cards due for review")
		return nil, nil
	}

	return &due[0], nil
}

func (s *studyService) ReviewCard(ctx context.Context, cardID int64, rating models.Rating, timeSeconds float64) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: card_id=%d, rating=%s", cardID, rating)

	card, err := s.cardRepo.Get(ctx, cardID)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	now := s.now()
	updated, err := s.scheduler.Review(card.ReviewState, rating, now)
	if err != nil {
		if stderrors.Is(err, srs.ErrInvalidRating) {
			return nil, errors.NewInvalidArgumentError("rating", err)
		}
		return nil, errors.NewInternalError(err)
	}

	log.Debug("applied review, new interval=%d days, ease_factor=%.2f, status=%s",
		updated.IntervalDays, updated.EasinessFactor, updated.Status)

	if err := s.cardRepo.UpdateReviewState(ctx, cardID, updated); err != nil {
		log.Error("failed to persist review state: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// Store the review entry with the actual rating given. Non-fatal: the
	// review itself already succeeded.
	entry := models.ReviewEntry{
		CardID:      cardID,
		Rating:      rating,
		TimeSeconds: timeSeconds,
		ReviewedAt:  now,
	}
	if err := s.cardRepo.InsertReviewEntry(ctx, entry); err != nil {
		log.Warn("failed to store review entry: %v", err)
	}

	card.ReviewState = updated
	return card, nil
}

func (s *studyService) SummarizeSession(ctx context.Context, deckID int64, studiedCardIDs []int64) (*models.SessionStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("summarizing session: deck_id=%d, studied=%d", deckID, len(studiedCardIDs))

	all, err := s.cardRepo.CardsForDeck(ctx, deckID, s.batchSize)
	if err != nil {
		log.Error("failed to load cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	studiedSet := make(map[int64]bool, len(studiedCardIDs))
	for _, id := range studiedCardIDs {
		studiedSet[id] = true
	}
	var studied []models.Card
	for _, c := range all {
		if studiedSet[c.ID] {
			studied = append(studied, c)
		}
	}

	stats := srs.SummarizeSession(all, studied, s.now())
	return &stats, nil
}
