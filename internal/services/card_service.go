package services

import (
	"context"

	"github.com/lifedash/lifedash/internal/errors"
	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/models"
	"github.com/lifedash/lifedash/internal/repository"
	"github.com/lifedash/lifedash/internal/srs"
)

// CardService handles card-related business logic
type CardService interface {
	CreateCard(ctx context.Context, deckID int64, front, back string) (*models.Card, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, int, error)
	UpdateCard(ctx context.Context, id int64, front, back string) (*models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
}

type cardService struct {
	cardRepo  repository.CardRepository
	deckRepo  repository.DeckRepository
	scheduler *srs.Scheduler
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, deckRepo repository.DeckRepository, scheduler *srs.Scheduler) CardService {
	return &cardService{cardRepo: cardRepo, deckRepo: deckRepo, scheduler: scheduler}
}

func (s *cardService) CreateCard(ctx context.Context, deckID int64, front, back string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: deck_id=%d", deckID)

	if front == "" {
		return nil, errors.NewValidationError("front", "cannot be empty")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "cannot be empty")
	}

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	card := models.Card{
		DeckID:      deckID,
		Front:       front,
		Back:        back,
		ReviewState: s.scheduler.NewState(),
	}

	id, err := s.cardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to load created card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return created, nil
}

func (s *cardService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card: id=%d", id)

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}

	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: deck_id=%d", filter.DeckID)

	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.cardRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count cards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return cards, totalCount, nil
}

func (s *cardService) UpdateCard(ctx context.Context, id int64, front, back string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d", id)

	if front == "" {
		return nil, errors.NewValidationError("front", "cannot be empty")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "cannot be empty")
	}

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}

	if err := s.cardRepo.UpdateContent(ctx, id, front, back); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	card.Front = front
	card.Back = back
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", id)

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return errors.NewInternalError(err)
	}
	if card == nil {
		return errors.NewNotFoundError("card", id)
	}

	if err := s.cardRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}
