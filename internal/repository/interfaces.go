package repository

import (
	"context"

	"github.com/lifedash/lifedash/internal/models"
)

// DeckRepository handles deck data access
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context) ([]models.Deck, error)
	Delete(ctx context.Context, id int64) error
}

// CardRepository handles card and review-state data access
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) (int64, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	Count(ctx context.Context, filter models.CardFilter) (int, error)
	CardsForDeck(ctx context.Context, deckID int64, limit int) ([]models.Card, error)
	UpdateContent(ctx context.Context, id int64, front, back string) error
	UpdateReviewState(ctx context.Context, id int64, state models.ReviewState) error
	Delete(ctx context.Context, id int64) error
	InsertReviewEntry(ctx context.Context, entry models.ReviewEntry) error
}

// StatsRepository handles deck statistics data access
type StatsRepository interface {
	DeckStats(ctx context.Context, deckID int64) (*models.DeckStat, error)
	RefreshDeckStats(ctx context.Context, deckID int64) error
}
