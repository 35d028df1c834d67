package mocks

import (
	"context"

	"github.com/lifedash/lifedash/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) DeckStats(ctx context.Context, deckID int64) (*models.DeckStat, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeckStat), args.Error(1)
}

func (m *MockStatsRepository) RefreshDeckStats(ctx context.Context, deckID int64) error {
	args := m.Called(ctx, deckID)
	return args.Error(0)
}
