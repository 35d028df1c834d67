package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lifedash/lifedash/internal/errors"
	"github.com/lifedash/lifedash/internal/models"
	"github.com/lifedash/lifedash/internal/srs"
	"github.com/lifedash/lifedash/internal/testutil/mocks"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestStudyService(cardRepo *mocks.MockCardRepository) *studyService {
	return &studyService{
		cardRepo:  cardRepo,
		scheduler: srs.New(srs.DefaultConfig()),
		batchSize: 50,
		now:       func() time.Time { return testNow },
	}
}

func TestReviewCard_GoodOnNewCard(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	svc := newTestStudyService(cardRepo)

	card := &models.Card{
		ID:     7,
		DeckID: 1,
		Front:  "bonjour",
		Back:   "hello",
		ReviewState: models.ReviewState{
			EasinessFactor: 2.5,
			Status:         models.StatusNew,
			Difficulty:     models.DifficultyMedium,
		},
	}
	cardRepo.On("Get", mock.Anything, int64(7)).Return(card, nil)

	next := testNow.AddDate(0, 0, 1)
	expected := models.ReviewState{
		EasinessFactor: 2.5,
		IntervalDays:   1,
		TimesReviewed:  1,
		TimesCorrect:   1,
		Status:         models.StatusLearning,
		Difficulty:     models.DifficultyEasy,
		LastReviewed:   &testNow,
		NextReviewDate: &next,
	}
	cardRepo.On("UpdateReviewState", mock.Anything, int64(7), expected).Return(nil)
	cardRepo.On("InsertReviewEntry", mock.Anything, models.ReviewEntry{
		CardID:      7,
		Rating:      models.RatingGood,
		TimeSeconds: 4.2,
		ReviewedAt:  testNow,
	}).Return(nil)

	got, err := svc.ReviewCard(context.Background(), 7, models.RatingGood, 4.2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, expected, got.ReviewState)
	cardRepo.AssertExpectations(t)
}

func TestReviewCard_NotFound(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	svc := newTestStudyService(cardRepo)

	cardRepo.On("Get", mock.Anything, int64(99)).Return(nil, nil)

	_, err := svc.ReviewCard(context.Background(), 99, models.RatingGood, 1.0)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestReviewCard_InvalidRating(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	svc := newTestStudyService(cardRepo)

	card := &models.Card{ID: 7, ReviewState: models.ReviewState{EasinessFactor: 2.5}}
	cardRepo.On("Get", mock.Anything, int64(7)).Return(card, nil)

	_, err := svc.ReviewCard(context.Background(), 7, models.Rating("perfect"), 1.0)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidArgument, appErr.Code)
	cardRepo.AssertNotCalled(t, "UpdateReviewState", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewCard_HistoryFailureIsNonFatal(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	svc := newTestStudyService(cardRepo)

	card := &models.Card{
		ID: 7,
		ReviewState: models.ReviewState{
			EasinessFactor: 2.5,
			Status:         models.StatusNew,
		},
	}
	cardRepo.On("Get", mock.Anything, int64(7)).Return(card, nil)
	cardRepo.On("UpdateReviewState", mock.Anything, int64(7), mock.AnythingOfType("models.ReviewState")).Return(nil)
	cardRepo.On("InsertReviewEntry", mock.Anything, mock.AnythingOfType("models.ReviewEntry")).Return(assert.AnError)

	got, err := svc.ReviewCard(context.Background(), 7, models.RatingAgain, 2.0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusLearning, got.Status)
}

func TestNextCard_PicksNeverReviewedFirst(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	svc := newTestStudyService(cardRepo)

	past := testNow.AddDate(0, 0, -2)
	future := testNow.AddDate(0, 0, 3)
	cards := []models.Card{
		{ID: 1, CreatedAt: testNow.AddDate(0, 0, -10), ReviewState: models.ReviewState{
			TimesReviewed: 3, LastReviewed: &past, NextReviewDate: &past,
		}},
		{ID: 2, CreatedAt: testNow.AddDate(0, 0, -5)},
		{ID: 3, CreatedAt: testNow.AddDate(0, 0, -1), ReviewState: models.ReviewState{
			TimesReviewed: 1, LastReviewed: &past, NextReviewDate: &future,
		}},
	}
	cardRepo.On("CardsForDeck", mock.Anything, int64(1), 50).Return(cards, nil)

	got, err := svc.NextCard(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	// Card 3 is not due; card 2 has never been reviewed and wins over card 1.
	assert.Equal(t, int64(2), got.ID)
}

func TestNextCard_NothingDue(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	svc := newTestStudyService(cardRepo)

	future := testNow.AddDate(0, 0, 3)
	cards := []models.Card{
		{ID: 1, ReviewState: models.ReviewState{
			TimesReviewed: 1, LastReviewed: &future, NextReviewDate: &future,
		}},
	}
	cardRepo.On("CardsForDeck", mock.Anything, int64(1), 50).Return(cards, nil)

	got, err := svc.NextCard(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSummarizeSession_FiltersStudiedCards(t *testing.T) {
	cardRepo := new(mocks.MockCardRepository)
	svc := newTestStudyService(cardRepo)

	cards := []models.Card{
		{ID: 1, ReviewState: models.ReviewState{EasinessFactor: 2.5, TimesReviewed: 2, Status: models.StatusLearning}},
		{ID: 2, ReviewState: models.ReviewState{EasinessFactor: 2.5, Status: models.StatusNew}},
		{ID: 3, ReviewState: models.ReviewState{EasinessFactor: 2.5, TimesReviewed: 5, Status: models.StatusReview}},
	}
	cardRepo.On("CardsForDeck", mock.Anything, int64(1), 50).Return(cards, nil)

	stats, err := svc.SummarizeSession(context.Background(), 1, []int64{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCards)
	assert.Equal(t, 2, stats.CardsStudied)
	assert.Equal(t, 2, stats.CardsCorrect)
	assert.Equal(t, 1, stats.NewCards)
	assert.InDelta(t, 100.0, stats.Accuracy, 0.001)
}
