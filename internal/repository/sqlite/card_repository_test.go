package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lifedash/lifedash/internal/models"
	"github.com/lifedash/lifedash/internal/repository"
	"github.com/lifedash/lifedash/internal/repository/sqlite"
	"github.com/lifedash/lifedash/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) setupDeck(name string) int64 {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `INSERT INTO decks (name) VALUES (?)`, name)
	s.Require().NoError(err)

	var deckID int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM decks WHERE name = ?`, name).Scan(&deckID)
	s.Require().NoError(err)
	return deckID
}

func (s *CardRepositorySuite) newCard(deckID int64, front string) models.Card {
	return models.Card{
		DeckID: deckID,
		Front:  front,
		Back:   "answer",
		ReviewState: models.ReviewState{
			EasinessFactor: 2.5,
			Status:         models.StatusNew,
			Difficulty:     models.DifficultyMedium,
		},
	}
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	deckID := s.setupDeck("vocab")

	id, err := s.repo.Insert(ctx, s.newCard(deckID, "bonjour"))
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Assert().Equal("bonjour", card.Front)
	s.Assert().Equal(deckID, card.DeckID)
	s.Assert().Equal(2.5, card.EasinessFactor)
	s.Assert().Equal(models.StatusNew, card.Status)
	s.Assert().Nil(card.LastReviewed)
	s.Assert().Nil(card.NextReviewDate)
}

func (s *CardRepositorySuite) TestGetMissingReturnsNil() {
	card, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Assert().Nil(card)
}

func (s *CardRepositorySuite) TestUpdateReviewState() {
	ctx := context.Background()
	deckID := s.setupDeck("vocab")

	id, err := s.repo.Insert(ctx, s.newCard(deckID, "merci"))
	s.Require().NoError(err)

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 6)
	state := models.ReviewState{
		EasinessFactor: 2.6,
		IntervalDays:   6,
		TimesReviewed:  2,
		TimesCorrect:   2,
		Status:         models.StatusLearning,
		Difficulty:     models.DifficultyEasy,
		LastReviewed:   &now,
		NextReviewDate: &next,
	}
	s.Require().NoError(s.repo.UpdateReviewState(ctx, id, state))

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Assert().Equal(2.6, card.EasinessFactor)
	s.Assert().Equal(6, card.IntervalDays)
	s.Assert().Equal(2, card.TimesReviewed)
	s.Assert().Equal(models.StatusLearning, card.Status)
	s.Require().NotNil(card.LastReviewed)
	s.Assert().True(card.LastReviewed.Equal(now))
	s.Require().NotNil(card.NextReviewDate)
	s.Assert().True(card.NextReviewDate.Equal(next))
}

func (s *CardRepositorySuite) TestListFiltersByStatus() {
	ctx := context.Background()
	deckID := s.setupDeck("vocab")

	for _, front := range []string{"a", "b"} {
		_, err := s.repo.Insert(ctx, s.newCard(deckID, front))
		s.Require().NoError(err)
	}
	learning := s.newCard(deckID, "c")
	learning.Status = models.StatusLearning
	_, err := s.repo.Insert(ctx, learning)
	s.Require().NoError(err)

	cards, err := s.repo.List(ctx, models.CardFilter{DeckID: deckID, Status: "new"})
	s.Require().NoError(err)
	s.Assert().Len(cards, 2)

	count, err := s.repo.Count(ctx, models.CardFilter{DeckID: deckID, Status: "new"})
	s.Require().NoError(err)
	s.Assert().Equal(2, count)

	all, err := s.repo.List(ctx, models.CardFilter{DeckID: deckID})
	s.Require().NoError(err)
	s.Assert().Len(all, 3)
}

func (s *CardRepositorySuite) TestListPagination() {
	ctx := context.Background()
	deckID := s.setupDeck("vocab")

	for _, front := range []string{"a", "b", "c", "d", "e"} {
		_, err := s.repo.Insert(ctx, s.newCard(deckID, front))
		s.Require().NoError(err)
	}

	page, err := s.repo.List(ctx, models.CardFilter{DeckID: deckID, Limit: 2, Offset: 2, OrderBy: "created_at"})
	s.Require().NoError(err)
	s.Assert().Len(page, 2)
}

func (s *CardRepositorySuite) TestCardsForDeckHonorsLimit() {
	ctx := context.Background()
	deckID := s.setupDeck("vocab")
	otherDeckID := s.setupDeck("grammar")

	for _, front := range []string{"a", "b", "c"} {
		_, err := s.repo.Insert(ctx, s.newCard(deckID, front))
		s.Require().NoError(err)
	}
	_, err := s.repo.Insert(ctx, s.newCard(otherDeckID, "x"))
	s.Require().NoError(err)

	cards, err := s.repo.CardsForDeck(ctx, deckID, 2)
	s.Require().NoError(err)
	s.Assert().Len(cards, 2)

	cards, err = s.repo.CardsForDeck(ctx, deckID, 0)
	s.Require().NoError(err)
	s.Assert().Len(cards, 3)
}

func (s *CardRepositorySuite) TestDeleteRemovesHistory() {
	ctx := context.Background()
	deckID := s.setupDeck("vocab")

	id, err := s.repo.Insert(ctx, s.newCard(deckID, "au revoir"))
	s.Require().NoError(err)

	entry := models.ReviewEntry{
		CardID:      id,
		Rating:      models.RatingGood,
		TimeSeconds: 3.5,
		ReviewedAt:  time.Now().UTC(),
	}
	s.Require().NoError(s.repo.InsertReviewEntry(ctx, entry))

	s.Require().NoError(s.repo.Delete(ctx, id))

	var count int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM review_history WHERE card_id = ?`, id).Scan(&count))
	s.Assert().Equal(0, count)

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Nil(card)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
