package srs

import (
	"math"
	"sort"
	"time"

	"github.com/lifedash/lifedash/internal/models"
)

// SelectDue returns the cards that are due for study at now: cards never
// reviewed, cards with no scheduled date, and cards whose scheduled date
// has arrived or passed. The input slice is not modified and no ordering
// is implied; see OrderForStudy.
func SelectDue(cards []models.Card, now time.Time) []models.Card {
	due := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if isDue(c, now) {
			due = append(due, c)
		}
	}
	return due
}

func isDue(c models.Card, now time.Time) bool {
	if c.LastReviewed == nil {
		return true
	}
	if c.NextReviewDate == nil {
		return true
	}
	return !c.NextReviewDate.After(now)
}

// OrderForStudy returns the cards in study order: never-reviewed cards
// first, then by ascending next review date, with remaining ties broken by
// ascending creation time. The sort is stable and the input is not mutated.
func OrderForStudy(cards []models.Card) []models.Card {
	ordered := make([]models.Card, len(cards))
	copy(ordered, cards)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		aNew := a.LastReviewed == nil
		bNew := b.LastReviewed == nil
		if aNew != bNew {
			return aNew
		}

		if a.NextReviewDate != nil && b.NextReviewDate != nil && !a.NextReviewDate.Equal(*b.NextReviewDate) {
			return a.NextReviewDate.Before(*b.NextReviewDate)
		}

		return a.CreatedAt.Before(b.CreatedAt)
	})

	return ordered
}

// SummarizeSession computes session statistics over a deck's cards and the
// subset studied this session.
//
// A studied card counts as correct when TimesReviewed > 0, which is always
// true once a review has been applied. The per-review rating is recorded in
// the review log instead; this count deliberately keeps the coarse,
// historical meaning.
func SummarizeSession(all, studied []models.Card, now time.Time) models.SessionStats {
	stats := models.SessionStats{
		TotalCards:   len(all),
		CardsStudied: len(studied),
	}

	for _, c := range studied {
		if c.TimesReviewed > 0 {
			stats.CardsCorrect++
		} else {
			stats.CardsIncorrect++
		}
	}
	if stats.CardsStudied > 0 {
		stats.Accuracy = math.Round(float64(stats.CardsCorrect) / float64(stats.CardsStudied) * 100)
	}

	var easeSum float64
	for _, c := range all {
		if c.Status == models.StatusNew {
			stats.NewCards++
		}
		if isDue(c, now) {
			stats.DueCards++
		}
		ef := c.EasinessFactor
		if ef == 0 {
			ef = DefaultConfig().InitialEase
		}
		easeSum += ef
	}
	if len(all) > 0 {
		stats.AvgEaseFactor = easeSum / float64(len(all))
	}

	return stats
}
