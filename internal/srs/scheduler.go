package srs

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lifedash/lifedash/internal/models"
)

// ErrInvalidRating is returned when Review is called with a rating outside
// the four known values. This is a caller contract violation, not a
// recoverable condition.
var ErrInvalidRating = errors.New("srs: invalid rating")

// Config holds the scheduler's tunable constants. Defaults match the
// classic SM-2 starting point.
type Config struct {
	InitialEase float64
	MinEase     float64
	MaxEase     float64
}

// DefaultConfig returns the standard SM-2 constants.
func DefaultConfig() Config {
	return Config{
		InitialEase: 2.5,
		MinEase:     1.3,
		MaxEase:     3.0,
	}
}

// Scheduler computes spaced-repetition review state using an SM-2 variant.
// It is pure: every method is deterministic given its inputs, including the
// caller-supplied clock value.
type Scheduler struct {
	cfg Config
}

// New creates a Scheduler. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Scheduler {
	def := DefaultConfig()
	if cfg.InitialEase == 0 {
		cfg.InitialEase = def.InitialEase
	}
	if cfg.MinEase == 0 {
		cfg.MinEase = def.MinEase
	}
	if cfg.MaxEase == 0 {
		cfg.MaxEase = def.MaxEase
	}
	return &Scheduler{cfg: cfg}
}

// NewState returns the review state for a freshly created card.
func (s *Scheduler) NewState() models.ReviewState {
	return models.ReviewState{
		EasinessFactor: s.cfg.InitialEase,
		IntervalDays:   0,
		Status:         models.StatusNew,
		Difficulty:     models.DifficultyMedium,
	}
}

// Review applies a single review to state and returns the updated copy.
// The caller is responsible for persisting the result.
func (s *Scheduler) Review(state models.ReviewState, rating models.Rating, now time.Time) (models.ReviewState, error) {
	ef := state.EasinessFactor
	if ef == 0 {
		ef = s.cfg.InitialEase
	}

	next := state
	next.TimesReviewed = state.TimesReviewed + 1

	switch rating {
	case models.RatingAgain:
		next.EasinessFactor = s.clampEase(ef - 0.2)
		next.IntervalDays = 1
		next.Status = models.StatusLearning

	case models.RatingHard:
		next.EasinessFactor = s.clampEase(ef - 0.15)
		next.IntervalDays = maxInt(1, roundDays(float64(state.IntervalDays)*1.2))
		next.TimesCorrect = state.TimesCorrect + 1
		next.Status = models.StatusLearning

	case models.RatingGood:
		next.EasinessFactor = s.clampEase(ef)
		switch state.IntervalDays {
		case 0:
			next.IntervalDays = 1
		case 1:
			next.IntervalDays = 6
		default:
			next.IntervalDays = roundDays(float64(state.IntervalDays) * next.EasinessFactor)
		}
		next.TimesCorrect = state.TimesCorrect + 1
		if next.TimesReviewed >= 3 {
			next.Status = models.StatusReview
		} else {
			next.Status = models.StatusLearning
		}

	case models.RatingEasy:
		next.EasinessFactor = s.clampEase(ef + 0.15)
		switch state.IntervalDays {
		case 0:
			next.IntervalDays = 4
		case 1:
			next.IntervalDays = 10
		default:
			next.IntervalDays = roundDays(float64(state.IntervalDays) * next.EasinessFactor * 1.3)
		}
		next.TimesCorrect = state.TimesCorrect + 1
		if next.TimesReviewed >= 2 {
			next.Status = models.StatusMastered
		} else {
			next.Status = models.StatusReview
		}

	default:
		return state, fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}

	reviewedAt := now
	due := now.AddDate(0, 0, next.IntervalDays)
	next.LastReviewed = &reviewedAt
	next.NextReviewDate = &due
	next.Difficulty = difficultyLabel(next)

	return next, nil
}

// difficultyLabel derives the display label from post-review accuracy and
// easiness factor. TimesReviewed is at least 1 here.
func difficultyLabel(state models.ReviewState) models.Difficulty {
	accuracy := int(math.Round(float64(state.TimesCorrect) / float64(state.TimesReviewed) * 100))
	switch {
	case accuracy >= 80 && state.EasinessFactor >= 2.5:
		return models.DifficultyEasy
	case accuracy <= 50 || state.EasinessFactor <= 1.8:
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

func (s *Scheduler) clampEase(ef float64) float64 {
	if ef < s.cfg.MinEase {
		return s.cfg.MinEase
	}
	if ef > s.cfg.MaxEase {
		return s.cfg.MaxEase
	}
	return ef
}

func roundDays(days float64) int {
	return int(math.Round(days))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
