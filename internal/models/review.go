package models

import "fmt"

// Rating is the user's assessment of how well a card was recalled.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// ParseRating converts user input into a Rating. Anything outside the four
// known values is rejected rather than defaulted.
func ParseRating(s string) (Rating, error) {
	switch Rating(s) {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return Rating(s), nil
	}
	return "", fmt.Errorf("unknown rating %q", s)
}

// IsValid reports whether r is one of the four known ratings.
func (r Rating) IsValid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	}
	return false
}

// Status is a card's coarse progress stage. Transitions move forward
// (new -> learning -> review -> mastered) except "again", which forces a
// card back to learning from any stage.
type Status string

const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusReview   Status = "review"
	StatusMastered Status = "mastered"
)

// Difficulty is a derived display label, recomputed on every review from
// accuracy and easiness factor.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)
