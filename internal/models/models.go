package models

import "time"

type Deck struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReviewState is the scheduling state of a single card. It is mutated only
// by the review scheduler; callers persist the returned copy.
type ReviewState struct {
	EasinessFactor float64    `json:"easiness_factor"`
	IntervalDays   int        `json:"interval_days"`
	TimesReviewed  int        `json:"times_reviewed"`
	TimesCorrect   int        `json:"times_correct"`
	Status         Status     `json:"status"`
	Difficulty     Difficulty `json:"difficulty"`
	LastReviewed   *time.Time `json:"last_reviewed"`
	NextReviewDate *time.Time `json:"next_review_date"`
}

type Card struct {
	ID     int64  `json:"id"`
	DeckID int64  `json:"deck_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
	ReviewState
	CreatedAt time.Time `json:"created_at"`
}

// ReviewEntry records a single review event, including the rating actually
// given. TimesCorrect on the card cannot distinguish an "again" review from
// a successful one after the fact; this log can.
type ReviewEntry struct {
	ID          int64     `json:"id"`
	CardID      int64     `json:"card_id"`
	Rating      Rating    `json:"rating"`
	TimeSeconds float64   `json:"time_seconds"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}

type CardFilter struct {
	DeckID     int64
	Status     string
	Difficulty string
	Limit      int
	Offset     int
	OrderBy    string
	OrderDir   string
}

// SessionStats summarizes a study session over a deck.
type SessionStats struct {
	TotalCards     int     `json:"total_cards"`
	CardsStudied   int     `json:"cards_studied"`
	CardsCorrect   int     `json:"cards_correct"`
	CardsIncorrect int     `json:"cards_incorrect"`
	Accuracy       float64 `json:"accuracy"`
	NewCards       int     `json:"new_cards"`
	DueCards       int     `json:"due_cards"`
	AvgEaseFactor  float64 `json:"avg_ease_factor"`
}

// DeckStat is the cached per-deck aggregate refreshed by the stats worker.
type DeckStat struct {
	DeckID          int64      `json:"deck_id"`
	TotalCards      int        `json:"total_cards"`
	NewCards        int        `json:"new_cards"`
	LearningCards   int        `json:"learning_cards"`
	ReviewCards     int        `json:"review_cards"`
	MasteredCards   int        `json:"mastered_cards"`
	TotalReviews    int        `json:"total_reviews"`
	OverallAccuracy float64    `json:"overall_accuracy"`
	AvgEaseFactor   float64    `json:"avg_ease_factor"`
	AvgIntervalDays float64    `json:"avg_interval_days"`
	RefreshedAt     *time.Time `json:"refreshed_at"`
}
