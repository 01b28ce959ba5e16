package models

import "time"

// CardMemoryState tracks how well a user knows a specific card, using the SM-2 algorithm.
// A card with no row (or TimesReviewed == 0) has never been reviewed and is "new".
type CardMemoryState struct {
	ID             int        `json:"id" db:"id"`
	UserID         int64      `json:"user_id" db:"user_id"`
	CardID         int        `json:"card_id" db:"card_id"`
	TimesReviewed  int        `json:"times_reviewed" db:"times_reviewed"`
	TimesCorrect   int        `json:"times_correct" db:"times_correct"`
	MasteryLevel   int        `json:"mastery_level" db:"mastery_level"`     // Consecutive-success tier, reset on failure
	MasteryScore   float64    `json:"mastery_score" db:"mastery_score"`     // Ranking signal only, never used for interval math
	EasinessFactor float64    `json:"easiness_factor" db:"easiness_factor"` // SM-2 EF parameter, never below 1.3
	IntervalDays   int        `json:"interval_days" db:"interval_days"`
	NextReviewDate time.Time  `json:"next_review_date" db:"next_review_date"`
	LastReviewedAt *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// NewCardMemoryState returns the documented starting state for a card that has
// never been reviewed: EF 2.5, zero interval, zero level and score.
func NewCardMemoryState(userID int64, cardID int) CardMemoryState {
	return CardMemoryState{
		UserID:         userID,
		CardID:         cardID,
		EasinessFactor: 2.5,
	}
}
