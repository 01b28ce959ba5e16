package models

import "time"

// WeakWordEntry is one row of the weak-word risk ranking: a card whose review
// history suggests it needs targeted remediation. Derived, never persisted.
type WeakWordEntry struct {
	CardID      int        `json:"card_id"`
	Word        string     `json:"word"`
	Translation string     `json:"translation"`
	TimesWrong  int        `json:"times_wrong"`
	LastWrongAt *time.Time `json:"last_wrong_at"`
	DangerScore float64    `json:"danger_score"` // 0..1, higher = more at risk
}

// ReviewHistoryRow is the ranker's input: a memory-state row joined with the
// card's display text.
type ReviewHistoryRow struct {
	CardID         int        `json:"card_id" db:"card_id"`
	Word           string     `json:"word" db:"word"`
	Translation    string     `json:"translation" db:"translation"`
	TimesReviewed  int        `json:"times_reviewed" db:"times_reviewed"`
	TimesCorrect   int        `json:"times_correct" db:"times_correct"`
	MasteryScore   float64    `json:"mastery_score" db:"mastery_score"`
	LastReviewedAt *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"`
}
