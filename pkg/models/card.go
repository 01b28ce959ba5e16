package models

import "time"

// Card represents a vocabulary flashcard in the catalog.
type Card struct {
	ID            int       `json:"id" db:"id"`
	Word          string    `json:"word" db:"word"`
	Translation   string    `json:"translation" db:"translation"`
	Example       string    `json:"example" db:"example"`
	TopicID       int64     `json:"topic_id" db:"topic_id"`
	Difficulty    int       `json:"difficulty" db:"difficulty"` // 1-5 scale
	Pronunciation string    `json:"pronunciation" db:"pronunciation"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
