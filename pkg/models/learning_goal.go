package models

import "time"

// LearningGoal represents a time-boxed study plan: learn TargetWords words in
// DurationDays days, with SessionsPerDay study sessions scheduled per day.
// Duration and target are fixed at creation; CurrentDay and WordsLearned
// advance as the user progresses.
type LearningGoal struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	TopicID        int64     `json:"topic_id" db:"topic_id"`
	DurationDays   int       `json:"duration_days" db:"duration_days"`
	CurrentDay     int       `json:"current_day" db:"current_day"` // 1..DurationDays
	SessionsPerDay int       `json:"sessions_per_day" db:"sessions_per_day"`
	TargetWords    int       `json:"target_words" db:"target_words"`
	WordsLearned   int       `json:"words_learned" db:"words_learned"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// DaysRemaining returns how many days are left before the goal's deadline,
// counting today as a full day.
func (g *LearningGoal) DaysRemaining() int {
	return g.DurationDays - (g.CurrentDay - 1)
}
