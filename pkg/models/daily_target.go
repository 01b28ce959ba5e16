package models

// DailyTarget is the computed study budget for a single day. It is derived
// from a LearningGoal snapshot and never persisted.
type DailyTarget struct {
	NewCards         int `json:"new_cards"`
	ReviewCards      int `json:"review_cards"`
	TotalCards       int `json:"total_cards"`
	EstimatedMinutes int `json:"estimated_minutes"`
}
