package models

// PriorityReason classifies why a card was surfaced in a session.
type PriorityReason string

const (
	// PriorityNew marks a card that has never been reviewed.
	PriorityNew PriorityReason = "new"
	// PriorityWeak marks a reviewed card with low mastery, at risk of being forgotten.
	PriorityWeak PriorityReason = "weak"
	// PriorityDue marks a card whose scheduled review date has arrived.
	PriorityDue PriorityReason = "due"
	// PriorityEarlyReview marks a card reviewed ahead of its schedule.
	PriorityEarlyReview PriorityReason = "early_review"
)

// PrioritizedCard is a CardMemoryState annotated with its session ranking.
// Derived on demand, never persisted.
type PrioritizedCard struct {
	State         CardMemoryState `json:"state"`
	PriorityScore float64         `json:"priority_score"`
	Reason        PriorityReason  `json:"priority_reason"`
}
