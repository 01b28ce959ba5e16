package spaced_repetition

import (
	"math"

	"github.com/example/lexibot/pkg/models"
)

const (
	// frontLoadRatio is the fraction of scheduled sessions in which all new
	// content must be introduced; the rest of the goal is pure consolidation.
	frontLoadRatio = 0.8
	// reviewLoadRatio estimates what fraction of already-learned cards needs
	// review on a given day.
	reviewLoadRatio = 0.4
	// minutesPerCard estimates the time cost of one card in a session.
	minutesPerCard = 1.5
)

// ComputeDailyTarget derives today's study budget from a goal snapshot.
// Pure function; a nil goal yields a zero target.
func ComputeDailyTarget(goal *models.LearningGoal) models.DailyTarget {
	if goal == nil {
		return models.DailyTarget{}
	}

	cardsRemaining := goal.TargetWords - goal.WordsLearned
	totalSessions := goal.DurationDays * goal.SessionsPerDay
	currentSession := (goal.CurrentDay-1)*goal.SessionsPerDay + 1
	frontLoadThreshold := int(float64(totalSessions) * frontLoadRatio)

	newCards := 0
	if currentSession <= frontLoadThreshold && cardsRemaining > 0 {
		sessionsLeftInPhase := frontLoadThreshold - currentSession + 1
		if sessionsLeftInPhase < 1 {
			sessionsLeftInPhase = 1
		}
		newCards = int(math.Ceil(float64(cardsRemaining) / float64(sessionsLeftInPhase)))
	}

	reviewCards := int(float64(goal.WordsLearned) * reviewLoadRatio)
	totalCards := newCards + reviewCards

	return models.DailyTarget{
		NewCards:         newCards,
		ReviewCards:      reviewCards,
		TotalCards:       totalCards,
		EstimatedMinutes: int(math.Ceil(float64(totalCards) * minutesPerCard)),
	}
}
