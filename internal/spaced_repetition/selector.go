package spaced_repetition

import (
	"sort"
	"time"

	"github.com/example/lexibot/pkg/models"
)

const (
	// Base priority scores per classification
	scoreNew         = 50
	scoreWeakBase    = 100
	scoreDueBase     = 60
	scoreEarlyReview = 20

	// Weak-card thresholds: a reviewed card below either bound still needs repair
	weakScoreThreshold = 5.0
	weakLevelThreshold = 3

	// Elastic catch-up brake: past brakeHalf weak cards new intake is halved,
	// past brakeStop it is halted entirely
	brakeHalf = 8
	brakeStop = 15
)

// Classify assigns a card its session priority. The reasons are mutually
// exclusive and evaluated in order: new, weak, due, early_review.
func Classify(state models.CardMemoryState, today time.Time) models.PrioritizedCard {
	card := models.PrioritizedCard{State: state}

	switch {
	case state.TimesReviewed == 0:
		card.Reason = models.PriorityNew
		card.PriorityScore = scoreNew
	case state.MasteryScore < weakScoreThreshold || state.MasteryLevel < weakLevelThreshold:
		card.Reason = models.PriorityWeak
		card.PriorityScore = scoreWeakBase - state.MasteryScore
	case !dateOf(state.NextReviewDate).After(dateOf(today)):
		card.Reason = models.PriorityDue
		card.PriorityScore = scoreDueBase + float64(daysSince(state.LastReviewedAt, today))
	default:
		card.Reason = models.PriorityEarlyReview
		card.PriorityScore = scoreEarlyReview
	}
	return card
}

// SelectSession classifies and ranks the candidate cards, then picks a
// bounded session. Weak and due cards are always included; new-card intake is
// throttled or halted when too many weak cards have accumulated, so the
// learner repairs existing knowledge before acquiring more.
func SelectSession(candidates []models.CardMemoryState, target models.DailyTarget, today time.Time) []models.PrioritizedCard {
	ranked := make([]models.PrioritizedCard, 0, len(candidates))
	for _, state := range candidates {
		ranked = append(ranked, Classify(state, today))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PriorityScore != ranked[j].PriorityScore {
			return ranked[i].PriorityScore > ranked[j].PriorityScore
		}
		return ranked[i].State.CardID < ranked[j].State.CardID
	})

	weakCount := 0
	for _, c := range ranked {
		if c.Reason == models.PriorityWeak {
			weakCount++
		}
	}

	adjustedNewTarget := target.NewCards
	if weakCount > brakeStop {
		adjustedNewTarget = 0
	} else if weakCount > brakeHalf {
		adjustedNewTarget = target.NewCards / 2
	}

	selected := make([]models.PrioritizedCard, 0, target.TotalCards)
	seen := make(map[int]bool)
	pick := func(c models.PrioritizedCard) {
		if !seen[c.State.CardID] {
			seen[c.State.CardID] = true
			selected = append(selected, c)
		}
	}

	// Weak and due cards are never deferred.
	for _, c := range ranked {
		if c.Reason == models.PriorityWeak || c.Reason == models.PriorityDue {
			pick(c)
		}
	}

	newAdded := 0
	for _, c := range ranked {
		if newAdded >= adjustedNewTarget {
			break
		}
		if c.Reason == models.PriorityNew {
			pick(c)
			newAdded++
		}
	}

	// Top up from the remaining candidates, but only when not braking.
	if weakCount <= brakeStop {
		for _, c := range ranked {
			if len(selected) >= target.TotalCards {
				break
			}
			pick(c)
		}
	}

	return selected
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysSince(last *time.Time, today time.Time) int {
	if last == nil {
		return 0
	}
	days := int(dateOf(today).Sub(dateOf(*last)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
