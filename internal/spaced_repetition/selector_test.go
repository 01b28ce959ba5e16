package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/lexibot/pkg/models"
)

func reviewedState(cardID int, score float64, level int, nextReview time.Time, lastReviewed time.Time) models.CardMemoryState {
	return models.CardMemoryState{
		UserID:         42,
		CardID:         cardID,
		TimesReviewed:  level + 1,
		TimesCorrect:   level,
		MasteryLevel:   level,
		MasteryScore:   score,
		EasinessFactor: 2.5,
		IntervalDays:   3,
		NextReviewDate: nextReview,
		LastReviewedAt: &lastReviewed,
	}
}

func TestClassifyNewCard(t *testing.T) {
	// A never-reviewed card is "new" no matter what the other fields say.
	state := models.CardMemoryState{
		CardID:         1,
		TimesReviewed:  0,
		MasteryScore:   0,
		MasteryLevel:   0,
		NextReviewDate: testDay.AddDate(0, 0, -30),
	}

	card := Classify(state, testDay)
	assert.Equal(t, models.PriorityNew, card.Reason)
	assert.Equal(t, 50.0, card.PriorityScore)
}

func TestClassifyWeakCard(t *testing.T) {
	state := reviewedState(2, 2, 5, testDay.AddDate(0, 0, 5), testDay.AddDate(0, 0, -1))

	card := Classify(state, testDay)
	assert.Equal(t, models.PriorityWeak, card.Reason)
	assert.Equal(t, 98.0, card.PriorityScore)
}

func TestClassifyLowLevelIsWeakDespiteScore(t *testing.T) {
	state := reviewedState(3, 9, 2, testDay.AddDate(0, 0, 5), testDay.AddDate(0, 0, -1))

	card := Classify(state, testDay)
	assert.Equal(t, models.PriorityWeak, card.Reason)
}

func TestClassifyDueCard(t *testing.T) {
	state := reviewedState(4, 10, 5, testDay.AddDate(0, 0, -1), testDay.AddDate(0, 0, -3))

	card := Classify(state, testDay)
	assert.Equal(t, models.PriorityDue, card.Reason)
	assert.Equal(t, 63.0, card.PriorityScore)
}

func TestClassifyDueOnitsExactDate(t *testing.T) {
	state := reviewedState(5, 10, 5, testDay, testDay.AddDate(0, 0, -4))

	card := Classify(state, testDay)
	assert.Equal(t, models.PriorityDue, card.Reason)
}

func TestClassifyEarlyReview(t *testing.T) {
	state := reviewedState(6, 10, 5, testDay.AddDate(0, 0, 4), testDay.AddDate(0, 0, -1))

	card := Classify(state, testDay)
	assert.Equal(t, models.PriorityEarlyReview, card.Reason)
	assert.Equal(t, 20.0, card.PriorityScore)
}

func TestSelectSessionBrakeHaltsNewIntake(t *testing.T) {
	// 16 weak cards trip the full brake: no new cards at all, even with a
	// new-card budget of 10.
	var candidates []models.CardMemoryState
	for i := 1; i <= 16; i++ {
		candidates = append(candidates, reviewedState(i, 1, 1, testDay, testDay.AddDate(0, 0, -1)))
	}
	for i := 100; i < 110; i++ {
		candidates = append(candidates, models.CardMemoryState{UserID: 42, CardID: i})
	}

	target := models.DailyTarget{NewCards: 10, ReviewCards: 10, TotalCards: 20}
	selected := SelectSession(candidates, target, testDay)

	for _, c := range selected {
		assert.NotEqual(t, models.PriorityNew, c.Reason)
	}
	// Every weak card is still included.
	assert.Len(t, selected, 16)
}

func TestSelectSessionBrakeHalvesNewIntake(t *testing.T) {
	var candidates []models.CardMemoryState
	for i := 1; i <= 9; i++ {
		candidates = append(candidates, reviewedState(i, 1, 1, testDay, testDay.AddDate(0, 0, -1)))
	}
	for i := 100; i < 110; i++ {
		candidates = append(candidates, models.CardMemoryState{UserID: 42, CardID: i})
	}

	target := models.DailyTarget{NewCards: 10, ReviewCards: 4, TotalCards: 14}
	selected := SelectSession(candidates, target, testDay)

	newCount := 0
	for _, c := range selected {
		if c.Reason == models.PriorityNew {
			newCount++
		}
	}
	assert.Equal(t, 5, newCount)
	assert.Len(t, selected, 14)
}

func TestSelectSessionWeakAndDueAlwaysIncluded(t *testing.T) {
	candidates := []models.CardMemoryState{
		reviewedState(1, 2, 1, testDay, testDay.AddDate(0, 0, -1)),                   // weak
		reviewedState(2, 10, 5, testDay.AddDate(0, 0, -2), testDay.AddDate(0, 0, -5)), // due
		reviewedState(3, 10, 5, testDay.AddDate(0, 0, 9), testDay.AddDate(0, 0, -1)),  // early
	}

	// A zero target cannot evict weak or due cards.
	selected := SelectSession(candidates, models.DailyTarget{}, testDay)

	require.Len(t, selected, 2)
	assert.Equal(t, models.PriorityWeak, selected[0].Reason)
	assert.Equal(t, models.PriorityDue, selected[1].Reason)
}

func TestSelectSessionFillsUpToTarget(t *testing.T) {
	candidates := []models.CardMemoryState{
		reviewedState(1, 10, 5, testDay.AddDate(0, 0, -1), testDay.AddDate(0, 0, -4)), // due
		reviewedState(2, 10, 5, testDay.AddDate(0, 0, 3), testDay.AddDate(0, 0, -1)),  // early
		reviewedState(3, 12, 6, testDay.AddDate(0, 0, 5), testDay.AddDate(0, 0, -2)),  // early
		{UserID: 42, CardID: 4},
		{UserID: 42, CardID: 5},
	}

	target := models.DailyTarget{NewCards: 1, ReviewCards: 4, TotalCards: 5}
	selected := SelectSession(candidates, target, testDay)

	assert.Len(t, selected, 5)
}

func TestSelectSessionNoDuplicates(t *testing.T) {
	candidates := []models.CardMemoryState{
		reviewedState(1, 2, 1, testDay, testDay.AddDate(0, 0, -1)),
		{UserID: 42, CardID: 2},
	}

	target := models.DailyTarget{NewCards: 2, ReviewCards: 2, TotalCards: 4}
	selected := SelectSession(candidates, target, testDay)

	seen := make(map[int]bool)
	for _, c := range selected {
		assert.False(t, seen[c.State.CardID], "card %d selected twice", c.State.CardID)
		seen[c.State.CardID] = true
	}
}

func TestSelectSessionDeterministicOrder(t *testing.T) {
	candidates := []models.CardMemoryState{
		{UserID: 42, CardID: 9},
		{UserID: 42, CardID: 3},
		{UserID: 42, CardID: 5},
	}

	target := models.DailyTarget{NewCards: 3, ReviewCards: 0, TotalCards: 3}

	first := SelectSession(candidates, target, testDay)
	second := SelectSession(candidates, target, testDay)
	require.Equal(t, first, second)

	// Equal scores fall back to card id order.
	assert.Equal(t, 3, first[0].State.CardID)
	assert.Equal(t, 5, first[1].State.CardID)
	assert.Equal(t, 9, first[2].State.CardID)
}
