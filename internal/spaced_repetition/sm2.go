package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/lexibot/pkg/models"
)

// SM2 implements the SuperMemo-2 algorithm for updating card memory states.
type SM2 struct {
	// PassThreshold is the quality at or above which a review counts as a success
	PassThreshold float64
	// MinEasiness is the floor of the easiness factor
	MinEasiness float64
	// MaxInterval is the longest allowed review interval in days
	MaxInterval int
	// FirstInterval and SecondInterval bootstrap the interval sequence for the
	// first two successful reviews
	FirstInterval  int
	SecondInterval int
	// ResetInterval is the interval a card falls back to after a failed review
	ResetInterval int
}

// NewSM2 returns an SM2 engine with the standard defaults.
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:  3,
		MinEasiness:    1.3,
		MaxInterval:    365,
		FirstInterval:  1,
		SecondInterval: 6,
		ResetInterval:  1,
	}
}

// Apply computes the next memory state for a card given the quality of one
// review. It is a pure function: the input state is never mutated and the
// caller owns persistence of the result.
func (sm *SM2) Apply(state models.CardMemoryState, quality float64, today time.Time) models.CardMemoryState {
	next := state

	// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), floored at MinEasiness.
	// The adjustment applies on failures too.
	newEF := state.EasinessFactor + (0.1 - (5-quality)*(0.08+(5-quality)*0.02))
	if newEF < sm.MinEasiness {
		newEF = sm.MinEasiness
	}
	next.EasinessFactor = newEF

	if quality >= sm.PassThreshold {
		next.MasteryLevel = state.MasteryLevel + 1
		next.TimesCorrect = state.TimesCorrect + 1

		switch next.MasteryLevel {
		case 1:
			next.IntervalDays = sm.FirstInterval
		case 2:
			next.IntervalDays = sm.SecondInterval
		default:
			next.IntervalDays = int(math.Round(float64(state.IntervalDays) * newEF))
		}
		if next.IntervalDays > sm.MaxInterval {
			next.IntervalDays = sm.MaxInterval
		}

		// Score grows with the quality of the success; a perfect answer adds 3,
		// a marginal pass adds 1. Ranking signal only, never interval math.
		next.MasteryScore = state.MasteryScore + (quality - 2)
	} else {
		next.MasteryLevel = 0
		next.IntervalDays = sm.ResetInterval
		next.MasteryScore = state.MasteryScore - 2
		if next.MasteryScore < 0 {
			next.MasteryScore = 0
		}
	}

	next.TimesReviewed = state.TimesReviewed + 1
	reviewedAt := today
	next.LastReviewedAt = &reviewedAt
	next.NextReviewDate = today.AddDate(0, 0, next.IntervalDays)
	return next
}

// ApplyWithDeadline is Apply followed by deadline compression: when the
// active goal has fewer than a week left, the computed interval is capped so
// the next review cannot land past the goal window.
func (sm *SM2) ApplyWithDeadline(state models.CardMemoryState, quality float64, today time.Time, daysRemaining int) models.CardMemoryState {
	next := sm.Apply(state, quality, today)
	compressed := CompressInterval(next.IntervalDays, daysRemaining)
	if compressed != next.IntervalDays {
		next.IntervalDays = compressed
		next.NextReviewDate = today.AddDate(0, 0, compressed)
	}
	return next
}
