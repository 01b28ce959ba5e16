package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/lexibot/pkg/models"
)

func TestDangerScoreComposition(t *testing.T) {
	// 3/10 correct with a mastery score of 5:
	// accuracy risk 0.49, leech risk capped at 0.2, score risk ~0.067.
	assert.InDelta(t, 0.7567, DangerScore(10, 3, 5), 1e-3)

	// 9/10 correct with a mastery score of 12 stays well under the threshold.
	assert.InDelta(t, 0.19, DangerScore(10, 9, 12), 1e-9)

	// Unreviewed cards carry no risk.
	assert.Equal(t, 0.0, DangerScore(0, 0, 0))
}

func TestDangerScoreCaps(t *testing.T) {
	// 20 failures in a row: leech risk must not exceed its cap.
	score := DangerScore(20, 0, 0)
	assert.InDelta(t, 0.7+0.2+0.1, score, 1e-9)

	// A very high mastery score contributes no negative risk.
	assert.GreaterOrEqual(t, DangerScore(10, 10, 20), 0.0)
}

func TestRankWeakWordsFiltersAndSorts(t *testing.T) {
	lastReview := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)

	rows := []models.ReviewHistoryRow{
		{CardID: 1, Word: "meticulous", Translation: "тщательный", TimesReviewed: 10, TimesCorrect: 3, MasteryScore: 5, LastReviewedAt: &lastReview},
		{CardID: 2, Word: "window", Translation: "окно", TimesReviewed: 10, TimesCorrect: 9, MasteryScore: 12, LastReviewedAt: &lastReview},
		{CardID: 3, Word: "abyss", Translation: "бездна", TimesReviewed: 6, TimesCorrect: 1, MasteryScore: 1, LastReviewedAt: &lastReview},
		{CardID: 4, Word: "untouched", Translation: "нетронутый", TimesReviewed: 0},
	}

	entries := RankWeakWords(rows, nil, 10)

	require.Len(t, entries, 2)
	// abyss (5/6 wrong) outranks meticulous (7/10 wrong).
	assert.Equal(t, 3, entries[0].CardID)
	assert.Equal(t, 1, entries[1].CardID)
	assert.Equal(t, 5, entries[0].TimesWrong)
	assert.Equal(t, 7, entries[1].TimesWrong)
	assert.Greater(t, entries[0].DangerScore, entries[1].DangerScore)

	for _, e := range entries {
		assert.Greater(t, e.DangerScore, 0.4)
		assert.LessOrEqual(t, e.DangerScore, 1.0)
	}
}

func TestRankWeakWordsCutoff(t *testing.T) {
	old := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	rows := []models.ReviewHistoryRow{
		{CardID: 1, Word: "stale", TimesReviewed: 10, TimesCorrect: 1, MasteryScore: 0, LastReviewedAt: &old},
		{CardID: 2, Word: "fresh", TimesReviewed: 10, TimesCorrect: 1, MasteryScore: 0, LastReviewedAt: &recent},
		{CardID: 3, Word: "undated", TimesReviewed: 10, TimesCorrect: 1, MasteryScore: 0, LastReviewedAt: nil},
	}

	entries := RankWeakWords(rows, &cutoff, 10)

	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].CardID)
}

func TestRankWeakWordsLimit(t *testing.T) {
	lastReview := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	var rows []models.ReviewHistoryRow
	for i := 1; i <= 8; i++ {
		rows = append(rows, models.ReviewHistoryRow{
			CardID: i, TimesReviewed: 10, TimesCorrect: 2, MasteryScore: 1, LastReviewedAt: &lastReview,
		})
	}

	assert.Len(t, RankWeakWords(rows, nil, 3), 3)
	assert.Len(t, RankWeakWords(rows, nil, 0), 8)
}
