package spaced_repetition

import (
	"sort"
	"time"

	"github.com/example/lexibot/pkg/models"
)

const (
	// accuracyWeight scales the share of risk attributed to raw accuracy.
	accuracyWeight = 0.7
	// leechDivisor and leechCap bound the risk contributed by repeated failures.
	leechDivisor = 10.0
	leechCap     = 0.2
	// scoreRiskCap bounds the risk contributed by a low mastery score.
	scoreRiskCap = 0.1
	// dangerThreshold filters out cards that are not actually at risk.
	dangerThreshold = 0.4
)

// DangerScore combines accuracy, leech tendency and mastery score into one
// 0..1 risk metric for a card's review history.
func DangerScore(timesReviewed, timesCorrect int, masteryScore float64) float64 {
	if timesReviewed <= 0 {
		return 0
	}

	accuracy := float64(timesCorrect) / float64(timesReviewed)
	accuracyRisk := (1 - accuracy) * accuracyWeight

	timesWrong := timesReviewed - timesCorrect
	leechRisk := float64(timesWrong) / leechDivisor
	if leechRisk > leechCap {
		leechRisk = leechCap
	}

	scoreRisk := (15 - masteryScore) / 150
	if scoreRisk < 0 {
		scoreRisk = 0
	}
	if scoreRisk > scoreRiskCap {
		scoreRisk = scoreRiskCap
	}

	return accuracyRisk + leechRisk + scoreRisk
}

// RankWeakWords scores the review history rows, keeps the genuinely risky
// ones and returns them ranked worst-first. Rows never reviewed are skipped;
// a non-nil cutoff scopes the analysis to rows touched after it (for example
// the creation time of a study plan). A limit <= 0 means no truncation.
func RankWeakWords(rows []models.ReviewHistoryRow, cutoff *time.Time, limit int) []models.WeakWordEntry {
	entries := make([]models.WeakWordEntry, 0, len(rows))

	for _, row := range rows {
		if row.TimesReviewed == 0 {
			continue
		}
		if cutoff != nil && (row.LastReviewedAt == nil || row.LastReviewedAt.Before(*cutoff)) {
			continue
		}

		danger := DangerScore(row.TimesReviewed, row.TimesCorrect, row.MasteryScore)
		if danger <= dangerThreshold {
			continue
		}

		entries = append(entries, models.WeakWordEntry{
			CardID:      row.CardID,
			Word:        row.Word,
			Translation: row.Translation,
			TimesWrong:  row.TimesReviewed - row.TimesCorrect,
			LastWrongAt: row.LastReviewedAt,
			DangerScore: danger,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].DangerScore != entries[j].DangerScore {
			return entries[i].DangerScore > entries[j].DangerScore
		}
		return entries[i].CardID < entries[j].CardID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
