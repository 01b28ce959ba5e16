package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/example/lexibot/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a conditional update lost a race against a
// concurrent write of the same row. The caller's in-memory state is stale and
// must be re-read before retrying.
var ErrConflict = errors.New("concurrent update conflict")

// CardStateRepository handles database operations for card memory states,
// keyed by (user_id, card_id).
type CardStateRepository struct{}

// NewCardStateRepository creates a new repository instance
func NewCardStateRepository() *CardStateRepository {
	return &CardStateRepository{}
}

// GetByUserAndCard returns the memory state for a specific user and card.
// A missing row yields ErrNotFound; callers treat that as a new card.
func (r *CardStateRepository) GetByUserAndCard(userID int64, cardID int) (*models.CardMemoryState, error) {
	var state models.CardMemoryState
	err := DB.Get(&state, "SELECT * FROM card_memory_states WHERE user_id = $1 AND card_id = $2", userID, cardID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card state: %v", err)
	}
	return &state, nil
}

// GetAllForUser returns every memory state the user has, scoped to a topic
// when topicID > 0.
func (r *CardStateRepository) GetAllForUser(userID int64, topicID int64) ([]models.CardMemoryState, error) {
	var states []models.CardMemoryState
	var err error
	if topicID > 0 {
		err = DB.Select(&states, `
			SELECT s.* FROM card_memory_states s
			JOIN cards c ON s.card_id = c.id
			WHERE s.user_id = $1 AND c.topic_id = $2
		`, userID, topicID)
	} else {
		err = DB.Select(&states, "SELECT * FROM card_memory_states WHERE user_id = $1", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card states: %v", err)
	}
	return states, nil
}

// GetDueCountForUser returns how many of the user's cards are due on or
// before the given time.
func (r *CardStateRepository) GetDueCountForUser(userID int64, now time.Time) (int, error) {
	var count int
	err := DB.Get(&count,
		"SELECT COUNT(*) FROM card_memory_states WHERE user_id = $1 AND next_review_date <= $2",
		userID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due cards: %v", err)
	}
	return count, nil
}

// GetHistoryForUser returns the review-history rows the weak-word ranker
// consumes: memory states joined with card display text.
func (r *CardStateRepository) GetHistoryForUser(userID int64, topicID int64) ([]models.ReviewHistoryRow, error) {
	query := `
		SELECT s.card_id, c.word, c.translation,
		       s.times_reviewed, s.times_correct, s.mastery_score, s.last_reviewed_at
		FROM card_memory_states s
		JOIN cards c ON s.card_id = c.id
		WHERE s.user_id = $1 AND s.times_reviewed > 0
	`
	args := []interface{}{userID}
	if topicID > 0 {
		query += " AND c.topic_id = $2"
		args = append(args, topicID)
	}

	var rows []models.ReviewHistoryRow
	if err := DB.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get review history: %v", err)
	}
	return rows, nil
}

// Create inserts a new memory state row.
func (r *CardStateRepository) Create(state *models.CardMemoryState) error {
	if dbTypeIs("sqlite") {
		result, err := DB.Exec(`
			INSERT INTO card_memory_states (
				user_id, card_id, times_reviewed, times_correct, mastery_level,
				mastery_score, easiness_factor, interval_days, next_review_date, last_reviewed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			state.UserID, state.CardID, state.TimesReviewed, state.TimesCorrect,
			state.MasteryLevel, state.MasteryScore, state.EasinessFactor,
			state.IntervalDays, state.NextReviewDate, state.LastReviewedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create card state: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get card state id: %v", err)
		}
		state.ID = int(id)
		return nil
	}

	return DB.QueryRow(`
		INSERT INTO card_memory_states (
			user_id, card_id, times_reviewed, times_correct, mastery_level,
			mastery_score, easiness_factor, interval_days, next_review_date, last_reviewed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		state.UserID, state.CardID, state.TimesReviewed, state.TimesCorrect,
		state.MasteryLevel, state.MasteryScore, state.EasinessFactor,
		state.IntervalDays, state.NextReviewDate, state.LastReviewedAt,
	).Scan(&state.ID)
}

// UpdateIfUnchanged writes the new state only if the row's times_reviewed
// still matches what the caller read. Two concurrent reviews of the same card
// both read the same prior state; only the first write lands, the second gets
// ErrConflict and must re-read.
func (r *CardStateRepository) UpdateIfUnchanged(state *models.CardMemoryState, priorTimesReviewed int) error {
	result, err := DB.Exec(`
		UPDATE card_memory_states SET
			times_reviewed = $1,
			times_correct = $2,
			mastery_level = $3,
			mastery_score = $4,
			easiness_factor = $5,
			interval_days = $6,
			next_review_date = $7,
			last_reviewed_at = $8,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $9 AND card_id = $10 AND times_reviewed = $11
	`,
		state.TimesReviewed, state.TimesCorrect, state.MasteryLevel,
		state.MasteryScore, state.EasinessFactor, state.IntervalDays,
		state.NextReviewDate, state.LastReviewedAt,
		state.UserID, state.CardID, priorTimesReviewed,
	)
	if err != nil {
		return fmt.Errorf("failed to update card state: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %v", err)
	}
	if affected == 0 {
		return ErrConflict
	}
	return nil
}

func dbTypeIs(t string) bool {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}
	return dbType == t
}
