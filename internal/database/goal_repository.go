package database

import (
	"database/sql"
	"fmt"

	"github.com/example/lexibot/pkg/models"
)

// GoalRepository handles database operations for learning goals
type GoalRepository struct{}

// NewGoalRepository creates a new repository instance
func NewGoalRepository() *GoalRepository {
	return &GoalRepository{}
}

// GetActiveForUser returns the user's most recent goal that has not run past
// its duration, or ErrNotFound when the user has no active goal.
func (r *GoalRepository) GetActiveForUser(userID int64) (*models.LearningGoal, error) {
	var goal models.LearningGoal
	err := DB.Get(&goal, `
		SELECT * FROM learning_goals
		WHERE user_id = $1 AND current_day <= duration_days
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active goal: %v", err)
	}
	return &goal, nil
}

// Create inserts a new learning goal.
func (r *GoalRepository) Create(goal *models.LearningGoal) error {
	if dbTypeIs("sqlite") {
		result, err := DB.Exec(`
			INSERT INTO learning_goals (
				user_id, topic_id, duration_days, current_day, sessions_per_day,
				target_words, words_learned
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			goal.UserID, goal.TopicID, goal.DurationDays, goal.CurrentDay,
			goal.SessionsPerDay, goal.TargetWords, goal.WordsLearned,
		)
		if err != nil {
			return fmt.Errorf("failed to create goal: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get goal id: %v", err)
		}
		goal.ID = id
		return nil
	}

	return DB.QueryRow(`
		INSERT INTO learning_goals (
			user_id, topic_id, duration_days, current_day, sessions_per_day,
			target_words, words_learned
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		goal.UserID, goal.TopicID, goal.DurationDays, goal.CurrentDay,
		goal.SessionsPerDay, goal.TargetWords, goal.WordsLearned,
	).Scan(&goal.ID)
}

// AdvanceDay moves the goal to the given day. Used when the first session of
// a new calendar day starts.
func (r *GoalRepository) AdvanceDay(goalID int64, day int) error {
	_, err := DB.Exec(`
		UPDATE learning_goals SET current_day = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, day, goalID)
	if err != nil {
		return fmt.Errorf("failed to advance goal day: %v", err)
	}
	return nil
}

// IncrementWordsLearned bumps the learned-word counter when a new card gets
// its first review.
func (r *GoalRepository) IncrementWordsLearned(goalID int64) error {
	_, err := DB.Exec(`
		UPDATE learning_goals SET words_learned = words_learned + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`, goalID)
	if err != nil {
		return fmt.Errorf("failed to increment words learned: %v", err)
	}
	return nil
}
