package session

import (
	"fmt"
	"time"

	"github.com/example/lexibot/internal/database"
	"github.com/example/lexibot/internal/spaced_repetition"
	"github.com/example/lexibot/pkg/models"
)

// Service wires the pure scheduling functions to the repositories: it owns
// the read-compute-write cycle around each review and assembles bounded
// study sessions.
type Service struct {
	engine *spaced_repetition.SM2
	states *database.CardStateRepository
	goals  *database.GoalRepository
	cards  *database.CardRepository
}

// NewService creates a session service with the default SM-2 engine.
func NewService() *Service {
	return &Service{
		engine: spaced_repetition.NewSM2(),
		states: database.NewCardStateRepository(),
		goals:  database.NewGoalRepository(),
		cards:  database.NewCardRepository(),
	}
}

// ApplyReview records one review of a card: it loads the prior memory state
// (defaulting a never-reviewed card), applies the SM-2 update with deadline
// compression when a goal is active, and persists the result as a single
// conditional write. A concurrent duplicate submission surfaces
// database.ErrConflict instead of silently double-counting.
func (s *Service) ApplyReview(userID int64, cardID int, quality float64, today time.Time) (*models.CardMemoryState, error) {
	if quality < 0 || quality > 5 {
		return nil, fmt.Errorf("quality %.2f is outside the 0-5 scale", quality)
	}

	prior, err := s.states.GetByUserAndCard(userID, cardID)
	firstReview := false
	if err == database.ErrNotFound {
		state := models.NewCardMemoryState(userID, cardID)
		prior = &state
		firstReview = true
	} else if err != nil {
		return nil, err
	}

	goal := s.activeGoal(userID, today)

	var next models.CardMemoryState
	if goal != nil {
		next = s.engine.ApplyWithDeadline(*prior, quality, today, goal.DaysRemaining())
	} else {
		next = s.engine.Apply(*prior, quality, today)
	}

	if firstReview {
		if err := s.states.Create(&next); err != nil {
			return nil, err
		}
	} else {
		if err := s.states.UpdateIfUnchanged(&next, prior.TimesReviewed); err != nil {
			return nil, err
		}
	}

	// A new card's first review counts toward the goal's learned words.
	if firstReview && goal != nil {
		if err := s.goals.IncrementWordsLearned(goal.ID); err != nil {
			return nil, err
		}
	}

	return &next, nil
}

// SelectSession computes today's target from the user's active goal and
// returns the bounded, prioritized card list for the session. Cards in the
// goal's topic that were never reviewed participate as "new" candidates.
func (s *Service) SelectSession(userID int64, today time.Time) ([]models.PrioritizedCard, models.DailyTarget, error) {
	goal := s.activeGoal(userID, today)
	target := spaced_repetition.ComputeDailyTarget(goal)

	var topicID int64
	if goal != nil {
		topicID = goal.TopicID
	}

	candidates, err := s.candidateStates(userID, topicID)
	if err != nil {
		return nil, target, err
	}

	return spaced_repetition.SelectSession(candidates, target, today), target, nil
}

// RankWeakWords scores the user's review history and returns the cards most
// at risk, worst first. When the user has an active goal the analysis is
// scoped to cards touched since the goal was created.
func (s *Service) RankWeakWords(userID int64, today time.Time, limit int) ([]models.WeakWordEntry, error) {
	goal := s.activeGoal(userID, today)

	var topicID int64
	var cutoff *time.Time
	if goal != nil {
		topicID = goal.TopicID
		cutoff = &goal.CreatedAt
	}

	rows, err := s.states.GetHistoryForUser(userID, topicID)
	if err != nil {
		return nil, err
	}
	return spaced_repetition.RankWeakWords(rows, cutoff, limit), nil
}

// CreateGoal starts a new study plan for the user.
func (s *Service) CreateGoal(userID, topicID int64, durationDays, sessionsPerDay, targetWords int) (*models.LearningGoal, error) {
	if durationDays <= 0 || sessionsPerDay <= 0 || targetWords <= 0 {
		return nil, fmt.Errorf("goal duration, sessions per day and target words must all be positive")
	}
	goal := &models.LearningGoal{
		UserID:         userID,
		TopicID:        topicID,
		DurationDays:   durationDays,
		CurrentDay:     1,
		SessionsPerDay: sessionsPerDay,
		TargetWords:    targetWords,
		CreatedAt:      time.Now(),
	}
	if err := s.goals.Create(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// activeGoal returns the user's current goal with its day counter advanced to
// today, or nil when no goal is active or the goal window has passed.
func (s *Service) activeGoal(userID int64, today time.Time) *models.LearningGoal {
	goal, err := s.goals.GetActiveForUser(userID)
	if err != nil {
		return nil
	}

	day := daysBetween(goal.CreatedAt, today) + 1
	if day < 1 {
		day = 1
	}
	if day > goal.DurationDays {
		return nil
	}
	if day > goal.CurrentDay {
		if err := s.goals.AdvanceDay(goal.ID, day); err == nil {
			goal.CurrentDay = day
		}
	}
	return goal
}

// candidateStates merges persisted memory states with default "new" states
// for catalog cards the user has never touched.
func (s *Service) candidateStates(userID int64, topicID int64) ([]models.CardMemoryState, error) {
	var catalog []models.Card
	var err error
	if topicID > 0 {
		catalog, err = s.cards.GetByTopic(topicID)
	} else {
		catalog, err = s.cards.GetAll()
	}
	if err != nil {
		return nil, err
	}

	states, err := s.states.GetAllForUser(userID, topicID)
	if err != nil {
		return nil, err
	}

	byCard := make(map[int]models.CardMemoryState, len(states))
	for _, st := range states {
		byCard[st.CardID] = st
	}

	candidates := make([]models.CardMemoryState, 0, len(catalog))
	for _, card := range catalog {
		if st, ok := byCard[card.ID]; ok {
			candidates = append(candidates, st)
		} else {
			candidates = append(candidates, models.NewCardMemoryState(userID, card.ID))
		}
	}
	return candidates, nil
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
