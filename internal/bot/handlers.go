package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/lexibot/internal/database"
	"github.com/example/lexibot/internal/spaced_repetition"
	"github.com/example/lexibot/pkg/models"
)

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	userID := message.From.ID

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "goal":
		b.handleGoal(userID, message.CommandArguments())
	case "learn":
		b.handleLearn(userID)
	case "weak":
		b.handleWeak(userID)
	case "stats":
		b.handleStats(userID)
	case "remind":
		b.handleRemind(userID, message.CommandArguments())
	default:
		b.send(userID, "Unknown command. Try /learn, /goal, /weak, /stats or /remind.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	user := &models.User{
		ID:                  message.From.ID,
		Username:            message.From.UserName,
		FirstName:           message.From.FirstName,
		NotificationEnabled: true,
		NotificationHour:    9,
	}
	if err := b.userRepo.CreateOrUpdate(user); err != nil {
		log.Printf("Error registering user %d: %v", user.ID, err)
		b.send(user.ID, "Something went wrong, please try again.")
		return
	}
	b.send(user.ID, "Welcome! Set a study plan with /goal <topic> <days> <words>, then start a session with /learn.")
}

// handleGoal creates a study plan: /goal <topic> <days> <words>
func (b *Bot) handleGoal(userID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		goal, err := b.goalRepo.GetActiveForUser(userID)
		if err != nil {
			b.send(userID, "No active goal. Create one with /goal <topic> <days> <words>.")
			return
		}
		b.send(userID, fmt.Sprintf("Day %d of %d: %d of %d words learned.",
			goal.CurrentDay, goal.DurationDays, goal.WordsLearned, goal.TargetWords))
		return
	}

	topicName := fields[0]
	days := b.config.DefaultGoalDays
	words := b.config.DefaultTargetWords
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			days = n
		}
	}
	if len(fields) > 2 {
		if n, err := strconv.Atoi(fields[2]); err == nil {
			words = n
		}
	}

	topicRepo := database.NewTopicRepository()
	topic, err := topicRepo.GetOrCreateByName(topicName)
	if err != nil {
		log.Printf("Error resolving topic %q: %v", topicName, err)
		b.send(userID, "Could not create that goal, please try again.")
		return
	}

	goal, err := b.sessions.CreateGoal(userID, topic.ID, days, b.config.DefaultSessionsPerDay, words)
	if err != nil {
		b.send(userID, fmt.Sprintf("Could not create goal: %v", err))
		return
	}

	target := spaced_repetition.ComputeDailyTarget(goal)
	b.send(userID, fmt.Sprintf("Goal created: %d words from %q in %d days. Today: %d new cards, ~%d minutes.",
		words, topicName, days, target.NewCards, target.EstimatedMinutes))
}

func (b *Bot) handleLearn(userID int64) {
	cards, target, err := b.sessions.SelectSession(userID, time.Now())
	if err != nil {
		log.Printf("Error selecting session for user %d: %v", userID, err)
		b.send(userID, "Could not build a session, please try again.")
		return
	}
	if len(cards) == 0 {
		b.send(userID, "Nothing to review right now. Well done!")
		return
	}
	if len(cards) > b.config.SessionCardCap {
		cards = cards[:b.config.SessionCardCap]
	}

	b.mu.Lock()
	b.active[userID] = &studySession{queue: cards}
	b.mu.Unlock()

	if target.TotalCards > 0 {
		b.send(userID, fmt.Sprintf("Session started: %d cards (~%d min planned).", len(cards), target.EstimatedMinutes))
	} else {
		b.send(userID, fmt.Sprintf("Session started: %d cards.", len(cards)))
	}
	b.sendNextCard(userID)
}

func (b *Bot) handleWeak(userID int64) {
	entries, err := b.sessions.RankWeakWords(userID, time.Now(), b.config.WeakWordLimit)
	if err != nil {
		log.Printf("Error ranking weak words for user %d: %v", userID, err)
		b.send(userID, "Could not analyze your progress, please try again.")
		return
	}
	if len(entries) == 0 {
		b.send(userID, "No words look at risk right now.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Words that need attention:\n")
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("%d. %s — %s (missed %d times)\n", i+1, e.Word, e.Translation, e.TimesWrong))
	}
	b.send(userID, sb.String())
}

func (b *Bot) handleStats(userID int64) {
	stateRepo := database.NewCardStateRepository()
	states, err := stateRepo.GetAllForUser(userID, 0)
	if err != nil {
		log.Printf("Error loading stats for user %d: %v", userID, err)
		b.send(userID, "Could not load your statistics, please try again.")
		return
	}

	reviewed, correct := 0, 0
	for _, st := range states {
		reviewed += st.TimesReviewed
		correct += st.TimesCorrect
	}
	accuracy := 0.0
	if reviewed > 0 {
		accuracy = float64(correct) / float64(reviewed) * 100
	}
	b.send(userID, fmt.Sprintf("Cards in training: %d. Reviews: %d. Accuracy: %.0f%%.", len(states), reviewed, accuracy))
}

func (b *Bot) handleRemind(userID int64, args string) {
	hour, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || hour < 0 || hour > 23 {
		b.send(userID, "Usage: /remind <hour 0-23>")
		return
	}
	if err := b.userRepo.SetNotificationHour(userID, hour); err != nil {
		log.Printf("Error setting reminder hour for user %d: %v", userID, err)
		b.send(userID, "Could not update your reminder time.")
		return
	}
	b.send(userID, fmt.Sprintf("Daily reminder set to %02d:00.", hour))
}

// sendNextCard shows the current card of the user's session with answer
// buttons, or closes the session when the queue is exhausted.
func (b *Bot) sendNextCard(userID int64) {
	b.mu.Lock()
	sess, ok := b.active[userID]
	if ok && sess.pos >= len(sess.queue) {
		delete(b.active, userID)
		ok = false
	}
	var current models.PrioritizedCard
	if ok {
		current = sess.queue[sess.pos]
	}
	b.mu.Unlock()

	if !ok {
		b.send(userID, "Session complete. See you tomorrow!")
		return
	}

	card, err := b.cardRepo.GetByID(current.State.CardID)
	if err != nil {
		log.Printf("Error loading card %d: %v", current.State.CardID, err)
		b.skipCurrentCard(userID)
		return
	}

	msg := tgbotapi.NewMessage(userID, fmt.Sprintf("How well do you know:\n\n%s", card.Word))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("I know it", fmt.Sprintf("ans:%d:1", card.ID)),
			tgbotapi.NewInlineKeyboardButtonData("Not sure", fmt.Sprintf("ans:%d:2", card.ID)),
			tgbotapi.NewInlineKeyboardButtonData("Forgot", fmt.Sprintf("ans:%d:0", card.ID)),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending card to %d: %v", userID, err)
	}
}

func (b *Bot) skipCurrentCard(userID int64) {
	b.mu.Lock()
	if sess, ok := b.active[userID]; ok {
		sess.pos++
	}
	b.mu.Unlock()
	b.sendNextCard(userID)
}

// handleCallback processes a flashcard answer button: the press becomes an
// activity outcome, gets normalized to a quality, and updates the card's
// memory state.
func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	userID := query.From.ID

	parts := strings.Split(query.Data, ":")
	if len(parts) != 3 || parts[0] != "ans" {
		return
	}
	cardID, err := strconv.Atoi(parts[1])
	if err != nil {
		return
	}

	outcome := spaced_repetition.Outcome{}
	switch parts[2] {
	case "1":
		outcome.Correct = true
		outcome.Attempts = 1
	case "2":
		outcome.Correct = true
		outcome.Attempts = 2
	default:
		outcome.Correct = false
	}

	quality, err := spaced_repetition.NormalizeQuality(spaced_repetition.ActivityFlashcard, outcome)
	if err != nil {
		log.Printf("Error normalizing outcome: %v", err)
		return
	}

	state, err := b.sessions.ApplyReview(userID, cardID, quality, time.Now())
	if err == database.ErrConflict {
		// Duplicate tap on the same card; the first press already counted.
		b.answerCallback(query.ID, "Already recorded")
		return
	}
	if err != nil {
		log.Printf("Error applying review for user %d card %d: %v", userID, cardID, err)
		b.answerCallback(query.ID, "Something went wrong")
		return
	}

	card, cardErr := b.cardRepo.GetByID(cardID)
	if cardErr == nil {
		b.send(userID, fmt.Sprintf("%s — %s\nNext review in %d day(s).", card.Word, card.Translation, state.IntervalDays))
	}
	b.answerCallback(query.ID, "")

	b.mu.Lock()
	if sess, ok := b.active[userID]; ok {
		sess.pos++
	}
	b.mu.Unlock()
	b.sendNextCard(userID)
}

func (b *Bot) answerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
}
