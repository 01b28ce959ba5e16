package bot

import (
	"context"
	"fmt"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/lexibot/internal/database"
	"github.com/example/lexibot/internal/session"
	"github.com/example/lexibot/pkg/models"
)

// Bot is the Telegram front end of the trainer. It translates chat commands
// and button presses into scheduler calls and renders the results.
type Bot struct {
	api      *tgbotapi.BotAPI
	config   *BotConfig
	sessions *session.Service
	userRepo *database.UserRepository
	cardRepo *database.CardRepository
	goalRepo *database.GoalRepository

	mu     sync.Mutex
	active map[int64]*studySession // keyed by user ID
}

// studySession is the in-flight /learn state for one user: the prioritized
// queue and the cursor into it.
type studySession struct {
	queue []models.PrioritizedCard
	pos   int
}

// NewBot creates a bot connected to the Telegram API.
func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	return &Bot{
		api:      api,
		config:   DefaultConfig(),
		sessions: session.NewService(),
		userRepo: database.NewUserRepository(),
		cardRepo: database.NewCardRepository(),
		goalRepo: database.NewGoalRepository(),
		active:   make(map[int64]*studySession),
	}, nil
}

// Sessions exposes the underlying session service, for wiring the reminder
// scheduler in main.
func (b *Bot) Sessions() *session.Service {
	return b.sessions
}

// Start begins polling for updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop shuts down the update channel.
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	return nil
}

// SendStudyReminder implements scheduler.Notifier.
func (b *Bot) SendStudyReminder(userID int64, dueCount int, target string) error {
	text := fmt.Sprintf("You have %d cards waiting for review.", dueCount)
	if target != "" {
		text += fmt.Sprintf(" Today's plan: %s. Send /learn to start.", target)
	} else {
		text += " Send /learn to start."
	}
	msg := tgbotapi.NewMessage(userID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in update handler: %v", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message to %d: %v", chatID, err)
	}
}
