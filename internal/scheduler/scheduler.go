package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/lexibot/internal/database"
	"github.com/example/lexibot/internal/session"
	"github.com/go-co-op/gocron"
)

// Default window of hours during which study reminders may be sent
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier interface for sending study reminders
type Notifier interface {
	SendStudyReminder(userID int64, dueCount int, target string) error
}

// Scheduler manages the periodic reminder job
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  *session.Service
	notifier  Notifier
}

// New creates a new scheduler instance
func New(sessions *session.Service, notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders finds users whose reminder hour has come and tells
// them how much study work is waiting today.
func (s *Scheduler) checkAndSendReminders() {
	now := time.Now()
	currentHour := now.Hour()

	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		return
	}

	userRepo := database.NewUserRepository()
	stateRepo := database.NewCardStateRepository()

	users, err := userRepo.GetUsersForNotification(currentHour)
	if err != nil {
		log.Printf("Error getting users for notification: %v", err)
		return
	}

	for _, user := range users {
		dueCount, err := stateRepo.GetDueCountForUser(user.ID, now)
		if err != nil {
			log.Printf("Error counting due cards for user %d: %v", user.ID, err)
			continue
		}
		if dueCount == 0 {
			continue
		}

		_, target, err := s.sessions.SelectSession(user.ID, now)
		if err != nil {
			log.Printf("Error computing session for user %d: %v", user.ID, err)
			continue
		}

		summary := ""
		if target.TotalCards > 0 {
			summary = strconv.Itoa(target.TotalCards) + " cards, ~" + strconv.Itoa(target.EstimatedMinutes) + " min"
		}

		if err := s.notifier.SendStudyReminder(user.ID, dueCount, summary); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}

func envHour(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
