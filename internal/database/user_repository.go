package database

import (
	"database/sql"
	"fmt"

	"github.com/example/lexibot/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByTelegramID returns a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, `
		SELECT telegram_id, username, first_name, notification_enabled, notification_hour,
		       created_at, updated_at
		FROM users WHERE telegram_id = $1
	`, telegramID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// CreateOrUpdate registers a user, refreshing their profile fields on repeat /start
func (r *UserRepository) CreateOrUpdate(user *models.User) error {
	existing, err := r.GetByTelegramID(user.ID)
	if err == ErrNotFound {
		_, err := DB.Exec(`
			INSERT INTO users (telegram_id, username, first_name, notification_enabled, notification_hour)
			VALUES ($1, $2, $3, $4, $5)
		`, user.ID, user.Username, user.FirstName, user.NotificationEnabled, user.NotificationHour)
		if err != nil {
			return fmt.Errorf("failed to create user: %v", err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	_, err = DB.Exec(`
		UPDATE users SET username = $1, first_name = $2, updated_at = CURRENT_TIMESTAMP
		WHERE telegram_id = $3
	`, user.Username, user.FirstName, existing.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	return nil
}

// GetUsersForNotification returns users who want a reminder at the given hour
func (r *UserRepository) GetUsersForNotification(hour int) ([]models.User, error) {
	var users []models.User
	err := DB.Select(&users, `
		SELECT telegram_id, username, first_name, notification_enabled, notification_hour,
		       created_at, updated_at
		FROM users
		WHERE notification_enabled = true AND notification_hour = $1
	`, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %v", err)
	}
	return users, nil
}

// SetNotificationHour updates the user's preferred reminder hour
func (r *UserRepository) SetNotificationHour(telegramID int64, hour int) error {
	_, err := DB.Exec(`
		UPDATE users SET notification_hour = $1, updated_at = CURRENT_TIMESTAMP
		WHERE telegram_id = $2
	`, hour, telegramID)
	if err != nil {
		return fmt.Errorf("failed to set notification hour: %v", err)
	}
	return nil
}
