package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/models"
)

// RegisterUser records a user on first contact and refreshes profile
// fields on every subsequent /start.
func RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error) {
	now := time.Now().UTC()

	var user models.User
	err := database.DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			TelegramID:   telegramID,
			Username:     username,
			FirstName:    firstName,
			LastName:     lastName,
			RegisteredAt: now,
			LastActivity: now,
		}
		if err := database.DB.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, database.DB.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"username":      username,
		"first_name":    firstName,
		"last_name":     lastName,
		"last_activity": now,
	}).Error
}

// TouchUserActivity bumps the last-activity timestamp; called from every
// handled command so retention stats stay meaningful.
func TouchUserActivity(ctx context.Context, telegramID int64) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("last_activity", time.Now().UTC()).Error
}

// GetOrCreateSettings returns the user's settings, creating defaults on
// first access: notifications on, tip at 09:00 UTC.
func GetOrCreateSettings(ctx context.Context, telegramID int64) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := database.DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSettings{
			TelegramID:           telegramID,
			NotificationsEnabled: true,
			DailyTipTime:         "09:00",
		}
		if err := database.DB.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings changes only the fields passed as non-nil.
func UpdateSettings(ctx context.Context, telegramID int64, notificationsEnabled *bool, dailyTipTime *string) error {
	updates := map[string]interface{}{}
	if notificationsEnabled != nil {
		updates["notifications_enabled"] = *notificationsEnabled
	}
	if dailyTipTime != nil {
		updates["daily_tip_time"] = *dailyTipTime
	}
	if len(updates) == 0 {
		return nil
	}
	return database.DB.WithContext(ctx).Model(&models.UserSettings{}).
		Where("telegram_id = ?", telegramID).
		Updates(updates).Error
}

// CountUsers returns the total registered user count.
func CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// GetActiveUsers counts users active within the last given days.
func GetActiveUsers(ctx context.Context, days int) (int64, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.User{}).
		Where("last_activity >= ?", since).
		Count(&count).Error
	return count, err
}
