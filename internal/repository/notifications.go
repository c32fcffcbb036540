package repository

import (
	"time"

	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/models"
)

// GetUsersForDailyTip finds users whose daily tip is scheduled at the
// given UTC "HH:MM" minute and who have notifications enabled.
func GetUsersForDailyTip(tipTime string) ([]models.UserSettings, error) {
	var settings []models.UserSettings
	err := database.DB.
		Where("notifications_enabled = ? AND daily_tip_time = ?", true, tipTime).
		Find(&settings).Error
	return settings, err
}

// HasReceivedTipToday checks whether the user already got a tip on the
// current UTC day, so scheduled and manual tips never double up.
func HasReceivedTipToday(telegramID int64) (bool, error) {
	var count int64
	today := time.Now().UTC().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	err := database.DB.Model(&models.TipLog{}).
		Where("telegram_id = ? AND created_at >= ? AND created_at < ?", telegramID, today, tomorrow).
		Count(&count).Error

	return count > 0, err
}

// LogTipDelivery records that a tip reached the user.
func LogTipDelivery(telegramID int64, tipText string) error {
	return database.DB.Create(&models.TipLog{
		TelegramID: telegramID,
		TipText:    tipText,
		CreatedAt:  time.Now().UTC(),
	}).Error
}

// GetRecentTips returns the texts of tips the user received within the
// last given days, used to avoid repeats when picking the next tip.
func GetRecentTips(telegramID int64, days int) ([]string, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	var texts []string
	err := database.DB.Model(&models.TipLog{}).
		Where("telegram_id = ? AND created_at >= ?", telegramID, since).
		Order("created_at DESC").
		Pluck("tip_text", &texts).Error
	return texts, err
}
