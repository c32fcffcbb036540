package models

import "time"

// User is a Telegram user known to the bot. TelegramID is the identity
// everywhere; the numeric primary key exists only for foreign keys.
type User struct {
	ID           uint  `gorm:"primaryKey"`
	TelegramID   int64 `gorm:"uniqueIndex"`
	Username     string
	FirstName    string
	LastName     string
	RegisteredAt time.Time
	LastActivity time.Time
}

type UserSettings struct {
	ID                   uint  `gorm:"primaryKey"`
	TelegramID           int64 `gorm:"uniqueIndex"`
	NotificationsEnabled bool
	// DailyTipTime is the UTC "HH:MM" minute the daily tip is pushed at.
	DailyTipTime string
	UpdatedAt    time.Time
}
