package models

import "time"

// CommandLog records one command invocation for usage statistics.
type CommandLog struct {
	ID         uint      `gorm:"primaryKey"`
	TelegramID int64     `gorm:"index"`
	Command    string    `gorm:"index"`
	CreatedAt  time.Time `gorm:"index"`
}

// TipLog remembers which tip a user received on which day so the daily
// tip is not repeated within a day.
type TipLog struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"index"`
	TipText    string
	CreatedAt  time.Time `gorm:"index"`
}
