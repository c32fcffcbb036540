package models

import "time"

// AnonymousQuestion is a user question routed to the administrator.
// PublicID is what the admin sees and replies to; the Telegram id is kept
// only so the answer can be delivered back and is never shown in the
// admin listing.
type AnonymousQuestion struct {
	ID         uint   `gorm:"primaryKey"`
	PublicID   string `gorm:"uniqueIndex"`
	TelegramID int64  `gorm:"index"`
	Question   string
	Answer     string
	Answered   bool `gorm:"index"`
	AskedAt    time.Time
	AnsweredAt *time.Time
}
