package models

import "time"

// MoodEntry is one mood check-in. MoodKey is the stable identifier
// ("great" … "terrible"); emoji and label are stored alongside so history
// renders without consulting the current mood table.
type MoodEntry struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"index"`
	MoodKey    string
	MoodEmoji  string
	MoodText   string
	Notes      string
	CreatedAt  time.Time `gorm:"index"`
}
