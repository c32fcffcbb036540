package repository

import (
	"context"
	"time"

	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/models"
)

// SaveMood records a mood check-in.
func SaveMood(ctx context.Context, telegramID int64, moodKey, moodEmoji, moodText, notes string) (uint, error) {
	entry := models.MoodEntry{
		TelegramID: telegramID,
		MoodKey:    moodKey,
		MoodEmoji:  moodEmoji,
		MoodText:   moodText,
		Notes:      notes,
		CreatedAt:  time.Now().UTC(),
	}
	err := database.DB.WithContext(ctx).Create(&entry).Error
	return entry.ID, err
}

// GetMoodHistory returns the user's check-ins, most recent first.
func GetMoodHistory(ctx context.Context, telegramID int64, limit int) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	q := database.DB.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}

// MoodCount is one slice of the mood distribution chart.
type MoodCount struct {
	MoodKey  string
	MoodText string
	Count    int64
}

// GetMoodDistribution aggregates check-ins by mood over the last days,
// across all users, for the admin dashboard.
func GetMoodDistribution(ctx context.Context, days int) ([]MoodCount, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	var counts []MoodCount
	err := database.DB.WithContext(ctx).Model(&models.MoodEntry{}).
		Select("mood_key, mood_text, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("mood_key, mood_text").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}
