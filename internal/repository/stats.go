package repository

import (
	"context"
	"time"

	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/models"
)

// LogCommandUsage records a command invocation for usage statistics.
// Statistics are best effort: callers log failures and move on.
func LogCommandUsage(ctx context.Context, telegramID int64, command string) error {
	return database.DB.WithContext(ctx).Create(&models.CommandLog{
		TelegramID: telegramID,
		Command:    command,
		CreatedAt:  time.Now().UTC(),
	}).Error
}

// CommandCount is one row of the per-command usage table.
type CommandCount struct {
	Command string
	Count   int64
}

// GetCommandStats aggregates usage per command over the last days.
func GetCommandStats(ctx context.Context, days int) ([]CommandCount, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	var counts []CommandCount
	err := database.DB.WithContext(ctx).Model(&models.CommandLog{}).
		Select("command, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("command").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

// Overview is the headline block of the admin dashboard.
type Overview struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsersWeek   int64 `json:"active_users_week"`
	TestsCompleted    int64 `json:"tests_completed"`
	MoodEntries       int64 `json:"mood_entries"`
	OpenQuestions     int64 `json:"open_questions"`
	AnsweredQuestions int64 `json:"answered_questions"`
}

// GetOverview gathers the headline counters in one place.
func GetOverview(ctx context.Context) (*Overview, error) {
	var o Overview
	var err error

	if o.TotalUsers, err = CountUsers(ctx); err != nil {
		return nil, err
	}
	if o.ActiveUsersWeek, err = GetActiveUsers(ctx, 7); err != nil {
		return nil, err
	}
	db := database.DB.WithContext(ctx)
	if err = db.Model(&models.TestResultRecord{}).Count(&o.TestsCompleted).Error; err != nil {
		return nil, err
	}
	if err = db.Model(&models.MoodEntry{}).Count(&o.MoodEntries).Error; err != nil {
		return nil, err
	}
	if err = db.Model(&models.AnonymousQuestion{}).Where("answered = ?", false).Count(&o.OpenQuestions).Error; err != nil {
		return nil, err
	}
	if err = db.Model(&models.AnonymousQuestion{}).Where("answered = ?", true).Count(&o.AnsweredQuestions).Error; err != nil {
		return nil, err
	}
	return &o, nil
}
