package repository

import (
	"context"
	"time"

	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/models"
)

// TimelineDataPoint is one day on a dashboard chart.
type TimelineDataPoint struct {
	Day   string `json:"day"`
	Value int64  `json:"value"`
}

// GetCommandTimeline counts handled commands per day over the last days.
func GetCommandTimeline(ctx context.Context, days int) ([]TimelineDataPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	var data []TimelineDataPoint
	err := database.DB.WithContext(ctx).Model(&models.CommandLog{}).
		Select("DATE(created_at) as day, COUNT(*) as value").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day").
		Scan(&data).Error
	return data, err
}

// GetTestCompletionTimeline counts completed tests per day.
func GetTestCompletionTimeline(ctx context.Context, days int) ([]TimelineDataPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	var data []TimelineDataPoint
	err := database.DB.WithContext(ctx).Model(&models.TestResultRecord{}).
		Select("DATE(completed_at) as day, COUNT(*) as value").
		Where("completed_at >= ?", since).
		Group("DATE(completed_at)").
		Order("day").
		Scan(&data).Error
	return data, err
}

// GetMoodTimeline counts mood check-ins per day.
func GetMoodTimeline(ctx context.Context, days int) ([]TimelineDataPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	var data []TimelineDataPoint
	err := database.DB.WithContext(ctx).Model(&models.MoodEntry{}).
		Select("DATE(created_at) as day, COUNT(*) as value").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day").
		Scan(&data).Error
	return data, err
}
