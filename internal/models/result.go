package models

import (
	"time"

	"github.com/lib/pq"
)

// TestResultRecord is the persisted form of a completed test attempt.
// Test name and interpretation text are denormalized snapshots: the
// catalog entry may change later without invalidating stored history.
type TestResultRecord struct {
	ID         uint   `gorm:"primaryKey"`
	TelegramID int64  `gorm:"index:idx_results_user_test"`
	TestID     string `gorm:"index:idx_results_user_test"`
	TestName   string
	Score      int
	// Answers is the selected option index per question, in question order.
	Answers pq.Int64Array `gorm:"type:integer[]"`
	// Interpretation is the resolved text for sum-strategy tests. The
	// subscale columns carry JSON-encoded maps for the subscales
	// strategy and are empty otherwise.
	Interpretation          string
	SubscaleScores          string
	SubscaleInterpretations string
	CompletedAt             time.Time `gorm:"index"`
	CreatedAt               time.Time
}
