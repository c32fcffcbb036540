package repository

import (
	"context"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/errs"
	"github.com/Shiziso/Bot/internal/models"
	"github.com/Shiziso/Bot/internal/scoring"
)

// Results adapts the repository to the scoring.ResultStore boundary.
type Results struct{}

func NewResults() Results { return Results{} }

func (Results) Save(ctx context.Context, r *scoring.Result) (uint, error) {
	return SaveTestResult(ctx, r)
}

func (Results) History(ctx context.Context, userID int64, testID string, limit int) ([]scoring.Result, error) {
	return GetTestHistory(ctx, userID, testID, limit)
}

// SaveTestResult persists a completed attempt. Failures surface as
// persistence errors for the caller to handle; there are no retries here.
func SaveTestResult(ctx context.Context, r *scoring.Result) (uint, error) {
	record := models.TestResultRecord{
		TelegramID:     r.UserID,
		TestID:         r.TestID,
		TestName:       r.TestName,
		Score:          r.Score,
		Interpretation: r.Interpretation,
		Answers:        toInt64Array(r.Answers),
		CompletedAt:    r.CompletedAt,
	}
	if len(r.SubscaleScores) > 0 {
		scores, err := json.Marshal(r.SubscaleScores)
		if err != nil {
			return 0, errs.Persistence("failed to encode subscale scores", err)
		}
		texts, err := json.Marshal(r.SubscaleInterpretations)
		if err != nil {
			return 0, errs.Persistence("failed to encode subscale interpretations", err)
		}
		record.SubscaleScores = string(scores)
		record.SubscaleInterpretations = string(texts)
	}

	if err := database.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return 0, errs.Persistence("failed to save test result", err)
	}
	return record.ID, nil
}

// GetTestHistory returns a user's results, most recent first. An empty
// testID means all tests.
func GetTestHistory(ctx context.Context, userID int64, testID string, limit int) ([]scoring.Result, error) {
	q := database.DB.WithContext(ctx).
		Where("telegram_id = ?", userID).
		Order("completed_at DESC")
	if testID != "" {
		q = q.Where("test_id = ?", testID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []models.TestResultRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, errs.Persistence("failed to load test history", err)
	}

	results := make([]scoring.Result, 0, len(records))
	for _, rec := range records {
		r := scoring.Result{
			UserID:         rec.TelegramID,
			TestID:         rec.TestID,
			TestName:       rec.TestName,
			Score:          rec.Score,
			Interpretation: rec.Interpretation,
			CompletedAt:    rec.CompletedAt,
			Answers:        fromInt64Array(rec.Answers),
		}
		if rec.SubscaleScores != "" {
			if err := json.Unmarshal([]byte(rec.SubscaleScores), &r.SubscaleScores); err != nil {
				return nil, errs.Persistence("failed to decode subscale scores", err)
			}
		}
		if rec.SubscaleInterpretations != "" {
			if err := json.Unmarshal([]byte(rec.SubscaleInterpretations), &r.SubscaleInterpretations); err != nil {
				return nil, errs.Persistence("failed to decode subscale interpretations", err)
			}
		}
		results = append(results, r)
	}
	return results, nil
}

func toInt64Array(answers []int) pq.Int64Array {
	out := make(pq.Int64Array, len(answers))
	for i, a := range answers {
		out[i] = int64(a)
	}
	return out
}

func fromInt64Array(arr pq.Int64Array) []int {
	out := make([]int, len(arr))
	for i, a := range arr {
		out[i] = int(a)
	}
	return out
}
