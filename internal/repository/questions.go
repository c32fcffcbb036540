package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/models"
)

// SaveAnonymousQuestion stores a question addressed to the administrator
// and returns its public id. The asking user's Telegram id is kept for
// reply delivery but never exposed through the admin listing.
func SaveAnonymousQuestion(ctx context.Context, telegramID int64, question string) (string, error) {
	q := models.AnonymousQuestion{
		PublicID:   uuid.NewString()[:8],
		TelegramID: telegramID,
		Question:   question,
		AskedAt:    time.Now().UTC(),
	}
	if err := database.DB.WithContext(ctx).Create(&q).Error; err != nil {
		return "", err
	}
	return q.PublicID, nil
}

// CountQuestionsToday supports the per-day question quota.
func CountQuestionsToday(ctx context.Context, telegramID int64) (int64, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.AnonymousQuestion{}).
		Where("telegram_id = ? AND asked_at >= ?", telegramID, today).
		Count(&count).Error
	return count, err
}

// GetQuestionByPublicID resolves the id the admin replies to.
func GetQuestionByPublicID(ctx context.Context, publicID string) (*models.AnonymousQuestion, error) {
	var q models.AnonymousQuestion
	err := database.DB.WithContext(ctx).Where("public_id = ?", publicID).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// AnswerQuestion stores the admin's reply.
func AnswerQuestion(ctx context.Context, publicID, answer string) error {
	now := time.Now().UTC()
	return database.DB.WithContext(ctx).Model(&models.AnonymousQuestion{}).
		Where("public_id = ?", publicID).
		Updates(map[string]interface{}{
			"answer":      answer,
			"answered":    true,
			"answered_at": &now,
		}).Error
}

// GetUserQuestions lists a user's own questions, most recent first.
func GetUserQuestions(ctx context.Context, telegramID int64, limit int) ([]models.AnonymousQuestion, error) {
	var qs []models.AnonymousQuestion
	q := database.DB.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		Order("asked_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&qs).Error
	return qs, err
}

// GetUnansweredQuestions lists open questions for the admin, oldest first
// so nothing starves.
func GetUnansweredQuestions(ctx context.Context, limit int) ([]models.AnonymousQuestion, error) {
	var qs []models.AnonymousQuestion
	q := database.DB.WithContext(ctx).
		Where("answered = ?", false).
		Order("asked_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&qs).Error
	return qs, err
}
