package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/errs"
	"github.com/Shiziso/Bot/internal/models"
	"github.com/Shiziso/Bot/internal/scoring"
)

func setupDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.UserSettings{}, &models.TestResultRecord{},
		&models.MoodEntry{}, &models.AnonymousQuestion{}, &models.CommandLog{}, &models.TipLog{},
	))
	database.DB = db
}

func TestSaveAndLoadSumResult(t *testing.T) {
	setupDB(t)
	ctx := context.Background()
	completed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	id, err := SaveTestResult(ctx, &scoring.Result{
		UserID:         7,
		TestID:         "gad7",
		TestName:       "GAD-7",
		Score:          11,
		Interpretation: "умеренная тревожность",
		Answers:        []int{1, 2, 1, 2, 1, 2, 2},
		CompletedAt:    completed,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	history, err := GetTestHistory(ctx, 7, "", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	r := history[0]
	assert.Equal(t, "gad7", r.TestID)
	assert.Equal(t, 11, r.Score)
	assert.Equal(t, "умеренная тревожность", r.Interpretation)
	assert.Equal(t, []int{1, 2, 1, 2, 1, 2, 2}, r.Answers)
	assert.Nil(t, r.SubscaleScores)
}

func TestSaveAndLoadSubscaleResult(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	_, err := SaveTestResult(ctx, &scoring.Result{
		UserID:   7,
		TestID:   "hads",
		TestName: "HADS",
		Score:    15,
		Answers:  []int{0, 1, 2},
		SubscaleScores: map[string]int{
			"anxiety": 9, "depression": 6,
		},
		SubscaleInterpretations: map[string]string{
			"anxiety": "субклиническая", "depression": "норма",
		},
		CompletedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	history, err := GetTestHistory(ctx, 7, "hads", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, map[string]int{"anxiety": 9, "depression": 6}, history[0].SubscaleScores)
	assert.Equal(t, "норма", history[0].SubscaleInterpretations["depression"])
}

func TestGetTestHistoryFiltersAndOrders(t *testing.T) {
	setupDB(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, testID := range []string{"gad7", "phq9", "gad7"} {
		_, err := SaveTestResult(ctx, &scoring.Result{
			UserID:      7,
			TestID:      testID,
			TestName:    testID,
			Score:       i,
			Answers:     []int{0},
			CompletedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := SaveTestResult(ctx, &scoring.Result{
		UserID: 8, TestID: "gad7", TestName: "gad7", Answers: []int{0}, CompletedAt: base,
	})
	require.NoError(t, err)

	history, err := GetTestHistory(ctx, 7, "gad7", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Most recent first.
	assert.Equal(t, 2, history[0].Score)
	assert.Equal(t, 0, history[1].Score)

	limited, err := GetTestHistory(ctx, 7, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	empty, err := GetTestHistory(ctx, 9, "", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRegisterUserIsUpsert(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	first, err := RegisterUser(ctx, 7, "anna", "Анна", "")
	require.NoError(t, err)

	second, err := RegisterUser(ctx, 7, "anna_new", "Анна", "Иванова")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var stored models.User
	require.NoError(t, database.DB.Where("telegram_id = ?", int64(7)).First(&stored).Error)
	assert.Equal(t, "anna_new", stored.Username)
}

func TestGetOrCreateSettingsDefaults(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	settings, err := GetOrCreateSettings(ctx, 7)
	require.NoError(t, err)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, "09:00", settings.DailyTipTime)

	disabled := false
	tipTime := "21:30"
	require.NoError(t, UpdateSettings(ctx, 7, &disabled, &tipTime))

	reloaded, err := GetOrCreateSettings(ctx, 7)
	require.NoError(t, err)
	assert.False(t, reloaded.NotificationsEnabled)
	assert.Equal(t, "21:30", reloaded.DailyTipTime)
}

func TestAnonymousQuestionLifecycle(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	publicID, err := SaveAnonymousQuestion(ctx, 7, "Как справиться с тревогой?")
	require.NoError(t, err)
	assert.Len(t, publicID, 8)

	count, err := CountQuestionsToday(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	open, err := GetUnansweredQuestions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, open, 1)

	require.NoError(t, AnswerQuestion(ctx, publicID, "Попробуйте дыхательные техники."))

	q, err := GetQuestionByPublicID(ctx, publicID)
	require.NoError(t, err)
	assert.True(t, q.Answered)
	assert.Equal(t, int64(7), q.TelegramID)
	require.NotNil(t, q.AnsweredAt)

	open, err = GetUnansweredQuestions(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, open)

	mine, err := GetUserQuestions(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Попробуйте дыхательные техники.", mine[0].Answer)
}

func TestMoodHistoryAndDistribution(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	_, err := SaveMood(ctx, 7, "good", "😊", "Хорошо", "")
	require.NoError(t, err)
	_, err = SaveMood(ctx, 7, "bad", "😟", "Плохо", "тяжелый день")
	require.NoError(t, err)

	history, err := GetMoodHistory(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "bad", history[0].MoodKey)
	assert.Equal(t, "тяжелый день", history[0].Notes)

	dist, err := GetMoodDistribution(ctx, 30)
	require.NoError(t, err)
	assert.Len(t, dist, 2)
}

func TestTipDeliveryTracking(t *testing.T) {
	setupDB(t)

	got, err := HasReceivedTipToday(7)
	require.NoError(t, err)
	assert.False(t, got)

	require.NoError(t, LogTipDelivery(7, "Дышите глубже."))

	got, err = HasReceivedTipToday(7)
	require.NoError(t, err)
	assert.True(t, got)

	recent, err := GetRecentTips(7, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Дышите глубже."}, recent)
}

func TestResultStoreBoundary(t *testing.T) {
	setupDB(t)
	ctx := context.Background()

	var store scoring.ResultStore = NewResults()
	_, err := store.Save(ctx, &scoring.Result{
		UserID: 7, TestID: "gad7", TestName: "GAD-7", Answers: []int{0}, CompletedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	history, err := store.History(ctx, 7, "gad7", 5)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestPersistenceErrorsCarryCode(t *testing.T) {
	setupDB(t)
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = SaveTestResult(context.Background(), &scoring.Result{
		UserID: 7, TestID: "gad7", TestName: "GAD-7", Answers: []int{0}, CompletedAt: time.Now().UTC(),
	})
	assert.True(t, errs.Is(err, errs.CodePersistence), "got %v", err)
}
