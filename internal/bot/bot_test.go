package bot

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/config"
	"github.com/Shiziso/Bot/internal/database"
	"github.com/Shiziso/Bot/internal/models"
	"github.com/Shiziso/Bot/internal/scoring"
	"github.com/Shiziso/Bot/internal/services"
)

// recordingSender captures everything the bot tries to send.
type recordingSender struct {
	sent []tgbotapi.Chattable
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.sent = append(r.sent, c)
	return tgbotapi.Message{}, nil
}

func (r *recordingSender) lastEdit(t *testing.T) tgbotapi.EditMessageTextConfig {
	t.Helper()
	for i := len(r.sent) - 1; i >= 0; i-- {
		if edit, ok := r.sent[i].(tgbotapi.EditMessageTextConfig); ok {
			return edit
		}
	}
	t.Fatal("no edit was sent")
	return tgbotapi.EditMessageTextConfig{}
}

func (r *recordingSender) lastMessage(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	for i := len(r.sent) - 1; i >= 0; i-- {
		if msg, ok := r.sent[i].(tgbotapi.MessageConfig); ok {
			return msg
		}
	}
	t.Fatal("no message was sent")
	return tgbotapi.MessageConfig{}
}

// memoryResults is an in-memory scoring.ResultStore.
type memoryResults struct {
	saved []*scoring.Result
}

func (m *memoryResults) Save(ctx context.Context, r *scoring.Result) (uint, error) {
	m.saved = append(m.saved, r)
	return uint(len(m.saved)), nil
}

func (m *memoryResults) History(ctx context.Context, userID int64, testID string, limit int) ([]scoring.Result, error) {
	var out []scoring.Result
	for _, r := range m.saved {
		if r.UserID == userID && (testID == "" || r.TestID == testID) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func setupBot(t *testing.T) (*Bot, *recordingSender, *memoryResults) {
	t.Helper()

	config.Conf = &config.Config{
		Telegram: config.TelegramConfig{AdminUserID: 99},
		Limits: config.LimitsConfig{
			TipIntervalSeconds:  3600,
			TestIntervalSeconds: 300,
			AskIntervalSeconds:  600,
			QuestionsPerDay:     3,
			MaxQuestionLength:   500,
		},
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "bot.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.UserSettings{}, &models.TestResultRecord{},
		&models.MoodEntry{}, &models.AnonymousQuestion{}, &models.CommandLog{}, &models.TipLog{},
	))
	database.DB = db

	cat, err := catalog.Default()
	require.NoError(t, err)

	sender := &recordingSender{}
	results := &memoryResults{}
	b := New(zap.NewNop(), sender, cat, results, services.NewTipPicker(rand.NewSource(1)))
	return b, sender, results
}

func commandUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, FirstName: "Анна"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}},
	}}
}

func callbackUpdate(userID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: userID},
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: userID}},
		Data:    data,
	}}
}

func TestStartRegistersUserAndGreets(t *testing.T) {
	b, sender, _ := setupBot(t)

	b.Dispatch(commandUpdate(7, "/start"))

	msg := sender.lastMessage(t)
	assert.Contains(t, msg.Text, "Анна")
	assert.Contains(t, msg.Text, "/tests")

	var user models.User
	require.NoError(t, database.DB.Where("telegram_id = ?", int64(7)).First(&user).Error)
	var settings models.UserSettings
	require.NoError(t, database.DB.Where("telegram_id = ?", int64(7)).First(&settings).Error)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, "09:00", settings.DailyTipTime)
}

func TestUnknownCommand(t *testing.T) {
	b, sender, _ := setupBot(t)

	b.Dispatch(commandUpdate(7, "/frobnicate"))
	assert.Contains(t, sender.lastMessage(t).Text, "/help")
}

func TestFullTestFlow(t *testing.T) {
	b, sender, results := setupBot(t)
	const userID int64 = 7

	b.Dispatch(callbackUpdate(userID, "test_gad7"))
	assert.Contains(t, sender.lastEdit(t).Text, "Готовы начать тест?")

	b.Dispatch(callbackUpdate(userID, "confirm_gad7"))
	assert.Contains(t, sender.lastEdit(t).Text, "1 из 7")

	for i := 0; i < 7; i++ {
		b.Dispatch(callbackUpdate(userID, "answer_0"))
	}

	require.Len(t, results.saved, 1)
	r := results.saved[0]
	assert.Equal(t, "gad7", r.TestID)
	assert.Equal(t, 0, r.Score)
	assert.NotEmpty(t, r.Interpretation)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, r.Answers)

	final := sender.lastEdit(t)
	assert.Contains(t, final.Text, "Результаты")
	assert.Contains(t, final.Text, "не являются диагнозом")

	// The session is gone; a stray tap cannot resurrect it.
	b.Dispatch(callbackUpdate(userID, "answer_0"))
	assert.Contains(t, sender.lastEdit(t).Text, "Активного теста нет")
	assert.Len(t, results.saved, 1)
}

func TestStaleAnswerReShowsQuestion(t *testing.T) {
	b, sender, results := setupBot(t)
	const userID int64 = 7

	b.Dispatch(callbackUpdate(userID, "confirm_gad7"))
	b.Dispatch(callbackUpdate(userID, "answer_0"))

	// An index the current question does not have.
	b.Dispatch(callbackUpdate(userID, "answer_9"))
	assert.Contains(t, sender.lastEdit(t).Text, "2 из 7")

	s := b.sessions.Get(userID)
	require.NotNil(t, s)
	assert.Equal(t, []int{0}, s.Answers)
	assert.Empty(t, results.saved)
}

func TestCancelAbandonsSession(t *testing.T) {
	b, sender, _ := setupBot(t)
	const userID int64 = 7

	b.Dispatch(callbackUpdate(userID, "confirm_phq9"))
	require.NotNil(t, b.sessions.Get(userID))

	b.Dispatch(commandUpdate(userID, "/cancel"))
	assert.Nil(t, b.sessions.Get(userID))
	assert.Contains(t, sender.lastMessage(t).Text, "отменено")
}

func TestStartingAnotherTestReplacesSession(t *testing.T) {
	b, _, _ := setupBot(t)
	const userID int64 = 7

	b.Dispatch(callbackUpdate(userID, "confirm_gad7"))
	b.Dispatch(callbackUpdate(userID, "answer_0"))

	// Rate limit would block an immediate second start, so lift it.
	config.Conf.Limits.TestIntervalSeconds = 0
	b.Dispatch(callbackUpdate(userID, "confirm_phq9"))

	s := b.sessions.Get(userID)
	require.NotNil(t, s)
	assert.Equal(t, "phq9", s.TestID)
	assert.Empty(t, s.Answers)
}

func TestSubscaleTestRendersPerSubscaleResult(t *testing.T) {
	b, sender, results := setupBot(t)
	const userID int64 = 7

	b.Dispatch(callbackUpdate(userID, "confirm_hads"))
	for i := 0; i < 14; i++ {
		b.Dispatch(callbackUpdate(userID, "answer_0"))
	}

	require.Len(t, results.saved, 1)
	r := results.saved[0]
	assert.Len(t, r.SubscaleScores, 2)
	assert.Len(t, r.SubscaleInterpretations, 2)

	final := sender.lastEdit(t)
	assert.Contains(t, final.Text, "anxiety")
	assert.Contains(t, final.Text, "depression")
}

func TestRateLimitBlocksImmediateRetake(t *testing.T) {
	b, sender, _ := setupBot(t)
	const userID int64 = 7

	b.Dispatch(callbackUpdate(userID, "confirm_gad7"))
	b.Dispatch(callbackUpdate(userID, "confirm_gad7"))
	assert.Contains(t, sender.lastEdit(t).Text, "подождите")
}
