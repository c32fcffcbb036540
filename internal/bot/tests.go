package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/config"
	"github.com/Shiziso/Bot/internal/errs"
	"github.com/Shiziso/Bot/internal/presenter"
	"github.com/Shiziso/Bot/internal/scoring"
	"github.com/Shiziso/Bot/internal/session"
)

// handleTests shows the test picker grouped by category.
func (b *Bot) handleTests(msg *tgbotapi.Message) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, cat := range b.catalog.Categories() {
		tests, err := b.catalog.TestsInCategory(cat.ID)
		if err != nil {
			continue
		}
		for _, t := range tests {
			label := fmt.Sprintf("%s — %s", t.Name, cat.Name)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, "test_"+t.ID)))
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "test_cancel")))

	out := tgbotapi.NewMessage(msg.Chat.ID,
		"📊 Доступные психологические тесты\n\n"+
			"Выберите тест, который хотите пройти.\n\n"+
			presenter.Disclaimer)
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.sender.Send(out); err != nil {
		b.log.Warn("Failed to send test picker", zap.Error(err))
	}
}

// callbackChooseTest shows the description and asks for confirmation.
func (b *Bot) callbackChooseTest(cb *tgbotapi.CallbackQuery, testID string) {
	chatID := cb.Message.Chat.ID
	if testID == "cancel" {
		b.edit(chatID, cb.Message.MessageID, "❌ Выбор теста отменен.", nil)
		return
	}

	t, err := b.catalog.Get(testID)
	if err != nil {
		b.edit(chatID, cb.Message.MessageID, "❌ Выбранный тест недоступен.", nil)
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Начать тест", "confirm_"+t.ID)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "confirm_cancel")),
	)
	text := fmt.Sprintf("📊 *%s*\n\n%s\n\n⏱ Примерное время прохождения: %d мин\n❓ Количество вопросов: %d\n\nГотовы начать тест?",
		t.Name, t.Description, t.Minutes, len(t.Questions))
	b.edit(chatID, cb.Message.MessageID, text, &keyboard)
}

// callbackConfirmTest starts the session and shows the first question.
func (b *Bot) callbackConfirmTest(cb *tgbotapi.CallbackQuery, testID string) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	if testID == "cancel" {
		b.edit(chatID, cb.Message.MessageID, "❌ Прохождение теста отменено.", nil)
		return
	}

	interval := time.Duration(config.Conf.Limits.TestIntervalSeconds) * time.Second
	if wait, ok := b.limiter.Allow(userID, "test", interval); !ok {
		b.edit(chatID, cb.Message.MessageID, waitMessage(wait), nil)
		return
	}

	t, err := b.catalog.Get(testID)
	if err != nil {
		b.edit(chatID, cb.Message.MessageID, "❌ Выбранный тест недоступен.", nil)
		return
	}

	// Starting implicitly replaces any earlier unfinished attempt.
	s := b.sessions.Start(userID, t.ID)
	b.showQuestion(chatID, cb.Message.MessageID, t, s)
}

// showQuestion renders the session's current question with its answer
// keyboard.
func (b *Bot) showQuestion(chatID int64, messageID int, t *catalog.TestDefinition, s *session.Session) {
	q, index, done := scoring.NextQuestion(t, s)
	if done {
		return
	}
	view := presenter.RenderQuestion(t, q, index, len(t.Questions))

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(view.Options))
	for i, label := range view.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "answer_"+strconv.Itoa(i))))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)

	text := fmt.Sprintf("📊 *%s* (Вопрос %s)\n\n%s", view.TestName, view.Progress, view.Prompt)
	b.edit(chatID, messageID, text, &keyboard)
}

// callbackAnswer records the selected option and advances the flow.
func (b *Bot) callbackAnswer(ctx context.Context, cb *tgbotapi.CallbackQuery, rawIndex string) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	s := b.sessions.Get(userID)
	if s == nil {
		b.edit(chatID, cb.Message.MessageID,
			"❌ Активного теста нет. Начните заново: /tests", nil)
		return
	}
	t, err := b.catalog.Get(s.TestID)
	if err != nil {
		b.log.Error("Session references missing test", zap.String("test_id", s.TestID))
		b.sessions.Cancel(userID)
		b.edit(chatID, cb.Message.MessageID, "❌ Произошла ошибка. Начните тест заново: /tests", nil)
		return
	}

	optionIndex, convErr := strconv.Atoi(rawIndex)
	if convErr != nil {
		optionIndex = -1
	}
	if err := s.RecordAnswer(t, optionIndex); err != nil {
		if errs.Is(err, errs.CodeInvalidOption) {
			// Stale keyboard taps land here; re-show the current question.
			b.showQuestion(chatID, cb.Message.MessageID, t, s)
			return
		}
		b.log.Warn("Failed to record answer", zap.Int64("telegram_id", userID), zap.Error(err))
		b.edit(chatID, cb.Message.MessageID, "❌ Произошла ошибка при обработке ответа.", nil)
		return
	}

	if !s.Done(t) {
		b.showQuestion(chatID, cb.Message.MessageID, t, s)
		return
	}
	b.finishTest(ctx, chatID, cb.Message.MessageID, t, s)
}

// finishTest computes, persists and renders the result.
func (b *Bot) finishTest(ctx context.Context, chatID int64, messageID int, t *catalog.TestDefinition, s *session.Session) {
	userID := s.UserID
	result, err := scoring.ComputeResult(t, s.Answers, userID, time.Now().UTC())
	b.sessions.Finish(userID)
	if err != nil {
		// InterpretationGap means broken catalog data; tell the user the
		// test failed rather than inventing a result.
		b.log.Error("Failed to compute result",
			zap.String("test_id", t.ID), zap.Int64("telegram_id", userID), zap.Error(err))
		b.edit(chatID, messageID, "❌ Не удалось рассчитать результат теста. Попробуйте позже.", nil)
		return
	}

	saveFailed := false
	if _, err := b.results.Save(ctx, result); err != nil {
		saveFailed = true
		b.log.Error("Failed to save result",
			zap.String("test_id", t.ID), zap.Int64("telegram_id", userID), zap.Error(err))
	}

	view := presenter.RenderResult(t, result)
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 *Результаты теста %s*\n\n", view.TestName)
	if view.PerSubscale {
		for _, line := range view.Subscales {
			fmt.Fprintf(&sb, "*%s*: %d баллов\n%s\n\n", line.ID, line.Score, line.Interpretation)
		}
	} else {
		fmt.Fprintf(&sb, "Ваш балл: *%d*\n\n*Интерпретация:*\n%s\n\n", view.Score, view.Interpretation)
	}
	sb.WriteString(view.Disclaimer)
	if saveFailed {
		sb.WriteString("\n\n⚠️ Результат не удалось сохранить в историю.")
	}
	b.edit(chatID, messageID, sb.String(), nil)
}
