package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shiziso/Bot/internal/config"
	"github.com/Shiziso/Bot/internal/repository"
	"github.com/Shiziso/Bot/internal/utils"
)

const helpText = `Я бот психологической поддержки и самопомощи. Вот что я умею:

/tip — совет дня
/tests — психологические тесты
/myresults — ваши результаты тестов
/mood — отметить настроение
/moodhistory — история настроения
/techniques — техники самопомощи
/ask — анонимный вопрос психологу
/myquestions — ваши вопросы и ответы
/settings — настройки уведомлений
/cancel — прервать текущее действие
/about — о боте`

const aboutText = `🤖 Психологический бот-помощник

Бот для психологической поддержки и самопомощи: ежедневные советы, дневник настроения, психологические тесты и анонимные вопросы специалисту.

⚠️ Важно: бот не заменяет профессиональную психологическую или медицинскую помощь.`

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	from := msg.From
	user, err := repository.RegisterUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		b.log.Error("Failed to register user", zap.Int64("telegram_id", from.ID), zap.Error(err))
		b.reply(msg.Chat.ID, "Произошла ошибка. Пожалуйста, попробуйте позже.")
		return
	}
	if _, err := repository.GetOrCreateSettings(ctx, from.ID); err != nil {
		b.log.Error("Failed to create settings", zap.Int64("telegram_id", from.ID), zap.Error(err))
	}

	name := user.FirstName
	if name == "" {
		name = "друг"
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("Здравствуйте, %s! 👋\n\n%s", name, helpText))
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, helpText)
}

func (b *Bot) handleAbout(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, aboutText)
}

func (b *Bot) handleTip(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	interval := time.Duration(config.Conf.Limits.TipIntervalSeconds) * time.Second
	if wait, ok := b.limiter.Allow(userID, "tip", interval); !ok {
		b.reply(msg.Chat.ID, waitMessage(wait))
		return
	}

	tip, err := b.tips.Pick(userID)
	if err != nil {
		b.log.Error("Failed to pick tip", zap.Int64("telegram_id", userID), zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось подобрать совет. Попробуйте позже.")
		return
	}
	b.reply(msg.Chat.ID, "💡 Совет дня:\n\n"+tip)

	if err := repository.LogTipDelivery(userID, tip); err != nil {
		b.log.Warn("Failed to log tip delivery", zap.Int64("telegram_id", userID), zap.Error(err))
	}
}

func (b *Bot) handleMyResults(ctx context.Context, msg *tgbotapi.Message) {
	results, err := b.results.History(ctx, msg.From.ID, "", 10)
	if err != nil {
		b.log.Error("Failed to load test history", zap.Int64("telegram_id", msg.From.ID), zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось загрузить историю результатов. Попробуйте позже.")
		return
	}
	if len(results) == 0 {
		b.reply(msg.Chat.ID, "У вас пока нет результатов. Пройдите тест: /tests")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Ваши последние результаты:\n\n")
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("• *%s* — %d баллов (%s)\n",
			r.TestName, r.Score, r.CompletedAt.Format("02.01.2006")))
		if len(r.SubscaleInterpretations) > 0 {
			for sub, text := range r.SubscaleInterpretations {
				sb.WriteString(fmt.Sprintf("    %s (%d): %s\n", sub, r.SubscaleScores[sub], firstSentence(text)))
			}
		} else if r.Interpretation != "" {
			sb.WriteString("    " + firstSentence(r.Interpretation) + "\n")
		}
	}
	b.replyMarkdown(msg.Chat.ID, sb.String())
}

func (b *Bot) handleSettings(ctx context.Context, msg *tgbotapi.Message) {
	settings, err := repository.GetOrCreateSettings(ctx, msg.From.ID)
	if err != nil {
		b.log.Error("Failed to load settings", zap.Int64("telegram_id", msg.From.ID), zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось загрузить настройки. Попробуйте позже.")
		return
	}

	status := "включены"
	toggleLabel := "🔕 Выключить уведомления"
	if !settings.NotificationsEnabled {
		status = "выключены"
		toggleLabel = "🔔 Включить уведомления"
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toggleLabel, "settings_toggle"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🕘 Изменить время совета", "settings_tiptime"),
		),
	)

	out := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(
		"⚙️ Настройки\n\nУведомления: %s\nВремя совета дня: %s (UTC)",
		status, settings.DailyTipTime))
	out.ReplyMarkup = keyboard
	if _, err := b.sender.Send(out); err != nil {
		b.log.Warn("Failed to send settings", zap.Error(err))
	}
}

func (b *Bot) callbackSettings(ctx context.Context, cb *tgbotapi.CallbackQuery, action string) {
	userID := cb.From.ID
	switch action {
	case "toggle":
		settings, err := repository.GetOrCreateSettings(ctx, userID)
		if err != nil {
			b.log.Error("Failed to load settings", zap.Int64("telegram_id", userID), zap.Error(err))
			return
		}
		enabled := !settings.NotificationsEnabled
		if err := repository.UpdateSettings(ctx, userID, &enabled, nil); err != nil {
			b.log.Error("Failed to update settings", zap.Int64("telegram_id", userID), zap.Error(err))
			b.reply(cb.Message.Chat.ID, "Не удалось сохранить настройки. Попробуйте позже.")
			return
		}
		if enabled {
			b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "🔔 Уведомления включены.", nil)
		} else {
			b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "🔕 Уведомления выключены.", nil)
		}
	case "tiptime":
		b.setPending(userID, pendingState{kind: pendingTipTime})
		b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
			"Отправьте время совета дня в формате ЧЧ:ММ (UTC), например 09:30.", nil)
	}
}

func (b *Bot) saveTipTime(ctx context.Context, msg *tgbotapi.Message) {
	t := strings.TrimSpace(msg.Text)
	if !utils.IsValidTipTime(t) {
		b.reply(msg.Chat.ID, "Неверный формат. Отправьте время как ЧЧ:ММ, например 09:30.")
		return
	}
	b.setPending(msg.From.ID, pendingState{})
	if err := repository.UpdateSettings(ctx, msg.From.ID, nil, &t); err != nil {
		b.log.Error("Failed to update tip time", zap.Int64("telegram_id", msg.From.ID), zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось сохранить настройки. Попробуйте позже.")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("🕘 Совет дня будет приходить в %s (UTC).", t))
}

func (b *Bot) handleCancel(msg *tgbotapi.Message) {
	b.sessions.Cancel(msg.From.ID)
	b.setPending(msg.From.ID, pendingState{})
	b.reply(msg.Chat.ID, "❌ Текущее действие отменено.")
}

func waitMessage(wait time.Duration) string {
	switch {
	case wait < time.Minute:
		return fmt.Sprintf("⏳ Пожалуйста, подождите %d секунд перед повторным использованием этой функции.", int(wait.Seconds())+1)
	case wait < time.Hour:
		return fmt.Sprintf("⏳ Пожалуйста, подождите %d минут перед повторным использованием этой функции.", int(wait.Minutes())+1)
	default:
		return fmt.Sprintf("⏳ Пожалуйста, подождите %d часов перед повторным использованием этой функции.", int(wait.Hours())+1)
	}
}

func firstSentence(text string) string {
	if i := strings.IndexRune(text, '.'); i > 0 {
		return text[:i+1]
	}
	return text
}
