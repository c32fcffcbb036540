package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shiziso/Bot/internal/content"
	"github.com/Shiziso/Bot/internal/repository"
)

// handleMood shows the mood picker.
func (b *Bot) handleMood(msg *tgbotapi.Message) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(content.Moods))
	for _, m := range content.Moods {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(m.Emoji+" "+m.Label, "mood_"+m.Key)))
	}
	out := tgbotapi.NewMessage(msg.Chat.ID, "Как вы себя чувствуете сегодня?")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.sender.Send(out); err != nil {
		b.log.Warn("Failed to send mood picker", zap.Error(err))
	}
}

// callbackMood asks whether the user wants to add notes to the check-in.
func (b *Bot) callbackMood(ctx context.Context, cb *tgbotapi.CallbackQuery, moodKey string) {
	mood := content.MoodByKey(moodKey)
	if mood == nil {
		b.log.Debug("Unknown mood key", zap.String("key", moodKey))
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Добавить заметку", "notes_yes_"+mood.Key),
			tgbotapi.NewInlineKeyboardButtonData("Сохранить без заметки", "notes_no_"+mood.Key),
		),
	)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("%s %s\n\nХотите добавить заметку к записи?", mood.Emoji, mood.Label),
		&keyboard)
}

// callbackMoodNotes finishes the check-in with or without notes.
func (b *Bot) callbackMoodNotes(ctx context.Context, cb *tgbotapi.CallbackQuery, data string) {
	var withNotes bool
	var moodKey string
	switch {
	case strings.HasPrefix(data, "yes_"):
		withNotes = true
		moodKey = strings.TrimPrefix(data, "yes_")
	case strings.HasPrefix(data, "no_"):
		moodKey = strings.TrimPrefix(data, "no_")
	default:
		return
	}
	mood := content.MoodByKey(moodKey)
	if mood == nil {
		return
	}

	if withNotes {
		b.setPending(cb.From.ID, pendingState{kind: pendingMoodNotes, moodKey: moodKey})
		b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
			"Напишите заметку к записи настроения одним сообщением.", nil)
		return
	}

	if _, err := repository.SaveMood(ctx, cb.From.ID, mood.Key, mood.Emoji, mood.Label, ""); err != nil {
		b.log.Error("Failed to save mood", zap.Int64("telegram_id", cb.From.ID), zap.Error(err))
		b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "Не удалось сохранить настроение. Попробуйте позже.", nil)
		return
	}
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("%s Настроение «%s» записано. Посмотреть историю: /moodhistory", mood.Emoji, mood.Label), nil)
}

// saveMoodWithNotes stores the check-in once the notes message arrives.
func (b *Bot) saveMoodWithNotes(ctx context.Context, msg *tgbotapi.Message, moodKey string) {
	mood := content.MoodByKey(moodKey)
	if mood == nil {
		b.setPending(msg.From.ID, pendingState{})
		return
	}
	b.setPending(msg.From.ID, pendingState{})

	if _, err := repository.SaveMood(ctx, msg.From.ID, mood.Key, mood.Emoji, mood.Label, strings.TrimSpace(msg.Text)); err != nil {
		b.log.Error("Failed to save mood", zap.Int64("telegram_id", msg.From.ID), zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось сохранить настроение. Попробуйте позже.")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("%s Настроение «%s» записано вместе с заметкой.", mood.Emoji, mood.Label))
}

// handleMoodHistory lists the user's recent check-ins.
func (b *Bot) handleMoodHistory(ctx context.Context, msg *tgbotapi.Message) {
	entries, err := repository.GetMoodHistory(ctx, msg.From.ID, 14)
	if err != nil {
		b.log.Error("Failed to load mood history", zap.Int64("telegram_id", msg.From.ID), zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось загрузить историю настроения. Попробуйте позже.")
		return
	}
	if len(entries) == 0 {
		b.reply(msg.Chat.ID, "У вас пока нет записей настроения. Отметьте настроение: /mood")
		return
	}

	var sb strings.Builder
	sb.WriteString("📒 История настроения:\n\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s %s %s", e.CreatedAt.Format("02.01 15:04"), e.MoodEmoji, e.MoodText))
		if e.Notes != "" {
			sb.WriteString(" — " + e.Notes)
		}
		sb.WriteString("\n")
	}
	b.reply(msg.Chat.ID, sb.String())
}
