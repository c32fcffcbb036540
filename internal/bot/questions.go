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
)

// handleAsk starts the anonymous question flow after checking quota and
// rate limits.
func (b *Bot) handleAsk(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	interval := time.Duration(config.Conf.Limits.AskIntervalSeconds) * time.Second
	if wait, ok := b.limiter.Allow(userID, "ask", interval); !ok {
		b.reply(msg.Chat.ID, waitMessage(wait))
		return
	}

	count, err := repository.CountQuestionsToday(ctx, userID)
	if err != nil {
		b.log.Error("Failed to count questions", zap.Int64("telegram_id", userID), zap.Error(err))
		b.reply(msg.Chat.ID, "Произошла ошибка. Пожалуйста, попробуйте позже.")
		return
	}
	if limit := int64(config.Conf.Limits.QuestionsPerDay); count >= limit {
		b.reply(msg.Chat.ID, fmt.Sprintf(
			"Вы уже задали %d вопроса(ов) сегодня. Новые вопросы можно будет задать завтра.", count))
		return
	}

	b.setPending(userID, pendingState{kind: pendingAskQuestion})
	b.reply(msg.Chat.ID,
		"✍️ Напишите ваш вопрос психологу одним сообщением.\n\n"+
			"Вопрос передается анонимно: специалист не увидит ваше имя. Отменить: /cancel")
}

// saveAskedQuestion stores the question and notifies the administrator.
func (b *Bot) saveAskedQuestion(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	if text == "" {
		b.reply(msg.Chat.ID, "Вопрос не может быть пустым. Напишите текст вопроса или отмените: /cancel")
		return
	}
	if max := config.Conf.Limits.MaxQuestionLength; len([]rune(text)) > max {
		b.reply(msg.Chat.ID, fmt.Sprintf(
			"Вопрос слишком длинный (максимум %d символов). Сократите его и отправьте снова.", max))
		return
	}
	b.setPending(userID, pendingState{})

	publicID, err := repository.SaveAnonymousQuestion(ctx, userID, text)
	if err != nil {
		b.log.Error("Failed to save question", zap.Int64("telegram_id", userID), zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось отправить вопрос. Попробуйте позже.")
		return
	}

	b.reply(msg.Chat.ID, fmt.Sprintf(
		"✅ Вопрос отправлен анонимно (номер %s). Ответ придет сюда же. Ваши вопросы: /myquestions", publicID))

	if admin := config.Conf.Telegram.AdminUserID; admin != 0 {
		note := tgbotapi.NewMessage(admin, fmt.Sprintf(
			"📨 Новый анонимный вопрос %s:\n\n%s\n\nОтветить: /reply_%s", publicID, text, publicID))
		if _, err := b.sender.Send(note); err != nil {
			b.log.Warn("Failed to notify admin", zap.String("public_id", publicID), zap.Error(err))
		}
	}
}

// handleMyQuestions lists the user's own questions and any answers.
func (b *Bot) handleMyQuestions(ctx context.Context, msg *tgbotapi.Message) {
	qs, err := repository.GetUserQuestions(ctx, msg.From.ID, 10)
	if err != nil {
		b.log.Error("Failed to load questions", zap.Int64("telegram_id", msg.From.ID), zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось загрузить ваши вопросы. Попробуйте позже.")
		return
	}
	if len(qs) == 0 {
		b.reply(msg.Chat.ID, "Вы еще не задавали вопросов. Задать вопрос: /ask")
		return
	}

	var sb strings.Builder
	sb.WriteString("📨 Ваши вопросы:\n\n")
	for _, q := range qs {
		sb.WriteString(fmt.Sprintf("❓ [%s] %s\n", q.AskedAt.Format("02.01.2006"), q.Question))
		if q.Answered {
			sb.WriteString("💬 Ответ: " + q.Answer + "\n")
		} else {
			sb.WriteString("⏳ Ответ еще не получен.\n")
		}
		sb.WriteString("\n")
	}
	b.reply(msg.Chat.ID, sb.String())
}

// handleAdminQuestions lists unanswered questions, oldest first. Admin only.
func (b *Bot) handleAdminQuestions(ctx context.Context, msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		b.reply(msg.Chat.ID, "Неизвестная команда. Отправьте /help, чтобы увидеть список команд.")
		return
	}

	qs, err := repository.GetUnansweredQuestions(ctx, 20)
	if err != nil {
		b.log.Error("Failed to load unanswered questions", zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось загрузить вопросы.")
		return
	}
	if len(qs) == 0 {
		b.reply(msg.Chat.ID, "Открытых вопросов нет. 🎉")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📨 Открытые вопросы (%d):\n\n", len(qs)))
	for _, q := range qs {
		sb.WriteString(fmt.Sprintf("[%s] %s\n%s\nОтветить: /reply_%s\n\n",
			q.AskedAt.Format("02.01.2006"), q.PublicID, q.Question, q.PublicID))
	}
	b.reply(msg.Chat.ID, sb.String())
}

// handleAdminReply starts the reply flow for one question. Admin only.
func (b *Bot) handleAdminReply(ctx context.Context, msg *tgbotapi.Message, publicID string) {
	if !b.isAdmin(msg.From.ID) {
		b.reply(msg.Chat.ID, "Неизвестная команда. Отправьте /help, чтобы увидеть список команд.")
		return
	}

	q, err := repository.GetQuestionByPublicID(ctx, publicID)
	if err != nil {
		b.reply(msg.Chat.ID, fmt.Sprintf("Вопрос %s не найден.", publicID))
		return
	}
	if q.Answered {
		b.reply(msg.Chat.ID, fmt.Sprintf("На вопрос %s уже дан ответ.", publicID))
		return
	}

	b.setPending(msg.From.ID, pendingState{kind: pendingAdminReply, replyTo: publicID})
	b.reply(msg.Chat.ID, fmt.Sprintf(
		"Вопрос %s:\n\n%s\n\nНапишите ответ одним сообщением. Отменить: /cancel", publicID, q.Question))
}

// saveAdminReply stores the reply and relays it to the asking user.
func (b *Bot) saveAdminReply(ctx context.Context, msg *tgbotapi.Message, publicID string) {
	answer := strings.TrimSpace(msg.Text)
	if answer == "" {
		b.reply(msg.Chat.ID, "Ответ не может быть пустым. Напишите текст ответа или отмените: /cancel")
		return
	}
	b.setPending(msg.From.ID, pendingState{})

	q, err := repository.GetQuestionByPublicID(ctx, publicID)
	if err != nil {
		b.reply(msg.Chat.ID, fmt.Sprintf("Вопрос %s не найден.", publicID))
		return
	}
	if err := repository.AnswerQuestion(ctx, publicID, answer); err != nil {
		b.log.Error("Failed to save answer", zap.String("public_id", publicID), zap.Error(err))
		b.reply(msg.Chat.ID, "Не удалось сохранить ответ. Попробуйте позже.")
		return
	}

	relay := tgbotapi.NewMessage(q.TelegramID, fmt.Sprintf(
		"💬 Ответ на ваш вопрос:\n\n❓ %s\n\n%s", q.Question, answer))
	if _, err := b.sender.Send(relay); err != nil {
		b.log.Warn("Failed to relay answer", zap.String("public_id", publicID), zap.Error(err))
		b.reply(msg.Chat.ID, "Ответ сохранен, но доставить его пользователю не удалось.")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("✅ Ответ на вопрос %s отправлен.", publicID))
}
