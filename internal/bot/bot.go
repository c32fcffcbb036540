// Package bot is the Telegram transport: command dispatch, inline
// keyboards and the conversation state machine. Domain logic lives in
// catalog, scoring and session; this layer only wires messages to them.
package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/config"
	"github.com/Shiziso/Bot/internal/repository"
	"github.com/Shiziso/Bot/internal/scoring"
	"github.com/Shiziso/Bot/internal/services"
	"github.com/Shiziso/Bot/internal/session"
)

// pendingKind marks which free-text input the bot is waiting for from a
// user. Only one flow is active per user at a time.
type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingAskQuestion
	pendingMoodNotes
	pendingAdminReply
	pendingTipTime
)

type pendingState struct {
	kind pendingKind
	// moodKey is set while waiting for mood notes.
	moodKey string
	// replyTo is the question public id while the admin types a reply.
	replyTo string
}

// UpdateReceiver is the subset of the bot API used by the long-poll
// loop; separated so tests can drive dispatch directly.
type UpdateReceiver interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Bot struct {
	sender  services.Sender
	log     *zap.Logger
	catalog *catalog.Catalog

	sessions *session.Store
	results  scoring.ResultStore
	limiter  *services.RateLimiter
	tips     *services.TipPicker

	mu      sync.Mutex
	pending map[int64]pendingState
}

func New(log *zap.Logger, sender services.Sender, cat *catalog.Catalog, results scoring.ResultStore, tips *services.TipPicker) *Bot {
	return &Bot{
		sender:   sender,
		log:      log,
		catalog:  cat,
		sessions: session.NewStore(),
		results:  results,
		limiter:  services.NewRateLimiter(),
		tips:     tips,
		pending:  make(map[int64]pendingState),
	}
}

// Run consumes updates until the channel closes.
func (b *Bot) Run(api UpdateReceiver) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	for update := range api.GetUpdatesChan(u) {
		b.Dispatch(update)
	}
}

// Dispatch routes one update. Exposed for tests.
func (b *Bot) Dispatch(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Panic while handling update", zap.Any("panic", r))
		}
	}()

	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil:
		b.handleText(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID := msg.From.ID
	cmd := msg.Command()

	// Best effort; statistics must never break a command.
	if err := repository.LogCommandUsage(ctx, userID, cmd); err != nil {
		b.log.Warn("Failed to log command usage", zap.String("command", cmd), zap.Error(err))
	}
	if err := repository.TouchUserActivity(ctx, userID); err != nil {
		b.log.Warn("Failed to touch user activity", zap.Int64("telegram_id", userID), zap.Error(err))
	}

	// A new command abandons whatever free-text input was pending.
	b.setPending(userID, pendingState{})

	switch {
	case cmd == "start":
		b.handleStart(ctx, msg)
	case cmd == "help":
		b.handleHelp(msg)
	case cmd == "about":
		b.handleAbout(msg)
	case cmd == "tip":
		b.handleTip(ctx, msg)
	case cmd == "tests":
		b.handleTests(msg)
	case cmd == "myresults":
		b.handleMyResults(ctx, msg)
	case cmd == "mood":
		b.handleMood(msg)
	case cmd == "moodhistory":
		b.handleMoodHistory(ctx, msg)
	case cmd == "techniques":
		b.handleTechniques(msg)
	case cmd == "ask":
		b.handleAsk(ctx, msg)
	case cmd == "myquestions":
		b.handleMyQuestions(ctx, msg)
	case cmd == "settings":
		b.handleSettings(ctx, msg)
	case cmd == "cancel":
		b.handleCancel(msg)
	case cmd == "questions":
		b.handleAdminQuestions(ctx, msg)
	case strings.HasPrefix(cmd, "reply_"):
		b.handleAdminReply(ctx, msg, strings.TrimPrefix(cmd, "reply_"))
	default:
		b.reply(msg.Chat.ID, "Неизвестная команда. Отправьте /help, чтобы увидеть список команд.")
	}
}

// handleText feeds free text into whichever flow is waiting for it.
func (b *Bot) handleText(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID := msg.From.ID
	state := b.getPending(userID)

	switch state.kind {
	case pendingAskQuestion:
		b.saveAskedQuestion(ctx, msg)
	case pendingMoodNotes:
		b.saveMoodWithNotes(ctx, msg, state.moodKey)
	case pendingAdminReply:
		b.saveAdminReply(ctx, msg, state.replyTo)
	case pendingTipTime:
		b.saveTipTime(ctx, msg)
	default:
		b.reply(msg.Chat.ID,
			"Я понимаю только команды. Отправьте /help, чтобы увидеть, что я умею.")
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Acknowledge immediately so the client stops its spinner.
	if _, err := b.sender.Send(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Debug("Failed to ack callback", zap.Error(err))
	}

	data := cb.Data
	switch {
	case strings.HasPrefix(data, "test_"):
		b.callbackChooseTest(cb, strings.TrimPrefix(data, "test_"))
	case strings.HasPrefix(data, "confirm_"):
		b.callbackConfirmTest(cb, strings.TrimPrefix(data, "confirm_"))
	case strings.HasPrefix(data, "answer_"):
		b.callbackAnswer(ctx, cb, strings.TrimPrefix(data, "answer_"))
	case strings.HasPrefix(data, "mood_"):
		b.callbackMood(ctx, cb, strings.TrimPrefix(data, "mood_"))
	case strings.HasPrefix(data, "notes_"):
		b.callbackMoodNotes(ctx, cb, strings.TrimPrefix(data, "notes_"))
	case strings.HasPrefix(data, "tcat_"):
		b.callbackTechniqueCategory(cb, strings.TrimPrefix(data, "tcat_"))
	case strings.HasPrefix(data, "tech_"):
		b.callbackTechnique(cb, strings.TrimPrefix(data, "tech_"))
	case strings.HasPrefix(data, "settings_"):
		b.callbackSettings(ctx, cb, strings.TrimPrefix(data, "settings_"))
	default:
		b.log.Debug("Unknown callback", zap.String("data", data))
	}
}

func (b *Bot) setPending(userID int64, state pendingState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if state.kind == pendingNone {
		delete(b.pending, userID)
		return
	}
	b.pending[userID] = state
}

func (b *Bot) getPending(userID int64) pendingState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending[userID]
}

func (b *Bot) isAdmin(userID int64) bool {
	admin := config.Conf.Telegram.AdminUserID
	return admin != 0 && userID == admin
}

// reply sends plain text, splitting messages that exceed the Telegram
// limit.
func (b *Bot) reply(chatID int64, text string) {
	for _, part := range splitText(text, telegramMessageLimit) {
		if _, err := b.sender.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			b.log.Warn("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
	}
}

// replyMarkdown sends Markdown-formatted text.
func (b *Bot) replyMarkdown(chatID int64, text string) {
	for _, part := range splitText(text, telegramMessageLimit) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.sender.Send(msg); err != nil {
			b.log.Warn("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
	}
}

// edit replaces a previously sent message, used to advance inline flows
// in place.
func (b *Bot) edit(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		edit.ReplyMarkup = markup
	}
	if _, err := b.sender.Send(edit); err != nil {
		b.log.Warn("Failed to edit message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
