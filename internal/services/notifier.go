package services

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the minimal Telegram surface the services need. The bot API
// client satisfies it; tests substitute a recorder.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier pushes proactive messages (daily tips, admin replies) to
// users outside of a command exchange.
type Notifier struct {
	log    *zap.Logger
	sender Sender
}

func NewNotifier(log *zap.Logger, sender Sender) *Notifier {
	return &Notifier{log: log, sender: sender}
}

// SendDailyTip delivers the tip of the day to one user.
func (n *Notifier) SendDailyTip(telegramID int64, tip string) error {
	msg := tgbotapi.NewMessage(telegramID, "💡 Совет дня:\n\n"+tip)
	if _, err := n.sender.Send(msg); err != nil {
		n.log.Warn("Failed to deliver daily tip",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// SendText delivers a plain text message.
func (n *Notifier) SendText(telegramID int64, text string) error {
	_, err := n.sender.Send(tgbotapi.NewMessage(telegramID, text))
	return err
}
