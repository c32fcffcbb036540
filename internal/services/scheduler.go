package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/Shiziso/Bot/internal/models"
	"github.com/Shiziso/Bot/internal/repository"
)

type Scheduler struct {
	log      *zap.Logger
	notifier *Notifier
	tips     *TipPicker
}

func NewScheduler(log *zap.Logger, notifier *Notifier, tips *TipPicker) *Scheduler {
	return &Scheduler{
		log:      log,
		notifier: notifier,
		tips:     tips,
	}
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	s.log.Info("Starting daily tip scheduler...")
	go func() {
		// Ticker will fire on every minute.
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.runTipCheck()
		}
	}()
}

func (s *Scheduler) runTipCheck() {
	// Get current time in UTC, formatted as HH:MM
	currentTime := time.Now().UTC().Format("15:04")
	s.log.Debug("Running daily tip check", zap.String("utc_time", currentTime))

	// Tip times are stored as UTC minutes, so the comparison is direct.
	users, err := repository.GetUsersForDailyTip(currentTime)
	if err != nil {
		s.log.Error("Failed to get users for daily tip", zap.Error(err))
		return
	}

	for _, settings := range users {
		delivered, err := repository.HasReceivedTipToday(settings.TelegramID)
		if err != nil {
			s.log.Error("Failed to check tip delivery status",
				zap.Int64("telegram_id", settings.TelegramID), zap.Error(err))
			continue
		}

		if !delivered {
			go s.sendTip(settings)
		}
	}
}

func (s *Scheduler) sendTip(settings models.UserSettings) {
	tip, err := s.tips.Pick(settings.TelegramID)
	if err != nil {
		s.log.Error("Failed to pick a daily tip",
			zap.Int64("telegram_id", settings.TelegramID), zap.Error(err))
		return
	}
	if err := s.notifier.SendDailyTip(settings.TelegramID, tip); err != nil {
		return
	}
	if err := repository.LogTipDelivery(settings.TelegramID, tip); err != nil {
		s.log.Error("Failed to log tip delivery",
			zap.Int64("telegram_id", settings.TelegramID), zap.Error(err))
	}
}
