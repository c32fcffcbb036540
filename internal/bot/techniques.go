package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shiziso/Bot/internal/content"
)

// handleTechniques shows the technique category menu.
func (b *Bot) handleTechniques(msg *tgbotapi.Message) {
	out := tgbotapi.NewMessage(msg.Chat.ID, "🧘 Техники самопомощи\n\nВыберите категорию:")
	out.ReplyMarkup = techniqueCategoryKeyboard()
	if _, err := b.sender.Send(out); err != nil {
		b.log.Warn("Failed to send technique menu", zap.Error(err))
	}
}

func techniqueCategoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(content.TechniqueCategories))
	for _, c := range content.TechniqueCategories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Name, "tcat_"+c.Key)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// callbackTechniqueCategory lists the techniques of one category.
func (b *Bot) callbackTechniqueCategory(cb *tgbotapi.CallbackQuery, categoryKey string) {
	if categoryKey == "back" {
		keyboard := techniqueCategoryKeyboard()
		b.edit(cb.Message.Chat.ID, cb.Message.MessageID,
			"🧘 Техники самопомощи\n\nВыберите категорию:", &keyboard)
		return
	}

	techniques := content.TechniquesInCategory(categoryKey)
	if len(techniques) == 0 {
		b.log.Debug("Unknown technique category", zap.String("key", categoryKey))
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(techniques)+1)
	for _, t := range techniques {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.MenuName, "tech_"+t.Key)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "tcat_back")))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, "Выберите технику:", &keyboard)
}

// callbackTechnique shows one technique with a back button to its category.
func (b *Bot) callbackTechnique(cb *tgbotapi.CallbackQuery, key string) {
	t := content.TechniqueByKey(key)
	if t == nil {
		b.log.Debug("Unknown technique", zap.String("key", key))
		return
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "tcat_"+t.Category)))
	b.edit(cb.Message.Chat.ID, cb.Message.MessageID, t.Details, &keyboard)
}
