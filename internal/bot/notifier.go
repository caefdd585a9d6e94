package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
)

// TelegramNotifier delivers core notifications over a single long-lived
// bot client shared with the update loop.
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
}

func NewTelegramNotifier(api *tgbotapi.BotAPI) *TelegramNotifier {
	return &TelegramNotifier{api: api}
}

func (n *TelegramNotifier) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send to %d: %w", chatID, err)
	}
	return nil
}

// PromptDailyReport sends the daily check-in question with a reply
// button that opens the report dialog.
func (n *TelegramNotifier) PromptDailyReport(ctx context.Context, user model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := fmt.Sprintf("Salom %s! 🌟\n\nSiz 1 kun o'tkazdingiz. Hozirgacha nimalar o'rgandingiz?", user.FirstName)
	msg := tgbotapi.NewMessage(user.TelegramID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Javob yozish", fmt.Sprintf("%s%d", cbDailyReportPrefix, user.TelegramID)),
		),
	)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send to %d: %w", user.TelegramID, err)
	}
	return nil
}
