package service

import (
	"context"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
)

// Notifier delivers messages to a Telegram recipient. Delivery is
// best-effort: failures are reported, never retried.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error

	// PromptDailyReport asks a member for their daily check-in. The
	// transport decides how to render the reply affordance.
	PromptDailyReport(ctx context.Context, user model.User) error
}
