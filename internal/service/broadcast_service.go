package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
	"github.com/hackerxuz77-cell/python-course-bot/internal/repository"
)

// BroadcastService drives the recurring daily check-in prompt and the
// admin-triggered subscription sweep. A failure to reach one member
// never stops delivery to the rest.
type BroadcastService struct {
	users         *repository.UserRepository
	notifier      Notifier
	warningWindow time.Duration
}

func NewBroadcastService(users *repository.UserRepository, notifier Notifier, warningWindow time.Duration) *BroadcastService {
	return &BroadcastService{
		users:         users,
		notifier:      notifier,
		warningWindow: warningWindow,
	}
}

// SendDailyPrompts asks every member with an active subscription for
// their daily report.
func (s *BroadcastService) SendDailyPrompts(ctx context.Context) error {
	users, err := s.users.ListSubscribedAfter(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("list subscribed users: %w", err)
	}

	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.notifier.PromptDailyReport(ctx, user); err != nil {
			log.Printf("daily prompt to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

// UpcomingPaymentsSweep warns members whose subscription ends within
// the warning window and returns them, soonest expiry first, for the
// caller to render.
func (s *BroadcastService) UpcomingPaymentsSweep(ctx context.Context, now time.Time) ([]model.User, error) {
	users, err := s.users.ListExpiringBefore(ctx, now.Add(s.warningWindow))
	if err != nil {
		return nil, fmt.Errorf("list expiring users: %w", err)
	}

	for _, user := range users {
		daysLeft := int(user.SubscriptionEnd.Sub(now).Hours() / 24)
		text := fmt.Sprintf("⚠️ Ogohlantirish: Sizning obunangizga %d kun qoldi. Obunangizni yanglang!", daysLeft)
		if err := s.notifier.Send(ctx, user.TelegramID, text); err != nil {
			log.Printf("payment warning to %d: %v", user.TelegramID, err)
		}
	}
	return users, nil
}
