package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
	"github.com/hackerxuz77-cell/python-course-bot/internal/repository"
)

// PenaltyService accrues fines for low-rated tasks and warns the
// member once their penalty count reaches the threshold.
type PenaltyService struct {
	penalties *repository.PenaltyRepository
	notifier  Notifier

	threshold     int
	penaltyAmount int64
	basePayment   int64
	repeatNotice  bool
}

func NewPenaltyService(
	penalties *repository.PenaltyRepository,
	notifier Notifier,
	threshold int,
	penaltyAmount, basePayment int64,
	repeatNotice bool,
) *PenaltyService {
	return &PenaltyService{
		penalties:     penalties,
		notifier:      notifier,
		threshold:     threshold,
		penaltyAmount: penaltyAmount,
		basePayment:   basePayment,
		repeatNotice:  repeatNotice,
	}
}

// RecordPenalty appends the penalty record and increments the member's
// counter in one transaction, then sends the adjusted-payment notice
// when the count has reached the threshold. A failed notice delivery
// does not undo the recorded penalty; it is surfaced as ErrDelivery
// alongside the new count.
func (s *PenaltyService) RecordPenalty(ctx context.Context, userID int64, amount int64, reason string) (int, error) {
	penalty := model.Penalty{
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		CreatedAt: time.Now(),
	}

	count, err := s.penalties.AppendWithCount(ctx, &penalty)
	if err != nil {
		return 0, fmt.Errorf("record penalty: %w", err)
	}

	if count < s.threshold {
		return count, nil
	}
	if !s.repeatNotice && count != s.threshold {
		return count, nil
	}

	adjusted := s.AdjustedPayment(count)
	text := fmt.Sprintf(
		"⚠️ Sizda %d marta jarima to'plandingiz. Keyingi oy %d so'm to'lashingiz kerak bo'ladi.",
		count, adjusted,
	)
	if err := s.notifier.Send(ctx, userID, text); err != nil {
		return count, fmt.Errorf("threshold notice for user %d: %w: %v", userID, ErrDelivery, err)
	}
	return count, nil
}

// AdjustedPayment is the next monthly payment after count penalties.
func (s *PenaltyService) AdjustedPayment(count int) int64 {
	return s.basePayment + s.penaltyAmount*int64(count)
}

// History lists a member's penalties, oldest first.
func (s *PenaltyService) History(ctx context.Context, userID int64) ([]model.Penalty, error) {
	return s.penalties.ListByUser(ctx, userID)
}
