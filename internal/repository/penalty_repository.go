package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
)

// PenaltyRepository appends penalty records and keeps the per-user
// penalty counter in step with them.
type PenaltyRepository struct {
	db *gorm.DB
}

func NewPenaltyRepository(db *gorm.DB) *PenaltyRepository {
	return &PenaltyRepository{db: db}
}

// AppendWithCount inserts the penalty row and increments the owner's
// penalty_count in one transaction, returning the new count. The
// increment happens SQL-side so concurrent penalties for the same user
// never lose an update.
func (r *PenaltyRepository) AppendWithCount(ctx context.Context, penalty *model.Penalty) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(penalty).Error; err != nil {
			return fmt.Errorf("create penalty: %w", err)
		}
		res := tx.Model(&model.User{}).
			Where("telegram_id = ?", penalty.UserID).
			Update("penalty_count", gorm.Expr("penalty_count + ?", 1))
		if res.Error != nil {
			return fmt.Errorf("increment penalty count: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		var user model.User
		if err := tx.First(&user, "telegram_id = ?", penalty.UserID).Error; err != nil {
			return fmt.Errorf("read penalty count: %w", err)
		}
		count = user.PenaltyCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PenaltyRepository) ListByUser(ctx context.Context, userID int64) ([]model.Penalty, error) {
	var penalties []model.Penalty
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at ASC").Find(&penalties).Error; err != nil {
		return nil, err
	}
	return penalties, nil
}
