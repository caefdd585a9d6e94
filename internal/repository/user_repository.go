package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
)

// UserRepository handles CRUD for course members.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// RegisterMember creates a user on first group membership. An existing
// record is left untouched (join date and subscription stay as granted
// the first time).
func (r *UserRepository) RegisterMember(ctx context.Context, user *model.User) error {
	var existing model.User
	db := r.db.WithContext(ctx)
	err := db.First(&existing, "telegram_id = ?", user.TelegramID).Error
	switch {
	case err == nil:
		*user = existing
		return nil
	case err == gorm.ErrRecordNotFound:
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) FindByID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "telegram_id = ?", telegramID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("joined_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListSubscribedAfter returns users whose subscription is still active at t.
func (r *UserRepository) ListSubscribedAfter(ctx context.Context, t time.Time) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("subscription_end > ?", t).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListExpiringBefore returns users whose subscription ends before t,
// soonest first.
func (r *UserRepository) ListExpiringBefore(ctx context.Context, t time.Time) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("subscription_end < ?", t).
		Order("subscription_end ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
