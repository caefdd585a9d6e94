package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
)

// ReportRepository appends daily check-in reports.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Append(ctx context.Context, report *model.DailyReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("create daily report: %w", err)
	}
	return nil
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID int64) ([]model.DailyReport, error) {
	var reports []model.DailyReport
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
