package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
)

// TaskRepository handles CRUD for homework tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// MarkCompleted writes the pending→completed transition. The status
// predicate makes concurrent calls race-safe: only one update matches.
func (r *TaskRepository) MarkCompleted(ctx context.Context, taskID uint, completedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status = ?", taskID, model.TaskStatusPending).
		Updates(map[string]interface{}{
			"status":       model.TaskStatusCompleted,
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return false, fmt.Errorf("complete task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *TaskRepository) SetRating(ctx context.Context, taskID uint, rating int) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).Update("rating", rating).Error; err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	return nil
}

func (r *TaskRepository) SetFeedback(ctx context.Context, taskID uint, feedback string) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).Update("feedback", feedback).Error; err != nil {
		return fmt.Errorf("set feedback: %w", err)
	}
	return nil
}

// ListPending returns all tasks still awaiting completion, used to
// re-arm deadline timers after a restart.
func (r *TaskRepository) ListPending(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("status = ?", model.TaskStatusPending).
		Order("assigned_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
