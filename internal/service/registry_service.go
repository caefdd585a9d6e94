package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
	"github.com/hackerxuz77-cell/python-course-bot/internal/repository"
)

// RegistryService owns the task lifecycle: assignment, completion,
// rating and feedback. Tasks move pending→completed exactly once;
// rating and feedback exist only on completed tasks.
type RegistryService struct {
	users     *repository.UserRepository
	tasks     *repository.TaskRepository
	deadlines *DeadlineService
	penalties *PenaltyService

	taskDeadline  time.Duration
	penaltyAmount int64
}

func NewRegistryService(
	users *repository.UserRepository,
	tasks *repository.TaskRepository,
	deadlines *DeadlineService,
	penalties *PenaltyService,
	taskDeadline time.Duration,
	penaltyAmount int64,
) *RegistryService {
	return &RegistryService{
		users:         users,
		tasks:         tasks,
		deadlines:     deadlines,
		penalties:     penalties,
		taskDeadline:  taskDeadline,
		penaltyAmount: penaltyAmount,
	}
}

// Assign creates a pending task for the member and arms its deadline
// timer.
func (s *RegistryService) Assign(ctx context.Context, userID, adminID int64, text string) (*model.Task, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientUnknown
		}
		return nil, fmt.Errorf("lookup recipient: %w", err)
	}

	task := model.Task{
		UserID:     userID,
		AdminID:    adminID,
		Text:       text,
		AssignedAt: time.Now(),
		Status:     model.TaskStatusPending,
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}

	s.deadlines.Arm(task.ID, task.Deadline(s.taskDeadline))
	return &task, nil
}

// Complete marks a pending task completed and disarms its deadline
// timer. A second call is rejected with ErrAlreadyCompleted and leaves
// the stored completion time untouched.
func (s *RegistryService) Complete(ctx context.Context, taskID uint) (*model.Task, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}

	changed, err := s.tasks.MarkCompleted(ctx, taskID, time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrAlreadyCompleted
	}

	// Status is persisted before disarming, so a timer firing in this
	// window re-reads "completed" and stays silent.
	s.deadlines.Disarm(taskID)

	return s.tasks.FindByID(ctx, taskID)
}

// Rate records the admin's 1..5 rating on a completed task. Each task
// is rated exactly once.
func (s *RegistryService) Rate(ctx context.Context, taskID uint, rating int) (*model.Task, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != model.TaskStatusCompleted {
		return nil, ErrTaskNotCompleted
	}
	if task.Rating != nil {
		return nil, ErrAlreadyRated
	}

	if err := s.tasks.SetRating(ctx, taskID, rating); err != nil {
		return nil, err
	}
	task.Rating = &rating
	return task, nil
}

// AttachFeedback stores the admin's explanation for the rating. For a
// low rating (≤2) this is the point where the penalty is recorded,
// with the feedback text as the reason — the explanation always
// precedes the fine.
func (s *RegistryService) AttachFeedback(ctx context.Context, taskID uint, text string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != model.TaskStatusCompleted {
		return nil, ErrTaskNotCompleted
	}
	firstFeedback := task.Feedback == ""

	if err := s.tasks.SetFeedback(ctx, taskID, text); err != nil {
		return nil, err
	}
	task.Feedback = text

	if firstFeedback && task.Rating != nil && *task.Rating <= 2 {
		if _, err := s.penalties.RecordPenalty(ctx, task.UserID, s.penaltyAmount, text); err != nil {
			if errors.Is(err, ErrDelivery) {
				return task, err
			}
			return nil, err
		}
	}

	return task, nil
}

// Get returns a task by id.
func (s *RegistryService) Get(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.tasks.FindByID(ctx, taskID)
}

// DeadlineFor reports when the given task escalates if left pending.
func (s *RegistryService) DeadlineFor(task *model.Task) time.Time {
	return task.Deadline(s.taskDeadline)
}
