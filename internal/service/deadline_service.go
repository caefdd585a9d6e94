package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
	"github.com/hackerxuz77-cell/python-course-bot/internal/repository"
)

// DeadlineService escalates tasks that stay pending past their
// deadline. Each armed task holds a single one-shot timer; the timer
// itself keeps no task state beyond the id — at fire time the current
// status is re-read from storage, so a completion that lands before
// the read always suppresses the escalation.
type DeadlineService struct {
	tasks        *repository.TaskRepository
	notifier     Notifier
	taskDeadline time.Duration

	mu     sync.Mutex
	timers map[uint]*time.Timer
}

func NewDeadlineService(tasks *repository.TaskRepository, notifier Notifier, taskDeadline time.Duration) *DeadlineService {
	return &DeadlineService{
		tasks:        tasks,
		notifier:     notifier,
		taskDeadline: taskDeadline,
		timers:       make(map[uint]*time.Timer),
	}
}

// Arm schedules an escalation check for the task at the given instant.
// An already-armed task keeps its existing timer.
func (s *DeadlineService) Arm(taskID uint, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[taskID]; ok {
		return
	}

	delay := time.Until(deadline)
	if delay < 0 {
		delay = 0
	}
	s.timers[taskID] = time.AfterFunc(delay, func() {
		s.fire(taskID)
	})
}

// Disarm cancels a not-yet-fired timer. Calling it for an unknown or
// already-fired task is a no-op.
func (s *DeadlineService) Disarm(taskID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[taskID]; ok {
		timer.Stop()
		delete(s.timers, taskID)
	}
}

// RearmPending re-derives deadlines for tasks that were pending when
// the process last stopped. Past-due tasks escalate immediately.
func (s *DeadlineService) RearmPending(ctx context.Context) error {
	tasks, err := s.tasks.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("list pending tasks: %w", err)
	}
	for _, task := range tasks {
		s.Arm(task.ID, task.Deadline(s.taskDeadline))
	}
	if len(tasks) > 0 {
		log.Printf("[info] re-armed %d pending deadline(s)", len(tasks))
	}
	return nil
}

// Stop cancels every outstanding timer.
func (s *DeadlineService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Armed reports whether the task currently has an outstanding timer.
func (s *DeadlineService) Armed(taskID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[taskID]
	return ok
}

func (s *DeadlineService) fire(taskID uint) {
	s.mu.Lock()
	delete(s.timers, taskID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		log.Printf("deadline check task %d: %v", taskID, err)
		return
	}
	if task.Status != model.TaskStatusPending {
		return
	}

	// At-most-once, best-effort: a failed delivery is logged and the
	// timer is not re-armed.
	text := fmt.Sprintf("⏰ Vazifa bajarilmadi! Vazifa ID: %d", task.ID)
	if err := s.notifier.Send(ctx, task.AdminID, text); err != nil {
		log.Printf("escalate task %d to admin %d: %v", task.ID, task.AdminID, err)
	}
}
