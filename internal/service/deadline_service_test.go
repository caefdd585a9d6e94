package service

import (
	"context"
	"testing"
	"time"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
	"github.com/hackerxuz77-cell/python-course-bot/internal/repository"
)

func seedPendingTask(t *testing.T, env *testEnv, assignedAt time.Time) model.Task {
	t.Helper()
	task := model.Task{
		UserID:     memberID,
		AdminID:    adminID,
		Text:       "homework",
		AssignedAt: assignedAt,
		Status:     model.TaskStatusPending,
	}
	if err := env.db.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func TestDeadlineEscalatesPendingTask(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, memberID, time.Now().AddDate(0, 1, 0))
	task := seedPendingTask(t, env, time.Now())

	env.deadlines.Arm(task.ID, time.Now().Add(30*time.Millisecond))

	ok := waitFor(t, 2*time.Second, func() bool {
		return len(env.notifier.sentTo(adminID)) == 1
	})
	if !ok {
		t.Fatal("expected exactly one escalation to the admin")
	}

	// No second fire.
	time.Sleep(100 * time.Millisecond)
	if got := len(env.notifier.sentTo(adminID)); got != 1 {
		t.Fatalf("expected 1 escalation, got %d", got)
	}
	if env.deadlines.Armed(task.ID) {
		t.Fatal("timer should be gone after firing")
	}
}

func TestCompletionSuppressesEscalation(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, memberID, time.Now().AddDate(0, 1, 0))
	task := seedPendingTask(t, env, time.Now())

	env.deadlines.Arm(task.ID, time.Now().Add(80*time.Millisecond))

	if _, err := env.registry.Complete(context.Background(), task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	time.Sleep(250 * time.Millisecond)
	if got := len(env.notifier.sentTo(adminID)); got != 0 {
		t.Fatalf("expected no escalation after completion, got %d", got)
	}
}

// Even when Disarm loses the race with the timer goroutine, the fire
// re-reads the completed status and stays silent.
func TestFireAfterCompletionIsSilent(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, memberID, time.Now().AddDate(0, 1, 0))
	task := seedPendingTask(t, env, time.Now())

	if _, err := env.registry.Complete(context.Background(), task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Simulate a timer that was already past Disarm's reach.
	env.deadlines.Arm(task.ID, time.Now())

	time.Sleep(200 * time.Millisecond)
	if got := len(env.notifier.sentTo(adminID)); got != 0 {
		t.Fatalf("expected silent fire for completed task, got %d escalation(s)", got)
	}
}

func TestDisarmCancelsDeterministically(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, memberID, time.Now().AddDate(0, 1, 0))
	task := seedPendingTask(t, env, time.Now())

	env.deadlines.Arm(task.ID, time.Now().Add(100*time.Millisecond))
	env.deadlines.Disarm(task.ID)

	time.Sleep(300 * time.Millisecond)
	if got := len(env.notifier.sentTo(adminID)); got != 0 {
		t.Fatalf("expected no escalation after disarm, got %d", got)
	}

	// Disarming again, or disarming an unknown task, is a no-op.
	env.deadlines.Disarm(task.ID)
	env.deadlines.Disarm(12345)
}

func TestArmIsIdempotentPerTask(t *testing.T) {
	env := newTestEnv(t)
	seedUser(t, env.db, memberID, time.Now().AddDate(0, 1, 0))
	task := seedPendingTask(t, env, time.Now())

	env.deadlines.Arm(task.ID, time.Now().Add(40*time.Millisecond))
	env.deadlines.Arm(task.ID, time.Now().Add(40*time.Millisecond))

	waitFor(t, 2*time.Second, func() bool {
		return len(env.notifier.sentTo(adminID)) >= 1
	})
	time.Sleep(150 * time.Millisecond)
	if got := len(env.notifier.sentTo(adminID)); got != 1 {
		t.Fatalf("double arm produced %d escalations, want 1", got)
	}
}

func TestRearmPendingEscalatesOverdueTasks(t *testing.T) {
	db := newTestDB(t)
	notifier := newFakeNotifier()
	tasks := repository.NewTaskRepository(db)

	// Short deadline so a task assigned an hour ago is long overdue.
	deadlines := NewDeadlineService(tasks, notifier, 30*time.Minute)
	t.Cleanup(deadlines.Stop)

	seedUser(t, db, memberID, time.Now().AddDate(0, 1, 0))
	overdue := model.Task{
		UserID:     memberID,
		AdminID:    adminID,
		Text:       "old homework",
		AssignedAt: time.Now().Add(-time.Hour),
		Status:     model.TaskStatusPending,
	}
	if err := db.Create(&overdue).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	done := model.Task{
		UserID:     memberID,
		AdminID:    adminID,
		Text:       "finished homework",
		AssignedAt: time.Now().Add(-time.Hour),
		Status:     model.TaskStatusCompleted,
	}
	if err := db.Create(&done).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}

	if err := deadlines.RearmPending(context.Background()); err != nil {
		t.Fatalf("rearm: %v", err)
	}

	ok := waitFor(t, 2*time.Second, func() bool {
		return len(notifier.sentTo(adminID)) == 1
	})
	if !ok {
		t.Fatalf("expected one escalation for the overdue pending task, got %d", len(notifier.sentTo(adminID)))
	}
}
