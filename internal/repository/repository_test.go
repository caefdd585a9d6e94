package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.User{}, &model.Task{}, &model.Penalty{}, &model.DailyReport{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestRegisterMemberKeepsFirstRecord(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	joined := time.Now().Add(-48 * time.Hour)
	original := model.User{
		TelegramID:      42,
		FirstName:       "Aziz",
		JoinedAt:        joined,
		SubscriptionEnd: joined.AddDate(0, 1, 0),
	}
	if err := repo.RegisterMember(ctx, &original); err != nil {
		t.Fatalf("register: %v", err)
	}

	// A re-join must not reset the subscription granted on first join.
	rejoin := model.User{
		TelegramID:      42,
		FirstName:       "Aziz",
		JoinedAt:        time.Now(),
		SubscriptionEnd: time.Now().AddDate(0, 1, 0),
	}
	if err := repo.RegisterMember(ctx, &rejoin); err != nil {
		t.Fatalf("register again: %v", err)
	}

	stored, err := repo.FindByID(ctx, 42)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !stored.JoinedAt.Equal(original.JoinedAt) {
		t.Fatalf("JoinedAt changed on re-register: %v vs %v", stored.JoinedAt, original.JoinedAt)
	}
	if !rejoin.JoinedAt.Equal(original.JoinedAt) {
		t.Fatal("RegisterMember should hand back the stored record")
	}
}

func TestMarkCompletedOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := model.Task{
		UserID:     42,
		AdminID:    7,
		Text:       "homework",
		AssignedAt: time.Now(),
		Status:     model.TaskStatusPending,
	}
	if err := repo.Create(ctx, &task); err != nil {
		t.Fatalf("create: %v", err)
	}

	changed, err := repo.MarkCompleted(ctx, task.ID, time.Now())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !changed {
		t.Fatal("first completion should report a change")
	}

	changed, err = repo.MarkCompleted(ctx, task.ID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("complete again: %v", err)
	}
	if changed {
		t.Fatal("second completion must match no rows")
	}
}

func TestReportAppendAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	first := model.DailyReport{UserID: 42, Text: "learned slices", CreatedAt: time.Now().Add(-time.Hour)}
	second := model.DailyReport{UserID: 42, Text: "learned maps", CreatedAt: time.Now()}
	if err := repo.Append(ctx, &first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, &second); err != nil {
		t.Fatalf("append: %v", err)
	}

	reports, err := repo.ListByUser(ctx, 42)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Text != "learned maps" {
		t.Fatalf("expected newest first, got %q", reports[0].Text)
	}
}

func TestListPendingSkipsCompleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	pending := model.Task{UserID: 1, AdminID: 7, Text: "a", AssignedAt: time.Now(), Status: model.TaskStatusPending}
	done := model.Task{UserID: 1, AdminID: 7, Text: "b", AssignedAt: time.Now(), Status: model.TaskStatusCompleted}
	if err := repo.Create(ctx, &pending); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &done); err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := repo.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != pending.ID {
		t.Fatalf("expected only the pending task, got %d task(s)", len(tasks))
	}
}
