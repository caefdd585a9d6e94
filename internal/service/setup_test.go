package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
	"github.com/hackerxuz77-cell/python-course-bot/internal/repository"
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

	// Serialize connections so concurrent transactions do not trip
	// over SQLite busy errors.
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

type sentMessage struct {
	chatID int64
	text   string
}

// fakeNotifier records deliveries and can be told to fail for chosen
// recipients.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	prompts []int64
	failFor map[int64]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[int64]bool)}
}

func (n *fakeNotifier) Send(ctx context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[chatID] {
		return fmt.Errorf("delivery to %d refused", chatID)
	}
	n.sent = append(n.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (n *fakeNotifier) PromptDailyReport(ctx context.Context, user model.User) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[user.TelegramID] {
		return fmt.Errorf("delivery to %d refused", user.TelegramID)
	}
	n.prompts = append(n.prompts, user.TelegramID)
	return nil
}

func (n *fakeNotifier) sentTo(chatID int64) []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentMessage
	for _, msg := range n.sent {
		if msg.chatID == chatID {
			out = append(out, msg)
		}
	}
	return out
}

func (n *fakeNotifier) promptedIDs() []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int64(nil), n.prompts...)
}

func (n *fakeNotifier) refuse(chatID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failFor[chatID] = true
}

func seedUser(t *testing.T, db *gorm.DB, id int64, subscriptionEnd time.Time) model.User {
	t.Helper()
	user := model.User{
		TelegramID:      id,
		FirstName:       fmt.Sprintf("user%d", id),
		JoinedAt:        time.Now(),
		SubscriptionEnd: subscriptionEnd,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %d: %v", id, err)
	}
	return user
}

// waitFor polls until cond returns true or the timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

type testEnv struct {
	db        *gorm.DB
	notifier  *fakeNotifier
	users     *repository.UserRepository
	tasks     *repository.TaskRepository
	penalties *repository.PenaltyRepository
	deadlines *DeadlineService
	ledger    *PenaltyService
	registry  *RegistryService
}

const (
	testDeadline      = 24 * time.Hour
	testPenaltyAmount = int64(50000)
	testBasePayment   = int64(200000)
	testThreshold     = 3
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	notifier := newFakeNotifier()
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	penalties := repository.NewPenaltyRepository(db)

	deadlines := NewDeadlineService(tasks, notifier, testDeadline)
	t.Cleanup(deadlines.Stop)

	ledger := NewPenaltyService(penalties, notifier, testThreshold, testPenaltyAmount, testBasePayment, true)
	registry := NewRegistryService(users, tasks, deadlines, ledger, testDeadline, testPenaltyAmount)

	return &testEnv{
		db:        db,
		notifier:  notifier,
		users:     users,
		tasks:     tasks,
		penalties: penalties,
		deadlines: deadlines,
		ledger:    ledger,
		registry:  registry,
	}
}
