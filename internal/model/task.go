package model

import "time"

// Task statuses. A task starts pending and can only move to completed.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Task is a homework assignment issued by an admin to a member.
// Rating and Feedback may be set only after the task is completed;
// CompletedAt is written exactly once, at the pending→completed
// transition.
type Task struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      int64 `gorm:"index"`
	AdminID     int64
	Text        string
	AssignedAt  time.Time
	Status      string `gorm:"default:pending;index"`
	Rating      *int
	Feedback    string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Deadline derives the completion deadline from the assignment time.
func (t Task) Deadline(d time.Duration) time.Time {
	return t.AssignedAt.Add(d)
}
