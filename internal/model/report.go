package model

import "time"

// DailyReport is a member's answer to the daily check-in prompt.
// Append-only.
type DailyReport struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    int64 `gorm:"index"`
	Text      string
	CreatedAt time.Time
}
