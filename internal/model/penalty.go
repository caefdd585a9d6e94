package model

import "time"

// Penalty is an append-only record of a fine for a low-rated task.
type Penalty struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    int64 `gorm:"index"`
	Amount    int64
	Reason    string
	CreatedAt time.Time
}
