package model

import "time"

// User is a course member registered when they join the group.
// TelegramID doubles as the chat id for direct messages.
type User struct {
	TelegramID      int64 `gorm:"primaryKey;autoIncrement:false"`
	Username        string
	FirstName       string
	LastName        string
	JoinedAt        time.Time
	SubscriptionEnd time.Time `gorm:"index"`
	PenaltyCount    int       `gorm:"default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
