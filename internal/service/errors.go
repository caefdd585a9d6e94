package service

import "errors"

var (
	// ErrRecipientUnknown is returned when a task is assigned to a
	// Telegram id with no registered member.
	ErrRecipientUnknown = errors.New("recipient is not a registered member")

	// ErrAlreadyCompleted is returned on a second completion attempt.
	ErrAlreadyCompleted = errors.New("task already completed")

	// ErrTaskNotCompleted is returned when rating or feedback is
	// attempted before the task is completed.
	ErrTaskNotCompleted = errors.New("task is not completed yet")

	// ErrInvalidRating is returned for ratings outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrAlreadyRated is returned when a task is rated a second time.
	ErrAlreadyRated = errors.New("task already rated")

	// ErrDelivery marks a notification that could not be delivered.
	// The state change it reports has already been persisted.
	ErrDelivery = errors.New("notification delivery failed")
)
