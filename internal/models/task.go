package models

import "time"

type TaskState string

const (
	StateActive    TaskState = "active"
	StateCompleted TaskState = "completed"
	StateExpired   TaskState = "expired"
)

type Task struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	HasTime     bool      `gorm:"not null;default:false" json:"has_time"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsExpired reports whether the due date has passed. Tasks without a due
// date never expire. Expiry is never written back to storage; it is
// recomputed against the clock on every read.
func (t *Task) IsExpired(now time.Time) bool {
	return !t.DueDate.IsZero() && t.DueDate.Before(now)
}

// State derives the task's current lifecycle state. Completion wins over
// expiry, so the three states are mutually exclusive at any instant.
func (t *Task) State(now time.Time) TaskState {
	switch {
	case t.IsCompleted:
		return StateCompleted
	case t.IsExpired(now):
		return StateExpired
	default:
		return StateActive
	}
}
