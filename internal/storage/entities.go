package storage

import "time"

// Task is the persisted record shape. Priority and Recurrence are stored as
// their string tags; the domain layer owns the typed enums.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	Priority    string
	Recurrence  string
	Category    string
	CreatedAt   time.Time
	CompletedAt *time.Time
	DueAt       *time.Time
	RemindAt    *time.Time
}
