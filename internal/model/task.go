package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority   = errors.New("model: invalid task priority")
	ErrInvalidRecurrence = errors.New("model: invalid task recurrence")
)

type Priority string

const (
	PriorityLow     Priority = "Low"
	PriorityMedium  Priority = "Medium"
	PriorityHigh    Priority = "High"
	PriorityOverdue Priority = "Overdue"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityOverdue:
		return true
	default:
		return false
	}
}

// Rank orders priorities for display: Overdue sorts ahead of everything,
// then High, Medium, Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityOverdue:
		return -1
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recurrence is carried on the record but never drives scheduling or task
// generation. It is persisted and round-tripped only.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "None"
	RecurrenceDaily   Recurrence = "Daily"
	RecurrenceWeekly  Recurrence = "Weekly"
	RecurrenceMonthly Recurrence = "Monthly"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	Recurrence  Recurrence
	Category    string
	CreatedAt   time.Time
	CompletedAt *time.Time
	DueAt       *time.Time
	RemindAt    *time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Recurrence.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, t.Recurrence)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not completed")
	}
	return nil
}

// SetCompletion keeps Completed and CompletedAt in lockstep. Marking a task
// incomplete clears CompletedAt rather than restoring any earlier value.
func (t *Task) SetCompletion(completed bool, now time.Time) {
	t.Completed = completed
	if completed {
		at := now
		t.CompletedAt = &at
		return
	}
	t.CompletedAt = nil
}
