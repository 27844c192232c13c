package views

import (
	"time"

	"github.com/sandeepkv93/taskbeat/internal/model"
)

// BuildHistory returns the completed tasks from a snapshot, unfiltered.
func BuildHistory(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range tasks {
		if task.Completed {
			out = append(out, task)
		}
	}
	return out
}

// FilterHistoryRange restricts completed tasks to those whose completion time
// falls inside [start, end], bounds inclusive.
func FilterHistoryRange(tasks []model.Task, start, end time.Time) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range tasks {
		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		at := *task.CompletedAt
		if at.Before(start) || at.After(end) {
			continue
		}
		out = append(out, task)
	}
	return out
}
