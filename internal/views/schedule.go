package views

import (
	"sort"
	"time"

	"github.com/sandeepkv93/taskbeat/internal/model"
)

const upcomingWindowDays = 7

// Schedule is the three-way due-date split of incomplete tasks, relative to
// the local calendar day of the reference time. A task without a due date
// never appears in any bucket.
type Schedule struct {
	DueToday []model.Task
	Overdue  []model.Task
	Upcoming []model.Task
}

// BuildSchedule classifies by the due date truncated to its local calendar
// day: equal to today's day is due-today, strictly earlier is overdue,
// strictly later but within seven days is upcoming. Boundary equality always
// lands in the earlier bucket. Buckets are sorted by priority rank; the
// Overdue priority value sorts ahead of High even though membership here is
// decided by due date alone.
func BuildSchedule(tasks []model.Task, now time.Time) Schedule {
	today := startOfDay(now)
	horizon := today.AddDate(0, 0, upcomingWindowDays)

	out := Schedule{
		DueToday: make([]model.Task, 0),
		Overdue:  make([]model.Task, 0),
		Upcoming: make([]model.Task, 0),
	}
	for _, task := range tasks {
		if task.Completed || task.DueAt == nil {
			continue
		}
		day := startOfDay(task.DueAt.In(now.Location()))
		switch {
		case day.Equal(today):
			out.DueToday = append(out.DueToday, task)
		case day.Before(today):
			out.Overdue = append(out.Overdue, task)
		case !day.After(horizon):
			out.Upcoming = append(out.Upcoming, task)
		}
	}
	sortByPriority(out.DueToday)
	sortByPriority(out.Overdue)
	sortByPriority(out.Upcoming)
	return out
}

func sortByPriority(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
	})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
