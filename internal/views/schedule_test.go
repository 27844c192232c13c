package views

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/sandeepkv93/taskbeat/internal/model"
)

func dueTask(id string, priority model.Priority, due time.Time) model.Task {
	return model.Task{
		ID:         id,
		Title:      id,
		Priority:   priority,
		Recurrence: model.RecurrenceNone,
		CreatedAt:  due.Add(-24 * time.Hour),
		DueAt:      &due,
	}
}

func bucketOf(s Schedule, id string) string {
	for _, task := range s.DueToday {
		if task.ID == id {
			return "today"
		}
	}
	for _, task := range s.Overdue {
		if task.ID == id {
			return "overdue"
		}
	}
	for _, task := range s.Upcoming {
		if task.ID == id {
			return "upcoming"
		}
	}
	return "none"
}

func TestScheduleClassification(t *testing.T) {
	// Just past local midnight, so a due date one second ago falls on the
	// previous calendar day.
	now := time.Date(2026, 3, 10, 0, 0, 0, 500e6, time.UTC)

	tasks := []model.Task{
		dueTask("past", model.PriorityMedium, now.Add(-time.Second)),
		dueTask("soon", model.PriorityMedium, now.Add(time.Second)),
		dueTask("later-today", model.PriorityMedium, now.Add(5*time.Hour)),
		dueTask("far", model.PriorityMedium, now.Add(10*24*time.Hour)),
	}
	s := BuildSchedule(tasks, now)

	want := map[string]string{
		"past":        "overdue",
		"soon":        "today",
		"later-today": "today",
		"far":         "none",
	}
	for id, bucket := range want {
		if got := bucketOf(s, id); got != bucket {
			t.Fatalf("task %s: expected %s, got %s", id, bucket, got)
		}
	}
}

func TestScheduleBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		dueTask("midnight", model.PriorityMedium, today),
		dueTask("just-before-midnight", model.PriorityMedium, today.Add(-time.Millisecond)),
		dueTask("seventh-day", model.PriorityMedium, today.AddDate(0, 0, 7)),
		dueTask("eighth-day", model.PriorityMedium, today.AddDate(0, 0, 8)),
	}
	s := BuildSchedule(tasks, now)

	if got := bucketOf(s, "midnight"); got != "today" {
		t.Fatalf("lower day boundary is inclusive, got %s", got)
	}
	if got := bucketOf(s, "just-before-midnight"); got != "overdue" {
		t.Fatalf("millisecond before midnight is the previous day, got %s", got)
	}
	if got := bucketOf(s, "seventh-day"); got != "upcoming" {
		t.Fatalf("seventh day is still upcoming, got %s", got)
	}
	if got := bucketOf(s, "eighth-day"); got != "none" {
		t.Fatalf("eighth day is outside the window, got %s", got)
	}
}

func TestScheduleSkipsCompletedAndUndated(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	doneAt := now.Add(-time.Hour)
	due := now.Add(time.Hour)

	done := dueTask("done", model.PriorityHigh, due)
	done.Completed = true
	done.CompletedAt = &doneAt

	undated := model.Task{ID: "undated", Title: "undated", Priority: model.PriorityHigh, Recurrence: model.RecurrenceNone, CreatedAt: now}

	s := BuildSchedule([]model.Task{done, undated}, now)
	if bucketOf(s, "done") != "none" || bucketOf(s, "undated") != "none" {
		t.Fatalf("completed and undated tasks must not classify: %#v", s)
	}
}

func TestScheduleSortsByPriorityRank(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(time.Hour)

	tasks := []model.Task{
		dueTask("low", model.PriorityLow, due),
		dueTask("high", model.PriorityHigh, due),
		dueTask("overdue-flag", model.PriorityOverdue, due),
		dueTask("medium", model.PriorityMedium, due),
	}
	s := BuildSchedule(tasks, now)

	if len(s.DueToday) != 4 {
		t.Fatalf("expected 4 due today, got %d", len(s.DueToday))
	}
	order := []string{"overdue-flag", "high", "medium", "low"}
	for i, id := range order {
		if s.DueToday[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, s.DueToday[i].ID)
		}
	}
}

func TestSchedulePartitionProperty(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(rt, "n")
		tasks := make([]model.Task, 0, n)
		for i := 0; i < n; i++ {
			offsetHours := rapid.IntRange(-21*24, 21*24).Draw(rt, "offset")
			task := dueTask(string(rune('a'+i%26))+string(rune('0'+i/26)), model.PriorityMedium, now.Add(time.Duration(offsetHours)*time.Hour))
			if rapid.Bool().Draw(rt, "undated") {
				task.DueAt = nil
			}
			if rapid.Bool().Draw(rt, "completed") {
				at := now.Add(-time.Hour)
				task.Completed = true
				task.CompletedAt = &at
			}
			tasks = append(tasks, task)
		}

		s := BuildSchedule(tasks, now)
		seen := make(map[string]int)
		for _, bucket := range [][]model.Task{s.DueToday, s.Overdue, s.Upcoming} {
			for _, task := range bucket {
				seen[task.ID]++
				if task.Completed {
					rt.Fatalf("completed task %s classified", task.ID)
				}
				if task.DueAt == nil {
					rt.Fatalf("undated task %s classified", task.ID)
				}
			}
		}
		for id, count := range seen {
			if count > 1 {
				rt.Fatalf("task %s landed in %d buckets", id, count)
			}
		}
	})
}

func TestDashboardPartition(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	doneAt := now.Add(-time.Hour)
	tasks := []model.Task{
		{ID: "1", Title: "1", Priority: model.PriorityLow, Recurrence: model.RecurrenceNone, CreatedAt: now},
		{ID: "2", Title: "2", Priority: model.PriorityHigh, Recurrence: model.RecurrenceNone, CreatedAt: now, Completed: true, CompletedAt: &doneAt},
		{ID: "3", Title: "3", Priority: model.PriorityMedium, Recurrence: model.RecurrenceNone, CreatedAt: now},
	}
	d := BuildDashboard(tasks)
	if len(d.Incomplete) != 2 || len(d.Completed) != 1 {
		t.Fatalf("unexpected partition: %d incomplete, %d completed", len(d.Incomplete), len(d.Completed))
	}
	if len(d.Incomplete)+len(d.Completed) != len(tasks) {
		t.Fatalf("partition must cover the whole snapshot")
	}
}

func TestHistoryRange(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	inAt := base.Add(time.Hour)
	outAt := base.Add(48 * time.Hour)

	tasks := []model.Task{
		{ID: "in", Title: "in", Priority: model.PriorityLow, Recurrence: model.RecurrenceNone, CreatedAt: base, Completed: true, CompletedAt: &inAt},
		{ID: "out", Title: "out", Priority: model.PriorityLow, Recurrence: model.RecurrenceNone, CreatedAt: base, Completed: true, CompletedAt: &outAt},
		{ID: "open", Title: "open", Priority: model.PriorityLow, Recurrence: model.RecurrenceNone, CreatedAt: base},
	}

	history := BuildHistory(tasks)
	if len(history) != 2 {
		t.Fatalf("expected 2 completed in history, got %d", len(history))
	}

	ranged := FilterHistoryRange(tasks, base, base.Add(24*time.Hour))
	if len(ranged) != 1 || ranged[0].ID != "in" {
		t.Fatalf("expected only the in-range completion, got %#v", ranged)
	}
}
