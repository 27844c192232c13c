package scheduler

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/sandeepkv93/taskbeat/internal/logging"
	"github.com/sandeepkv93/taskbeat/internal/model"
)

const (
	reminderLead = time.Hour

	// Identifier space: the overdue variant of a task's trigger lives at a
	// fixed offset from its reminder identifier; the daily summary has a
	// reserved constant.
	overdueOffset    = 0x40000000
	summaryTriggerID = 0x53554D52
)

// ReminderID derives the stable trigger identifier for a task's reminder.
func ReminderID(taskID string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return h.Sum32()
}

// OverdueID derives the identifier of a task's overdue check.
func OverdueID(taskID string) uint32 {
	return ReminderID(taskID) + overdueOffset
}

// Notifier renders a fired trigger to the user. It is the external
// collaborator standing in for the OS notification surface.
type Notifier interface {
	Notify(title, body string)
}

// Planner turns task due dates into engine triggers: a reminder one hour
// before the due time, an overdue check at the due time, and a daily summary
// at a fixed local hour. It keeps no registry of what it scheduled;
// cancellation recomputes the derived identifiers. PlanTask and CancelTask
// are meant to run from a single planning goroutine.
type Planner struct {
	engine      *Engine
	notifier    Notifier
	enabled     bool
	summaryHour int
	now         func() time.Time

	overdueNotified map[string]bool
}

func NewPlanner(engine *Engine, notifier Notifier, enabled bool, summaryHour int) *Planner {
	if summaryHour < 0 || summaryHour > 23 {
		summaryHour = 20
	}
	return &Planner{
		engine:          engine,
		notifier:        notifier,
		enabled:         enabled,
		summaryHour:     summaryHour,
		now:             time.Now,
		overdueNotified: make(map[string]bool),
	}
}

// PlanTask schedules both triggers for a task. Without permission, or
// without a due date, it schedules nothing and reports nothing. A reminder
// time already in the past is dropped; an overdue time already in the past
// fires an immediate notification instead of scheduling, once per task id
// so repeated re-plans of the same stale task stay quiet.
func (p *Planner) PlanTask(task model.Task) {
	if !p.enabled || task.DueAt == nil || task.Completed {
		return
	}
	now := p.now()
	due := *task.DueAt

	remindAt := due.Add(-reminderLead)
	if remindAt.After(now) {
		p.schedule(Trigger{
			ID:     ReminderID(task.ID),
			TaskID: task.ID,
			Kind:   KindReminder,
			Title:  task.Title,
			FireAt: remindAt,
		})
	}

	if due.After(now) {
		// A future due date resets the immediate-notification guard so the
		// task can report again if it lapses.
		delete(p.overdueNotified, task.ID)
		p.schedule(Trigger{
			ID:     OverdueID(task.ID),
			TaskID: task.ID,
			Kind:   KindOverdue,
			Title:  task.Title,
			FireAt: due,
		})
		return
	}
	if p.overdueNotified[task.ID] {
		return
	}
	p.overdueNotified[task.ID] = true
	p.notifier.Notify("Task overdue", fmt.Sprintf("%q is past its due date", task.Title))
}

// CancelTask removes both pending triggers for a task id. Cancelling a task
// that was never planned does nothing.
func (p *Planner) CancelTask(taskID string) {
	p.engine.Cancel(ReminderID(taskID))
	p.engine.Cancel(OverdueID(taskID))
}

// PlanDailySummary arms the summary trigger for the configured local hour:
// today if that hour is still ahead, otherwise tomorrow.
func (p *Planner) PlanDailySummary() {
	if !p.enabled {
		return
	}
	now := p.now()
	y, m, d := now.Date()
	fireAt := time.Date(y, m, d, p.summaryHour, 0, 0, 0, now.Location())
	if !fireAt.After(now) {
		fireAt = fireAt.AddDate(0, 0, 1)
	}
	p.schedule(Trigger{
		ID:     summaryTriggerID,
		Kind:   KindSummary,
		FireAt: fireAt,
	})
}

// Dispatch consumes fired triggers and renders notifications until the
// engine's channel closes. Summaries re-arm for the next day; the summarize
// callback supplies the body text from current task state.
func (p *Planner) Dispatch(summarize func() string) {
	for tr := range p.engine.C() {
		switch tr.Kind {
		case KindReminder:
			p.notifier.Notify("Task due soon", fmt.Sprintf("%q is due in an hour", tr.Title))
		case KindOverdue:
			p.notifier.Notify("Task overdue", fmt.Sprintf("%q is past its due date", tr.Title))
		case KindSummary:
			body := "No tasks due today"
			if summarize != nil {
				body = summarize()
			}
			p.notifier.Notify("Daily summary", body)
			p.PlanDailySummary()
		}
	}
}

func (p *Planner) schedule(tr Trigger) {
	if err := p.engine.Schedule(tr); err != nil {
		logging.Debug("scheduler", "schedule %s for task %s failed: %v", tr.Kind, tr.TaskID, err)
	}
}
