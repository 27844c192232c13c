package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/taskbeat/internal/model"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	highStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

func renderHeader(text string) string {
	return headerStyle.Render(text)
}

func renderTask(task model.Task) string {
	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}

	title := task.Title
	switch {
	case task.Completed:
		title = doneStyle.Render(title)
	case task.Priority == model.PriorityOverdue:
		title = overdueStyle.Render(title)
	case task.Priority == model.PriorityHigh:
		title = highStyle.Render(title)
	}

	parts := []string{check, shortID(task.ID), title, mutedStyle.Render(string(task.Priority))}
	if task.Category != "" {
		parts = append(parts, categoryStyle.Render("#"+task.Category))
	}
	if task.DueAt != nil {
		parts = append(parts, mutedStyle.Render("due "+task.DueAt.Local().Format("2006-01-02 15:04")))
	}
	return strings.Join(parts, "  ")
}

func renderTaskList(header string, tasks []model.Task) string {
	lines := []string{renderHeader(fmt.Sprintf("%s (%d)", header, len(tasks)))}
	if len(tasks) == 0 {
		lines = append(lines, mutedStyle.Render("  nothing here"))
	}
	for _, task := range tasks {
		lines = append(lines, "  "+renderTask(task))
	}
	return strings.Join(lines, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return mutedStyle.Render(id[:8])
	}
	return mutedStyle.Render(id)
}

// parseWhen accepts a date or date+time in local time.
func parseWhen(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (want YYYY-MM-DD or YYYY-MM-DD HH:MM)", raw)
}

func parsePriority(raw string) (model.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "medium":
		return model.PriorityMedium, nil
	case "low":
		return model.PriorityLow, nil
	case "high":
		return model.PriorityHigh, nil
	case "overdue":
		return model.PriorityOverdue, nil
	default:
		return "", fmt.Errorf("unknown priority %q", raw)
	}
}

func parseRecurrence(raw string) (model.Recurrence, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return model.RecurrenceNone, nil
	case "daily":
		return model.RecurrenceDaily, nil
	case "weekly":
		return model.RecurrenceWeekly, nil
	case "monthly":
		return model.RecurrenceMonthly, nil
	default:
		return "", fmt.Errorf("unknown recurrence %q", raw)
	}
}
