package analytics

import (
	"fmt"
	"sort"

	"github.com/sandeepkv93/taskbeat/internal/model"
)

// NoData is the placeholder shown when no completed task backs an insight.
const NoData = "No data yet"

const defaultCategory = "General"

// Insights are descriptive groupings over completed tasks. Ties pick the
// first key with the maximum count in sorted key order.
type Insights struct {
	MostProductiveDay  string
	MostProductiveTime string
	TopCategory        string
}

func BuildInsights(tasks []model.Task) Insights {
	days := make(map[string]int)
	windows := make(map[string]int)
	categories := make(map[string]int)

	for _, task := range tasks {
		if !task.Completed {
			continue
		}
		category := task.Category
		if category == "" {
			category = defaultCategory
		}
		categories[category]++

		if task.CompletedAt == nil {
			continue
		}
		at := *task.CompletedAt
		days[at.Weekday().String()]++
		windows[timeWindow(at.Hour())]++
	}

	return Insights{
		MostProductiveDay:  modeOf(days),
		MostProductiveTime: modeOf(windows),
		TopCategory:        modeOf(categories),
	}
}

// timeWindow maps an hour of day onto its two-hour bucket label.
func timeWindow(hour int) string {
	start := (hour / 2) * 2
	return fmt.Sprintf("%02d:00-%02d:00", start, start+2)
}

func modeOf(counts map[string]int) string {
	if len(counts) == 0 {
		return NoData
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, key := range keys[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	return best
}

// Suggestions is a fixed rule ladder over the summary numbers.
func Suggestions(s Summary) []string {
	out := make([]string, 0, 3)
	switch {
	case s.CompletionRate < 0.5:
		out = append(out,
			"Try breaking large tasks into smaller steps",
			"Schedule your hardest task for your most productive time",
		)
	case s.CompletionRate < 0.8:
		out = append(out, "Steady progress - keep the streak going")
	default:
		out = append(out, "Great completion rate - consider raising your goals")
	}
	if s.HighPriorityCompleted < 2 {
		out = append(out, "Tackle at least one high priority task each day")
	}
	return out
}
