package analytics

import (
	"math"
	"time"

	"github.com/sandeepkv93/taskbeat/internal/model"
)

// Summary aggregates a full task snapshot into the headline numbers.
type Summary struct {
	TotalTasks            int
	CompletedTasks        int
	CompletionRate        float64
	AverageCompletionTime time.Duration
	HighPriorityCompleted int
	ProductivityScore     int
}

func Compute(tasks []model.Task) Summary {
	out := Summary{TotalTasks: len(tasks)}

	var totalCompletion time.Duration
	var timedCompletions int
	for _, task := range tasks {
		if !task.Completed {
			continue
		}
		out.CompletedTasks++
		if task.Priority == model.PriorityHigh {
			out.HighPriorityCompleted++
		}
		if task.CompletedAt != nil {
			totalCompletion += task.CompletedAt.Sub(task.CreatedAt)
			timedCompletions++
		}
	}

	if out.TotalTasks > 0 {
		out.CompletionRate = float64(out.CompletedTasks) / float64(out.TotalTasks)
	}
	if timedCompletions > 0 {
		out.AverageCompletionTime = totalCompletion / time.Duration(timedCompletions)
	}
	out.ProductivityScore = score(out.CompletionRate, out.HighPriorityCompleted)
	return out
}

// score blends completion rate with high-priority throughput: up to 50 points
// for the rate, up to 30 for completed high priority tasks, and a 20 point
// bonus above an 0.8 rate. Clamped to [0, 100].
func score(rate float64, highPriorityCompleted int) int {
	s := int(math.Round(rate * 50))
	bonus := highPriorityCompleted * 10
	if bonus > 30 {
		bonus = 30
	}
	s += bonus
	if rate > 0.8 {
		s += 20
	}
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
