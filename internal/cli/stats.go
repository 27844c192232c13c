package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskbeat/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show productivity score, insights, and suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		all, err := a.svc.All(cmd.Context())
		if err != nil {
			return err
		}
		summary := analytics.Compute(all)
		insights := analytics.BuildInsights(all)

		var b strings.Builder
		fmt.Fprintln(&b, renderHeader("Productivity"))
		fmt.Fprintf(&b, "  score               %d/100\n", summary.ProductivityScore)
		fmt.Fprintf(&b, "  completion rate     %.0f%% (%d of %d)\n", summary.CompletionRate*100, summary.CompletedTasks, summary.TotalTasks)
		if summary.AverageCompletionTime > 0 {
			fmt.Fprintf(&b, "  avg completion time %s\n", summary.AverageCompletionTime.Round(time.Second))
		}
		fmt.Fprintf(&b, "  high priority done  %d\n", summary.HighPriorityCompleted)

		fmt.Fprintln(&b, renderHeader("Insights"))
		fmt.Fprintf(&b, "  best day      %s\n", insights.MostProductiveDay)
		fmt.Fprintf(&b, "  best time     %s\n", insights.MostProductiveTime)
		fmt.Fprintf(&b, "  top category  %s\n", insights.TopCategory)

		fmt.Fprintln(&b, renderHeader("Suggestions"))
		for _, suggestion := range analytics.Suggestions(summary) {
			fmt.Fprintf(&b, "  - %s\n", suggestion)
		}

		fmt.Print(b.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
