package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskbeat/internal/views"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show overdue, due-today, and upcoming tasks",
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
		s := views.BuildSchedule(all, time.Now())
		fmt.Println(renderTaskList("Overdue", s.Overdue))
		fmt.Println(renderTaskList("Due today", s.DueToday))
		fmt.Println(renderTaskList("Upcoming (7 days)", s.Upcoming))
		return nil
	},
}

var historyFlags struct {
	from string
	to   string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed tasks, optionally within a completion-date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		if historyFlags.from != "" || historyFlags.to != "" {
			start := time.Unix(0, 0)
			end := time.Now()
			if historyFlags.from != "" {
				parsed, err := parseWhen(historyFlags.from)
				if err != nil {
					return err
				}
				start = parsed
			}
			if historyFlags.to != "" {
				parsed, err := parseWhen(historyFlags.to)
				if err != nil {
					return err
				}
				// Inclusive through the end of the given day.
				end = parsed.AddDate(0, 0, 1).Add(-time.Millisecond)
			}
			found, err := a.svc.CompletedBetween(ctx, start, end)
			if err != nil {
				return err
			}
			fmt.Println(renderTaskList("Completed in range", found))
			return nil
		}

		all, err := a.svc.All(ctx)
		if err != nil {
			return err
		}
		fmt.Println(renderTaskList("Completed", views.BuildHistory(all)))
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.from, "from", "", "start date (YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&historyFlags.to, "to", "", "end date (YYYY-MM-DD)")
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(historyCmd)
}
