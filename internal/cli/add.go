package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskbeat/internal/tasks"
)

var addFlags struct {
	description string
	priority    string
	recurrence  string
	category    string
	due         string
	remind      string
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		priority, err := parsePriority(addFlags.priority)
		if err != nil {
			return err
		}
		recurrence, err := parseRecurrence(addFlags.recurrence)
		if err != nil {
			return err
		}

		in := tasks.NewTask{
			Title:       strings.Join(args, " "),
			Description: addFlags.description,
			Priority:    priority,
			Recurrence:  recurrence,
			Category:    addFlags.category,
		}
		if addFlags.due != "" {
			due, err := parseWhen(addFlags.due)
			if err != nil {
				return err
			}
			in.DueAt = &due
		}
		if addFlags.remind != "" {
			remind, err := parseWhen(addFlags.remind)
			if err != nil {
				return err
			}
			in.RemindAt = &remind
		}

		task, err := a.svc.Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Println(renderTask(task))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addFlags.description, "desc", "d", "", "task description")
	addCmd.Flags().StringVarP(&addFlags.priority, "priority", "p", "medium", "priority: low, medium, high")
	addCmd.Flags().StringVarP(&addFlags.recurrence, "recurrence", "r", "none", "recurrence: none, daily, weekly, monthly")
	addCmd.Flags().StringVarP(&addFlags.category, "category", "c", "", "free-text category")
	addCmd.Flags().StringVar(&addFlags.due, "due", "", "due time (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	addCmd.Flags().StringVar(&addFlags.remind, "remind", "", "reminder time (stored, scheduling derives from --due)")
	rootCmd.AddCommand(addCmd)
}
