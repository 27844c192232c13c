package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		task, err := a.resolveTask(ctx, args[0])
		if err != nil {
			return err
		}
		toggled, err := a.svc.ToggleCompletion(ctx, task.ID)
		if err != nil {
			return err
		}
		fmt.Println(renderTask(toggled))
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		task, err := a.resolveTask(ctx, args[0])
		if err != nil {
			return err
		}
		if err := a.svc.Delete(ctx, task.ID); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", task.Title)
		return nil
	},
}

var editFlags struct {
	title       string
	description string
	priority    string
	category    string
	due         string
	clearDue    bool
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		task, err := a.resolveTask(ctx, args[0])
		if err != nil {
			return err
		}

		if editFlags.title != "" {
			task.Title = editFlags.title
		}
		if cmd.Flags().Changed("desc") {
			task.Description = editFlags.description
		}
		if editFlags.priority != "" {
			priority, err := parsePriority(editFlags.priority)
			if err != nil {
				return err
			}
			task.Priority = priority
		}
		if cmd.Flags().Changed("category") {
			task.Category = editFlags.category
		}
		if editFlags.clearDue {
			task.DueAt = nil
		} else if editFlags.due != "" {
			due, err := parseWhen(editFlags.due)
			if err != nil {
				return err
			}
			task.DueAt = &due
		}

		if err := a.svc.Update(ctx, task); err != nil {
			return err
		}
		fmt.Println(renderTask(task))
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editFlags.title, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editFlags.description, "desc", "d", "", "new description")
	editCmd.Flags().StringVarP(&editFlags.priority, "priority", "p", "", "new priority")
	editCmd.Flags().StringVarP(&editFlags.category, "category", "c", "", "new category")
	editCmd.Flags().StringVar(&editFlags.due, "due", "", "new due time")
	editCmd.Flags().BoolVar(&editFlags.clearDue, "clear-due", false, "remove the due time")
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(editCmd)
}
