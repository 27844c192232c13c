package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type exportedTask struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Completed   bool       `yaml:"completed"`
	Priority    string     `yaml:"priority"`
	Recurrence  string     `yaml:"recurrence"`
	Category    string     `yaml:"category,omitempty"`
	CreatedAt   time.Time  `yaml:"created_at"`
	CompletedAt *time.Time `yaml:"completed_at,omitempty"`
	DueAt       *time.Time `yaml:"due_at,omitempty"`
	RemindAt    *time.Time `yaml:"remind_at,omitempty"`
}

var exportFlags struct {
	out string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tasks as YAML",
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
		out := make([]exportedTask, 0, len(all))
		for _, task := range all {
			out = append(out, exportedTask{
				ID:          task.ID,
				Title:       task.Title,
				Description: task.Description,
				Completed:   task.Completed,
				Priority:    string(task.Priority),
				Recurrence:  string(task.Recurrence),
				Category:    task.Category,
				CreatedAt:   task.CreatedAt,
				CompletedAt: task.CompletedAt,
				DueAt:       task.DueAt,
				RemindAt:    task.RemindAt,
			})
		}

		payload, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("marshal tasks: %w", err)
		}
		if exportFlags.out == "" {
			fmt.Print(string(payload))
			return nil
		}
		if err := os.WriteFile(exportFlags.out, payload, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("exported %d tasks to %s\n", len(out), exportFlags.out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlags.out, "out", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
