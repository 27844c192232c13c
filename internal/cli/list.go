package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskbeat/internal/views"
)

var listFlags struct {
	all      bool
	done     bool
	priority string
	category string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks (incomplete by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		switch {
		case listFlags.priority != "":
			priority, err := parsePriority(listFlags.priority)
			if err != nil {
				return err
			}
			found, err := a.svc.ByPriority(ctx, priority)
			if err != nil {
				return err
			}
			fmt.Println(renderTaskList(string(priority)+" priority", found))
		case listFlags.category != "":
			found, err := a.svc.ByCategory(ctx, listFlags.category)
			if err != nil {
				return err
			}
			fmt.Println(renderTaskList("#"+listFlags.category, found))
		case listFlags.done:
			found, err := a.svc.Completed(ctx)
			if err != nil {
				return err
			}
			fmt.Println(renderTaskList("Completed", found))
		case listFlags.all:
			all, err := a.svc.All(ctx)
			if err != nil {
				return err
			}
			d := views.BuildDashboard(all)
			fmt.Println(renderTaskList("Open", d.Incomplete))
			fmt.Println(renderTaskList("Completed", d.Completed))
		default:
			found, err := a.svc.Incomplete(ctx)
			if err != nil {
				return err
			}
			fmt.Println(renderTaskList("Open", found))
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tasks by title or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		found, err := a.svc.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(renderTaskList(fmt.Sprintf("Matches for %q", args[0]), found))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listFlags.all, "all", "a", false, "show completed tasks too")
	listCmd.Flags().BoolVar(&listFlags.done, "done", false, "show only completed tasks")
	listCmd.Flags().StringVarP(&listFlags.priority, "priority", "p", "", "filter by priority")
	listCmd.Flags().StringVarP(&listFlags.category, "category", "c", "", "filter by category")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
}
