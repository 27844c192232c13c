package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskbeat/internal/logging"
	"github.com/sandeepkv93/taskbeat/internal/model"
	"github.com/sandeepkv93/taskbeat/internal/scheduler"
	"github.com/sandeepkv93/taskbeat/internal/views"
)

// terminalNotifier renders notifications to stdout; it stands in for the OS
// notification surface.
type terminalNotifier struct{}

func (terminalNotifier) Notify(title, body string) {
	fmt.Printf("%s %s\n", renderHeader("["+title+"]"), body)
}

// storePollInterval paces the re-read of the task table so tasks written by
// other taskbeat processes get planned too.
const storePollInterval = 30 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the reminder scheduler in the foreground",
	Long: `watch plans a reminder an hour before each due time, an overdue check at
the due time, and a daily summary, then prints notifications as they fire.
The store is re-read every 30 seconds, so task changes made from other
taskbeat invocations are picked up and re-planned. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.cfg.Notifications {
			return fmt.Errorf("notifications are disabled in the configuration")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		snapshots, err := a.svc.Watch(ctx)
		if err != nil {
			return err
		}

		engine := scheduler.NewEngine(a.cfg.SchedulerBuffer)
		planner := scheduler.NewPlanner(engine, terminalNotifier{}, a.cfg.Notifications, a.cfg.SummaryHour)
		engine.Start()

		dispatchDone := make(chan struct{})
		go func() {
			planner.Dispatch(func() string { return a.summarizeToday() })
			close(dispatchDone)
		}()

		planner.PlanDailySummary()

		ticker := time.NewTicker(storePollInterval)
		defer ticker.Stop()

		planned := make(map[string]bool)
		for {
			select {
			case snapshot, open := <-snapshots:
				if !open {
					engine.Stop()
					<-dispatchDone
					if dropped := engine.Dropped(); dropped > 0 {
						logging.Info("watch", "dropped %d notifications", dropped)
					}
					return nil
				}
				replan(planner, snapshot, planned)
			case <-ticker.C:
				// Writes from this process surface through the snapshot
				// channel; the poll catches everyone else's.
				all, err := a.svc.All(ctx)
				if err != nil {
					logging.Debug("watch", "store poll failed: %v", err)
					continue
				}
				replan(planner, all, planned)
			case <-ctx.Done():
				engine.Stop()
				<-dispatchDone
				return nil
			}
		}
	},
}

// replan reconciles the engine with a snapshot: every present task has its
// derived triggers cancelled and rescheduled from the current due date, and
// tasks that vanished since the last pass have theirs cancelled outright.
func replan(planner *scheduler.Planner, snapshot []model.Task, planned map[string]bool) {
	current := make(map[string]bool, len(snapshot))
	for _, task := range snapshot {
		current[task.ID] = true
		planner.CancelTask(task.ID)
		planner.PlanTask(task)
	}
	for id := range planned {
		if !current[id] {
			planner.CancelTask(id)
			delete(planned, id)
		}
	}
	for id := range current {
		planned[id] = true
	}
}

func (a *app) summarizeToday() string {
	all, err := a.svc.All(context.Background())
	if err != nil {
		return "No tasks due today"
	}
	s := views.BuildSchedule(all, time.Now())
	return fmt.Sprintf("%d due today, %d overdue, %d upcoming", len(s.DueToday), len(s.Overdue), len(s.Upcoming))
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
