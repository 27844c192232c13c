package views

import "github.com/sandeepkv93/taskbeat/internal/model"

// Dashboard partitions a snapshot by the completion flag, nothing else.
type Dashboard struct {
	Incomplete []model.Task
	Completed  []model.Task
}

func BuildDashboard(tasks []model.Task) Dashboard {
	out := Dashboard{
		Incomplete: make([]model.Task, 0, len(tasks)),
		Completed:  make([]model.Task, 0),
	}
	for _, task := range tasks {
		if task.Completed {
			out.Completed = append(out.Completed, task)
			continue
		}
		out.Incomplete = append(out.Incomplete, task)
	}
	return out
}
