package tasks

import (
	"github.com/sandeepkv93/taskbeat/internal/model"
	"github.com/sandeepkv93/taskbeat/internal/storage"
)

func toRecord(t model.Task) storage.Task {
	return storage.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		Recurrence:  string(t.Recurrence),
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
		DueAt:       t.DueAt,
		RemindAt:    t.RemindAt,
	}
}

func fromRecord(in storage.Task) model.Task {
	return model.Task{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Priority:    model.Priority(in.Priority),
		Recurrence:  model.Recurrence(in.Recurrence),
		Category:    in.Category,
		CreatedAt:   in.CreatedAt,
		CompletedAt: in.CompletedAt,
		DueAt:       in.DueAt,
		RemindAt:    in.RemindAt,
	}
}

func fromRecords(in []storage.Task) []model.Task {
	out := make([]model.Task, 0, len(in))
	for _, rec := range in {
		out = append(out, fromRecord(rec))
	}
	return out
}
