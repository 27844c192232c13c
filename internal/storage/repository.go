package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the single access point to the task table. List results are
// point-in-time snapshots; ordering is created-at descending unless noted.
//
// Writes targeting an absent row are silent no-ops. Only Get reports absence,
// via ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, in Task) error
	Update(ctx context.Context, in Task) error
	Delete(ctx context.Context, id string) error
	SetCompletion(ctx context.Context, id string, completed bool, completedAt *time.Time) error

	Get(ctx context.Context, id string) (Task, error)
	ListAll(ctx context.Context) ([]Task, error)
	ListIncomplete(ctx context.Context) ([]Task, error)
	ListCompleted(ctx context.Context) ([]Task, error)
	ListDueBetween(ctx context.Context, start, end time.Time) ([]Task, error)
	ListCompletedBetween(ctx context.Context, start, end time.Time) ([]Task, error)
	ListByPriority(ctx context.Context, priority string) ([]Task, error)
	ListByCategory(ctx context.Context, category string) ([]Task, error)
	Search(ctx context.Context, query string) ([]Task, error)

	CountAll(ctx context.Context) (int, error)
	CountIncomplete(ctx context.Context) (int, error)
	CountCompleted(ctx context.Context) (int, error)
}
