package tasks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/taskbeat/internal/model"
	"github.com/sandeepkv93/taskbeat/internal/storage"
)

var ErrBlankTitle = errors.New("tasks: title must not be blank")

// NewTask is the caller-supplied portion of a task. The service assigns the
// id and creation time.
type NewTask struct {
	Title       string
	Description string
	Priority    model.Priority
	Recurrence  model.Recurrence
	Category    string
	DueAt       *time.Time
	RemindAt    *time.Time
}

// Service is the single source of truth for task state. It owns the mapping
// between the storage record shape and the domain shape, serializes all
// mutations, and feeds every subscriber a fresh full snapshot after each
// successful write.
type Service struct {
	repo storage.Repository
	now  func() time.Time

	mu       sync.Mutex
	watchers map[int]chan []model.Task
	nextID   int
}

func NewService(repo storage.Repository) *Service {
	return &Service{
		repo:     repo,
		now:      time.Now,
		watchers: make(map[int]chan []model.Task),
	}
}

func (s *Service) Create(ctx context.Context, in NewTask) (model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Task{}, ErrBlankTitle
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	recurrence := in.Recurrence
	if recurrence == "" {
		recurrence = model.RecurrenceNone
	}

	task := model.Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    priority,
		Recurrence:  recurrence,
		Category:    in.Category,
		CreatedAt:   s.now().UTC(),
		DueAt:       in.DueAt,
		RemindAt:    in.RemindAt,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Insert(ctx, toRecord(task)); err != nil {
		return model.Task{}, err
	}
	s.publishLocked(ctx)
	return task, nil
}

// Update replaces the full record. Updating an id that was never inserted is
// a silent no-op at the storage layer.
func (s *Service) Update(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return ErrBlankTitle
	}
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Update(ctx, toRecord(task)); err != nil {
		return err
	}
	s.publishLocked(ctx)
	return nil
}

// ToggleCompletion flips the completion flag. Completing stamps CompletedAt
// with the current time; un-completing clears it. Unknown ids report
// storage.ErrNotFound.
func (s *Service) ToggleCompletion(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task := fromRecord(rec)
	task.SetCompletion(!task.Completed, s.now().UTC())

	if err := s.repo.SetCompletion(ctx, id, task.Completed, task.CompletedAt); err != nil {
		return model.Task{}, err
	}
	s.publishLocked(ctx)
	return task, nil
}

// Delete removes a task. Deleting an unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishLocked(ctx)
	return nil
}

// Get is a point-in-time read. Absence is reported through the ok flag, not
// an error.
func (s *Service) Get(ctx context.Context, id string) (model.Task, bool, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Task{}, false, nil
		}
		return model.Task{}, false, err
	}
	return fromRecord(rec), true, nil
}

func (s *Service) All(ctx context.Context) ([]model.Task, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (s *Service) Incomplete(ctx context.Context) ([]model.Task, error) {
	recs, err := s.repo.ListIncomplete(ctx)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (s *Service) Completed(ctx context.Context) ([]model.Task, error) {
	recs, err := s.repo.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (s *Service) DueBetween(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	recs, err := s.repo.ListDueBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (s *Service) CompletedBetween(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	recs, err := s.repo.ListCompletedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (s *Service) ByPriority(ctx context.Context, p model.Priority) ([]model.Task, error) {
	recs, err := s.repo.ListByPriority(ctx, string(p))
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]model.Task, error) {
	recs, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

func (s *Service) Search(ctx context.Context, query string) ([]model.Task, error) {
	recs, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}

// Counts returns total, incomplete, and completed task counts.
func (s *Service) Counts(ctx context.Context) (int, int, int, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	open, err := s.repo.CountIncomplete(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	done, err := s.repo.CountCompleted(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	return total, open, done, nil
}
