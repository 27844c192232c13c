package tasks

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/taskbeat/internal/model"
	"github.com/sandeepkv93/taskbeat/internal/storage"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "taskbeat-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return NewService(repo)
}

func mustCreate(t *testing.T, svc *Service, in NewTask) model.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create %q: %v", in.Title, err)
	}
	return task
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	svc := setupService(t)
	if _, err := svc.Create(context.Background(), NewTask{Title: "   "}); !errors.Is(err, ErrBlankTitle) {
		t.Fatalf("expected ErrBlankTitle, got %v", err)
	}
	total, _, _, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 0 {
		t.Fatalf("rejected create must not persist, got %d rows", total)
	}
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	svc := setupService(t)
	task := mustCreate(t, svc, NewTask{Title: "  Buy milk  "})
	if task.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if task.Title != "Buy milk" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Priority != model.PriorityMedium || task.Recurrence != model.RecurrenceNone {
		t.Fatalf("unexpected defaults: %#v", task)
	}
	if task.Completed || task.CompletedAt != nil {
		t.Fatalf("new task must start incomplete: %#v", task)
	}
}

func TestSplitScenario(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, NewTask{Title: "one", Priority: model.PriorityLow})
	mustCreate(t, svc, NewTask{Title: "two", Priority: model.PriorityHigh})
	three := mustCreate(t, svc, NewTask{Title: "three", Priority: model.PriorityMedium})
	if _, err := svc.ToggleCompletion(ctx, three.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(all))
	}

	open, err := svc.Incomplete(ctx)
	if err != nil {
		t.Fatalf("incomplete: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("expected 2 incomplete, got %d", len(open))
	}

	done, err := svc.Completed(ctx)
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if len(done) != 1 || done[0].ID != three.ID {
		t.Fatalf("expected exactly task three completed, got %#v", done)
	}

	total, incomplete, completed, err := svc.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if incomplete+completed != total {
		t.Fatalf("count invariant broken: %d + %d != %d", incomplete, completed, total)
	}
}

func TestToggleTwiceLosesCompletionTime(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, NewTask{Title: "flip"})

	first, err := svc.ToggleCompletion(ctx, task.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first.Completed || first.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp: %#v", first)
	}

	second, err := svc.ToggleCompletion(ctx, task.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Completed {
		t.Fatalf("expected incomplete after second toggle")
	}
	// The round-trip restores the flag but not the timestamp: CompletedAt is
	// nil now, not the value stamped by the first toggle.
	if second.CompletedAt != nil {
		t.Fatalf("expected completed_at cleared, got %v", second.CompletedAt)
	}

	got, ok, err := svc.Get(ctx, task.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Completed || got.CompletedAt != nil {
		t.Fatalf("persisted state should match: %#v", got)
	}
}

func TestToggleUnknownIDReportsNotFound(t *testing.T) {
	svc := setupService(t)
	if _, err := svc.ToggleCompletion(context.Background(), "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected storage.ErrNotFound, got %v", err)
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	mustCreate(t, svc, NewTask{Title: "stay"})

	if err := svc.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
	total, _, _, err := svc.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected count unchanged at 1, got %d", total)
	}
}

func TestGetReportsAbsenceWithoutError(t *testing.T) {
	svc := setupService(t)
	_, ok, err := svc.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected no error for missing id, got %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing id")
	}
}

func TestCategoryScenario(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	mustCreate(t, svc, NewTask{Title: "a", Category: "test"})
	mustCreate(t, svc, NewTask{Title: "b", Category: "test"})
	mustCreate(t, svc, NewTask{Title: "c", Category: "other"})

	got, err := svc.ByCategory(ctx, "test")
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected exactly the two matching records, got %d", len(got))
	}
	for _, task := range got {
		if task.Category != "test" {
			t.Fatalf("wrong category in result: %#v", task)
		}
	}
}

func TestSearchScenario(t *testing.T) {
	svc := setupService(t)
	mustCreate(t, svc, NewTask{Title: "Test 1"})
	mustCreate(t, svc, NewTask{Title: "Test 2"})

	got, err := svc.Search(context.Background(), "Test 1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Test 1" {
		t.Fatalf("expected exactly Test 1, got %#v", got)
	}
}

func TestWatchDeliversSnapshotsOnWrites(t *testing.T) {
	svc := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := svc.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	initial := waitSnapshot(t, ch)
	if len(initial) != 0 {
		t.Fatalf("expected empty initial snapshot, got %d", len(initial))
	}

	task := mustCreate(t, svc, NewTask{Title: "watched"})
	after := waitSnapshot(t, ch)
	if len(after) != 1 || after[0].ID != task.ID {
		t.Fatalf("expected snapshot with the new task, got %#v", after)
	}

	if err := svc.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	final := waitSnapshot(t, ch)
	if len(final) != 0 {
		t.Fatalf("expected empty snapshot after delete, got %d", len(final))
	}
}

func TestWatchCoalescesWhenSubscriberIsSlow(t *testing.T) {
	svc := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := svc.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	waitSnapshot(t, ch)

	// Burst of writes while nobody reads: only the latest snapshot matters.
	for i := 0; i < 5; i++ {
		mustCreate(t, svc, NewTask{Title: "burst"})
	}

	latest := waitSnapshot(t, ch)
	if len(latest) != 5 {
		t.Fatalf("expected coalesced latest snapshot with 5 tasks, got %d", len(latest))
	}
}

func TestWatchClosesOnContextCancel(t *testing.T) {
	svc := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := svc.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	waitSnapshot(t, ch)

	cancel()
	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-ch:
			if !open {
				return
			}
		case <-deadline:
			t.Fatalf("watch channel did not close after cancel")
		}
	}
}

func TestWatchSurfacesInitialSnapshotError(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "taskbeat-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	svc := NewService(repo)
	_ = db.Close()

	if _, err := svc.Watch(context.Background()); err == nil {
		t.Fatalf("expected an error when the store is unreadable")
	}
}

func waitSnapshot(t *testing.T, ch <-chan []model.Task) []model.Task {
	t.Helper()
	select {
	case snapshot := <-ch:
		return snapshot
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for snapshot")
		return nil
	}
}
