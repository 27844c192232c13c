package tasks

import (
	"context"

	"github.com/sandeepkv93/taskbeat/internal/logging"
	"github.com/sandeepkv93/taskbeat/internal/model"
)

// Watch subscribes to the task stream. The channel carries the current full
// snapshot immediately and again after every successful write through this
// service. A slow subscriber sees intermediate snapshots coalesced into the
// latest one; it never blocks a writer. The channel closes when ctx is done.
// A failed initial read reports an error instead of a subscription.
func (s *Service) Watch(ctx context.Context) (<-chan []model.Task, error) {
	s.mu.Lock()
	snapshot, err := s.snapshotLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	ch := make(chan []model.Task, 1)
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	ch <- snapshot
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

// publishLocked fans the current snapshot out to every watcher. Callers hold
// s.mu, so snapshots reach watchers in write order.
func (s *Service) publishLocked(ctx context.Context) {
	if len(s.watchers) == 0 {
		return
	}
	snapshot, err := s.snapshotLocked(ctx)
	if err != nil {
		logging.Debug("tasks", "snapshot after write failed: %v", err)
		return
	}
	for _, ch := range s.watchers {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale pending snapshot, keep the latest.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

func (s *Service) snapshotLocked(ctx context.Context) ([]model.Task, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return fromRecords(recs), nil
}
