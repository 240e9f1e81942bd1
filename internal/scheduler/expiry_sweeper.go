package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	model "todo-service.com/todo-service/internal/models"
)

type expiryStore interface {
	ListExpiredActive(ctx context.Context, now time.Time) ([]model.Task, error)
}

// ExpirySweeper periodically queries for tasks that have passed their due
// date without being completed and notifies observers. It never writes to
// storage; expiry stays a read-time derivation.
type ExpirySweeper struct {
	store  expiryStore
	logger *zap.SugaredLogger
	now    func() time.Time

	mu        sync.Mutex
	observers []func(model.Task)
	emitted   map[string]time.Time

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewExpirySweeper(store expiryStore, logger *zap.SugaredLogger) *ExpirySweeper {
	return &ExpirySweeper{
		store:   store,
		logger:  logger,
		now:     time.Now,
		emitted: make(map[string]time.Time),
		stop:    make(chan struct{}),
	}
}

// Subscribe registers an observer for expiry events. Observers are invoked
// from the sweep goroutine and should return quickly.
func (s *ExpirySweeper) Subscribe(fn func(model.Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *ExpirySweeper) Start(interval time.Duration) {
	s.wg.Add(1)
	go s.sweepLoop(interval)
}

func (s *ExpirySweeper) sweepLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce(context.Background())
		case <-s.stop:
			return
		}
	}
}

// SweepOnce runs a single pass. Each task is reported once per due date,
// so a later due-date edit that expires again produces a fresh event.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) {
	tasks, err := s.store.ListExpiredActive(ctx, s.now())
	if err != nil {
		s.logger.Warnf("expiry sweep failed: %v", err)
		return
	}

	expired := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		expired[task.ID] = struct{}{}

		s.mu.Lock()
		if due, seen := s.emitted[task.ID]; seen && due.Equal(task.DueDate) {
			s.mu.Unlock()
			continue
		}
		s.emitted[task.ID] = task.DueDate
		observers := make([]func(model.Task), len(s.observers))
		copy(observers, s.observers)
		s.mu.Unlock()

		s.logger.Infow("task expired", "id", task.ID, "title", task.Title)
		for _, fn := range observers {
			fn(task)
		}
	}

	// Markers for tasks that left the expired set (deleted, or due date
	// pushed out) are dropped so they stay eligible for a fresh event.
	s.mu.Lock()
	for id := range s.emitted {
		if _, ok := expired[id]; !ok {
			delete(s.emitted, id)
		}
	}
	s.mu.Unlock()
}

func (s *ExpirySweeper) Stop() {
	close(s.stop)
	s.wg.Wait()
}
