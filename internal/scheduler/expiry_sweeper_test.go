package scheduler

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	model "todo-service.com/todo-service/internal/models"
)

type fakeExpiryStore struct {
	tasks []model.Task
	err   error
}

func (f *fakeExpiryStore) ListExpiredActive(ctx context.Context, now time.Time) ([]model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}

	var out []model.Task
	for _, t := range f.tasks {
		if !t.IsCompleted && !t.DueDate.IsZero() && t.DueDate.Before(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func TestSweepOnce_EmitsEachExpiryOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	store := &fakeExpiryStore{tasks: []model.Task{
		{ID: "late", Title: "late", DueDate: now.Add(-time.Hour)},
		{ID: "future", Title: "future", DueDate: now.Add(time.Hour)},
		{ID: "done", Title: "done", DueDate: now.Add(-time.Hour), IsCompleted: true},
	}}

	sweeper := NewExpirySweeper(store, zap.NewNop().Sugar())
	sweeper.now = func() time.Time { return now }

	var events []string
	sweeper.Subscribe(func(task model.Task) {
		events = append(events, task.ID)
	})

	sweeper.SweepOnce(context.Background())
	sweeper.SweepOnce(context.Background())

	if len(events) != 1 || events[0] != "late" {
		t.Errorf("expected a single event for task 'late', got %v", events)
	}
}

func TestSweepOnce_ReemitsAfterDueDateChange(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)
	store := &fakeExpiryStore{tasks: []model.Task{
		{ID: "late", Title: "late", DueDate: now.Add(-time.Hour)},
	}}

	sweeper := NewExpirySweeper(store, zap.NewNop().Sugar())
	sweeper.now = func() time.Time { return now }

	var events int
	sweeper.Subscribe(func(model.Task) { events++ })

	sweeper.SweepOnce(context.Background())

	// Due date pushed out, then missed again.
	store.tasks[0].DueDate = now.Add(time.Hour)
	sweeper.SweepOnce(context.Background())
	store.tasks[0].DueDate = now.Add(-30 * time.Minute)
	sweeper.SweepOnce(context.Background())

	if events != 2 {
		t.Errorf("expected 2 expiry events across due-date changes, got %d", events)
	}
}

func TestSweepOnce_StoreFailureEmitsNothing(t *testing.T) {
	store := &fakeExpiryStore{err: context.DeadlineExceeded}

	sweeper := NewExpirySweeper(store, zap.NewNop().Sugar())

	var events int
	sweeper.Subscribe(func(model.Task) { events++ })

	sweeper.SweepOnce(context.Background())

	if events != 0 {
		t.Errorf("expected no events on store failure, got %d", events)
	}
}
