package syncsvc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	model "todo-service.com/todo-service/internal/models"
)

// failingStore errors before the remote store is ever touched, so tests
// can exercise the status observable without a redis connection.
type failingStore struct {
	delay time.Duration
}

func (f *failingStore) List(ctx context.Context) ([]model.Task, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return nil, errors.New("storage offline")
}

type statusRecorder struct {
	mu     sync.Mutex
	states []State
}

func (r *statusRecorder) record(status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, status.State)
}

func (r *statusRecorder) recorded() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func TestTriggerSync_TrackedAndReportedViaStatus(t *testing.T) {
	svc := NewSyncService(&failingStore{}, nil, "snapshot", zap.NewNop().Sugar())

	recorder := &statusRecorder{}
	svc.Subscribe(recorder.record)

	svc.TriggerSync()
	svc.Wait()

	if got := svc.Status(); got.State != StateError || got.Message == "" {
		t.Errorf("expected error status with message, got %+v", got)
	}

	states := recorder.recorded()
	if len(states) != 2 || states[0] != StateSyncing || states[1] != StateError {
		t.Errorf("expected syncing then error, got %v", states)
	}
}

func TestSyncNow_RunsDoNotInterleave(t *testing.T) {
	svc := NewSyncService(&failingStore{delay: 20 * time.Millisecond}, nil, "snapshot", zap.NewNop().Sugar())

	recorder := &statusRecorder{}
	svc.Subscribe(recorder.record)

	svc.TriggerSync()
	svc.TriggerSync()
	svc.Wait()

	states := recorder.recorded()
	if len(states) != 4 {
		t.Fatalf("expected 4 status transitions, got %v", states)
	}
	for i := 0; i < len(states); i += 2 {
		if states[i] != StateSyncing || states[i+1] != StateError {
			t.Errorf("runs interleaved their transitions: %v", states)
			break
		}
	}
}
