package views

import (
	"testing"
	"time"

	model "todo-service.com/todo-service/internal/models"
)

func sampleTasks(now time.Time) []model.Task {
	return []model.Task{
		{ID: "a", Title: "active one", DueDate: now.Add(time.Hour)},
		{ID: "b", Title: "completed", DueDate: now.Add(time.Hour), IsCompleted: true},
		{ID: "c", Title: "expired", DueDate: now.Add(-time.Hour)},
		{ID: "d", Title: "completed and past due", DueDate: now.Add(-time.Hour), IsCompleted: true},
		{ID: "e", Title: "active two", DueDate: now.Add(48 * time.Hour)},
		{ID: "f", Title: "no due date"},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertIDs(t *testing.T, got []model.Task, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestFilter_AllReturnsInputUnchanged(t *testing.T) {
	now := time.Now()
	tasks := sampleTasks(now)

	got := Filter(tasks, FilterAll, now)
	assertIDs(t, got, "a", "b", "c", "d", "e", "f")
}

func TestFilter_ActivePreservesOrder(t *testing.T) {
	now := time.Now()
	got := Filter(sampleTasks(now), FilterActive, now)
	assertIDs(t, got, "a", "e", "f")
}

func TestFilter_CompletedIgnoresExpiry(t *testing.T) {
	now := time.Now()
	got := Filter(sampleTasks(now), FilterCompleted, now)
	assertIDs(t, got, "b", "d")
}

func TestFilter_ExpiredExcludesCompleted(t *testing.T) {
	now := time.Now()
	got := Filter(sampleTasks(now), FilterExpired, now)
	assertIDs(t, got, "c")
}

func TestComputeStatistics_CountsSumToTotal(t *testing.T) {
	now := time.Now()
	tasks := sampleTasks(now)

	stats := ComputeStatistics(tasks, now)

	if stats.Total != len(tasks) {
		t.Errorf("expected total %d, got %d", len(tasks), stats.Total)
	}
	if stats.Completed != 2 || stats.Active != 3 || stats.Expired != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.Completed+stats.Active+stats.Expired != stats.Total {
		t.Errorf("states are not mutually exclusive: %+v", stats)
	}
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats := ComputeStatistics(nil, time.Now())
	if stats.Total != 0 || stats.Completed != 0 || stats.Active != 0 || stats.Expired != 0 {
		t.Errorf("expected zero statistics, got %+v", stats)
	}
}

func TestParseFilterMode(t *testing.T) {
	if mode, err := ParseFilterMode(""); err != nil || mode != FilterAll {
		t.Errorf("empty input must default to all, got %q err=%v", mode, err)
	}
	if mode, err := ParseFilterMode("expired"); err != nil || mode != FilterExpired {
		t.Errorf("expected expired, got %q err=%v", mode, err)
	}
	if _, err := ParseFilterMode("someday"); err == nil {
		t.Error("unknown mode must be rejected")
	}
}
