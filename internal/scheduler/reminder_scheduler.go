// Package scheduler keeps each task's pending reminders in step with its
// due date, and watches the collection for tasks that slip past their
// deadline.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	model "todo-service.com/todo-service/internal/models"
	"todo-service.com/todo-service/internal/notify"
)

type reminderOffset struct {
	Label  string
	Before time.Duration
}

// Offsets before the due date at which a reminder may fire. The morning
// slot is handled separately: it fires at 08:00 local time on the due day
// itself, independent of the due time.
var reminderOffsets = []reminderOffset{
	{Label: "15m", Before: 15 * time.Minute},
	{Label: "1h", Before: time.Hour},
	{Label: "6h", Before: 6 * time.Hour},
	{Label: "12h", Before: 12 * time.Hour},
}

const morningLabel = "morning"

const morningHour = 8

type Candidate struct {
	ID     string
	FireAt time.Time
}

func reminderID(taskID, label string) string {
	return fmt.Sprintf("%s:%s", taskID, label)
}

// Identifiers returns every reminder identifier a task can own. The set is
// deterministic, so cancellation never needs to know what was actually
// scheduled.
func Identifiers(taskID string) []string {
	ids := make([]string, 0, len(reminderOffsets)+1)
	for _, off := range reminderOffsets {
		ids = append(ids, reminderID(taskID, off.Label))
	}
	return append(ids, reminderID(taskID, morningLabel))
}

// Candidates computes the full reminder set for a due date, regardless of
// whether each fire time is still reachable.
func Candidates(taskID string, dueDate time.Time) []Candidate {
	candidates := make([]Candidate, 0, len(reminderOffsets)+1)
	for _, off := range reminderOffsets {
		candidates = append(candidates, Candidate{
			ID:     reminderID(taskID, off.Label),
			FireAt: dueDate.Add(-off.Before),
		})
	}

	morning := time.Date(
		dueDate.Year(), dueDate.Month(), dueDate.Day(),
		morningHour, 0, 0, 0, dueDate.Location(),
	)
	return append(candidates, Candidate{
		ID:     reminderID(taskID, morningLabel),
		FireAt: morning,
	})
}

type ReminderScheduler struct {
	notifier notify.Notifier
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewReminderScheduler(notifier notify.Notifier, logger *zap.SugaredLogger) *ReminderScheduler {
	return &ReminderScheduler{
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Resync replaces the task's pending reminders with the set implied by its
// current due date. Cancellation always runs first so an edit can never
// leave stale triggers behind; scheduling is skipped entirely for
// completed tasks and tasks without a due date.
func (s *ReminderScheduler) Resync(ctx context.Context, task *model.Task) error {
	if err := s.CancelAll(ctx, task.ID); err != nil {
		return err
	}

	if task.IsCompleted || task.DueDate.IsZero() {
		return nil
	}

	now := s.now()
	scheduled := 0
	for _, c := range Candidates(task.ID, task.DueDate) {
		if !c.FireAt.After(now) {
			continue
		}
		body := fmt.Sprintf("Due %s", task.DueDate.Format("Mon Jan 2 15:04"))
		if err := s.notifier.Schedule(ctx, c.ID, c.FireAt, task.Title, body); err != nil {
			return err
		}
		scheduled++
	}

	s.logger.Debugf("scheduled %d reminders for task %s", scheduled, task.ID)
	return nil
}

// CancelAll drops every pending reminder for the task id.
func (s *ReminderScheduler) CancelAll(ctx context.Context, taskID string) error {
	return s.notifier.Cancel(ctx, Identifiers(taskID))
}
