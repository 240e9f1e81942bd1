package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "todo-service.com/todo-service/internal/errors"
	model "todo-service.com/todo-service/internal/models"
	repository "todo-service.com/todo-service/internal/repositories"
)

// ReminderSync keeps a task's pending reminders consistent with its
// current due date and completion state.
type ReminderSync interface {
	Resync(ctx context.Context, task *model.Task) error
	CancelAll(ctx context.Context, taskID string) error
}

// SyncTrigger kicks off a best-effort remote snapshot push. Outcomes are
// reported through the sync status observable, never through mutations.
type SyncTrigger interface {
	SyncNow(ctx context.Context)
}

// TaskService is the single owner of the task collection. Mutations are
// serialized; the persistence write is awaited, then reminder
// resynchronization and the remote sync run detached so their failures
// can never roll back a committed local change. Detached follow-ups are
// drained by a single worker in mutation order, so a slow resync from an
// earlier edit can never overwrite the reminders of a later one.
type TaskService struct {
	repo      *repository.TaskRepository
	reminders ReminderSync
	syncer    SyncTrigger
	logger    *zap.SugaredLogger
	now       func() time.Time

	mu     sync.Mutex
	jobs   chan func(ctx context.Context)
	bg     sync.WaitGroup
	loopWG sync.WaitGroup
}

const followUpQueueSize = 64

func NewTaskService(
	repo *repository.TaskRepository,
	reminders ReminderSync,
	syncer SyncTrigger,
	logger *zap.SugaredLogger,
) *TaskService {
	s := &TaskService{
		repo:      repo,
		reminders: reminders,
		syncer:    syncer,
		logger:    logger,
		now:       time.Now,
		jobs:      make(chan func(ctx context.Context), followUpQueueSize),
	}

	s.loopWG.Add(1)
	go s.followUpLoop()

	return s
}

func (s *TaskService) followUpLoop() {
	defer s.loopWG.Done()

	for job := range s.jobs {
		job(context.Background())
		s.bg.Done()
	}
}

func (s *TaskService) enqueueFollowUp(job func(ctx context.Context)) {
	s.bg.Add(1)
	s.jobs <- job
}

// CreateTask validates the input and inserts a new active task. When
// hasTime is false the due date is treated as date-only and normalized to
// 23:59 local on the selected day.
func (s *TaskService) CreateTask(
	ctx context.Context,
	title, description string,
	dueDate time.Time,
	hasTime bool,
) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.ErrEmptyTitle
	}

	due := normalizeDueDate(dueDate, hasTime)
	if due.Before(s.now()) {
		return nil, apperrors.ErrDueDateInPast
	}

	task, err := s.repo.CreateTask(ctx, title, description, due, hasTime)
	if err != nil {
		return nil, err
	}

	s.afterMutation(*task)
	return task, nil
}

// UpdateTask applies title, due date and completion atomically. A task
// that is already completed is immutable: the call reports applied=false
// and changes nothing, which is a business rule, not an error.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	id, title string,
	dueDate time.Time,
	hasTime bool,
	isCompleted bool,
) (*model.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if task.IsCompleted {
		s.logger.Infof("skipping update of completed task %s", id)
		return task, false, nil
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, false, apperrors.ErrEmptyTitle
	}

	task.Title = title
	task.DueDate = normalizeDueDate(dueDate, hasTime)
	task.HasTime = hasTime
	task.IsCompleted = isCompleted

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, false, err
	}

	s.afterMutation(*task)
	return task, true, nil
}

// ToggleComplete marks an active task completed. Despite the name the
// transition is one-way: an already-completed task stays completed, and an
// expired task cannot be completed. Both guards report applied=false.
func (s *TaskService) ToggleComplete(ctx context.Context, id string) (*model.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if task.IsCompleted {
		s.logger.Infof("skipping toggle of completed task %s", id)
		return task, false, nil
	}
	if task.IsExpired(s.now()) {
		s.logger.Infof("skipping toggle of expired task %s", id)
		return task, false, nil
	}

	task.IsCompleted = true
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, false, err
	}

	s.afterMutation(*task)
	return task, true, nil
}

// DeleteTask removes the task regardless of its state and cancels its
// pending reminders.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.enqueueFollowUp(func(ctx context.Context) {
		if err := s.reminders.CancelAll(ctx, id); err != nil {
			s.logger.Warnf("failed to cancel reminders for task %s: %v", id, err)
		}
		if s.syncer != nil {
			s.syncer.SyncNow(ctx)
		}
	})
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

// afterMutation queues the un-awaited follow-ups of a committed mutation:
// reminder resynchronization and the remote sync trigger. Callers never
// see their errors. Jobs are queued while the mutation lock is held, so
// the worker observes them in commit order.
func (s *TaskService) afterMutation(task model.Task) {
	s.enqueueFollowUp(func(ctx context.Context) {
		if err := s.reminders.Resync(ctx, &task); err != nil {
			s.logger.Warnf("failed to resync reminders for task %s: %v", task.ID, err)
		}
		if s.syncer != nil {
			s.syncer.SyncNow(ctx)
		}
	})
}

// Wait blocks until all queued follow-up jobs have settled. Used on
// shutdown, and by tests that need deterministic ordering.
func (s *TaskService) Wait() {
	s.bg.Wait()
}

// Shutdown stops accepting follow-up jobs and waits for the worker to
// drain the queue.
func (s *TaskService) Shutdown() {
	close(s.jobs)
	s.loopWG.Wait()
}

func normalizeDueDate(dueDate time.Time, hasTime bool) time.Time {
	if hasTime || dueDate.IsZero() {
		return dueDate
	}
	return time.Date(
		dueDate.Year(), dueDate.Month(), dueDate.Day(),
		23, 59, 0, 0, dueDate.Location(),
	)
}
