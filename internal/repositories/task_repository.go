package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "todo-service.com/todo-service/internal/errors"
	model "todo-service.com/todo-service/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(
	ctx context.Context,
	title, description string,
	dueDate time.Time,
	hasTime bool,
) (*model.Task, error) {
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		HasTime:     hasTime,
		IsCompleted: false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, apperrors.Persistence(err)
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Persistence(err)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("created_at asc").Find(&tasks).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return tasks, nil
}

// ListExpiredActive returns tasks whose due date has passed and that were
// never completed. Used by the expiry sweep; it never writes anything.
func (r *TaskRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("due_date < ? AND is_completed = ?", now, false).
		Order("due_date asc").
		Find(&tasks).Error
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":        task.Title,
			"description":  task.Description,
			"due_date":     task.DueDate,
			"has_time":     task.HasTime,
			"is_completed": task.IsCompleted,
		})

	if res.Error != nil {
		return apperrors.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
