package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	dto "todo-service.com/todo-service/internal/data_models"
	apperrors "todo-service.com/todo-service/internal/errors"
	"todo-service.com/todo-service/internal/http/validators"
	"todo-service.com/todo-service/internal/services"
	"todo-service.com/todo-service/internal/settings"
	"todo-service.com/todo-service/internal/syncsvc"
	"todo-service.com/todo-service/internal/views"
)

type Handler struct {
	taskService   *services.TaskService
	syncService   *syncsvc.SyncService
	settingsStore *settings.Store
}

func NewHandler(
	taskService *services.TaskService,
	syncService *syncsvc.SyncService,
	settingsStore *settings.Store,
) *Handler {
	return &Handler{
		taskService:   taskService,
		syncService:   syncService,
		settingsStore: settingsStore,
	}
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	task, err := h.taskService.CreateTask(ctx, req.Title, req.Description, req.DueDate, req.HasTime)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return httpError(apperrors.ErrTaskIDRequired)
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	mode, err := views.ParseFilterMode(c.QueryParam("filter"))
	if err != nil {
		return httpError(err)
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	filtered := views.Filter(tasks, mode, time.Now())

	return c.JSON(http.StatusOK, echo.Map{
		"filter": mode,
		"count":  len(filtered),
		"tasks":  filtered,
	})
}

func (h *Handler) Statistics(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, views.ComputeStatistics(tasks, time.Now()))
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return httpError(apperrors.ErrTaskIDRequired)
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	task, applied, err := h.taskService.UpdateTask(
		c.Request().Context(), id, req.Title, req.DueDate, req.HasTime, req.IsCompleted,
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"applied": applied,
		"task":    task,
	})
}

func (h *Handler) ToggleComplete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return httpError(apperrors.ErrTaskIDRequired)
	}

	task, applied, err := h.taskService.ToggleComplete(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"applied": applied,
		"task":    task,
	})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return httpError(apperrors.ErrTaskIDRequired)
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) TriggerSync(c echo.Context) error {
	h.syncService.TriggerSync()

	return c.JSON(http.StatusAccepted, echo.Map{"status": "accepted"})
}

func (h *Handler) SyncStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.syncService.Status())
}

func (h *Handler) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.settingsStore.Get())
}

func (h *Handler) UpdateSettings(c echo.Context) error {
	var req dto.SettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	if _, err := views.ParseFilterMode(req.Filter); err != nil {
		return httpError(err)
	}

	cfg := settings.Settings{Filter: req.Filter, Theme: req.Theme}
	if err := h.settingsStore.Save(cfg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save settings")
	}

	return c.JSON(http.StatusOK, cfg)
}
