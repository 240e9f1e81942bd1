package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "todo-service.com/todo-service/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.DueDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "due_date is required")
	}
	return nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.DueDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "due_date is required")
	}
	return nil
}
