package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "todo-service.com/todo-service/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/stats", h.Statistics)
	e.GET("/tasks/:id", h.GetTask)
	e.PUT("/tasks/:id", h.UpdateTask)
	e.POST("/tasks/:id/toggle", h.ToggleComplete)
	e.DELETE("/tasks/:id", h.DeleteTask)

	e.POST("/sync", h.TriggerSync)
	e.GET("/sync/status", h.SyncStatus)

	e.GET("/settings", h.GetSettings)
	e.PUT("/settings", h.UpdateSettings)
}
