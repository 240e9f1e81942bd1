package data_models

import "time"

type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	HasTime     bool      `json:"has_time"`
}

type UpdateTaskRequest struct {
	Title       string    `json:"title"`
	DueDate     time.Time `json:"due_date"`
	HasTime     bool      `json:"has_time"`
	IsCompleted bool      `json:"is_completed"`
}

type SettingsRequest struct {
	Filter string `json:"filter"`
	Theme  string `json:"theme"`
}
