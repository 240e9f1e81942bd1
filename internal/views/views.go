// Package views derives filtered lists and aggregate counts from a task
// collection snapshot. Everything here is pure: the snapshot is never
// mutated and the clock is an explicit argument.
package views

import (
	"time"

	apperrors "todo-service.com/todo-service/internal/errors"
	model "todo-service.com/todo-service/internal/models"
)

type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterActive    FilterMode = "active"
	FilterCompleted FilterMode = "completed"
	FilterExpired   FilterMode = "expired"
)

func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case FilterAll, FilterActive, FilterCompleted, FilterExpired:
		return FilterMode(s), nil
	case "":
		return FilterAll, nil
	}
	return "", apperrors.ErrInvalidFilter
}

// Filter returns the tasks matching mode, preserving input order.
// FilterAll returns the input unchanged.
func Filter(tasks []model.Task, mode FilterMode, now time.Time) []model.Task {
	if mode == FilterAll {
		return tasks
	}

	matched := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		var keep bool
		switch mode {
		case FilterActive:
			keep = t.State(now) == model.StateActive
		case FilterCompleted:
			keep = t.IsCompleted
		case FilterExpired:
			keep = t.State(now) == model.StateExpired
		}
		if keep {
			matched = append(matched, t)
		}
	}
	return matched
}

type Statistics struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
	Expired   int `json:"expired"`
}

// ComputeStatistics counts tasks per state. Because a task is in exactly
// one state at a time, Completed+Active+Expired always equals Total.
func ComputeStatistics(tasks []model.Task, now time.Time) Statistics {
	stats := Statistics{Total: len(tasks)}
	for _, t := range tasks {
		switch t.State(now) {
		case model.StateCompleted:
			stats.Completed++
		case model.StateExpired:
			stats.Expired++
		default:
			stats.Active++
		}
	}
	return stats
}
