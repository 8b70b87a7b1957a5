package progress

import (
	"testing"

	"taskhub/internal/model"
)

func tasksWithStatuses(statuses ...string) []model.Task {
	tasks := make([]model.Task, len(statuses))
	for i, s := range statuses {
		tasks[i] = model.Task{ID: i + 1, Status: s}
	}
	return tasks
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     int
	}{
		{"no tasks", nil, 0},
		{"none completed", []string{model.TaskStatusTodo, model.TaskStatusInProgress}, 0},
		{"one of four", []string{model.TaskStatusCompleted, model.TaskStatusTodo, model.TaskStatusTodo, model.TaskStatusInReview}, 25},
		{"all completed", []string{model.TaskStatusCompleted, model.TaskStatusCompleted}, 100},
		{"two of three rounds", []string{model.TaskStatusCompleted, model.TaskStatusCompleted, model.TaskStatusTodo}, 67},
		{"one of three rounds down", []string{model.TaskStatusCompleted, model.TaskStatusTodo, model.TaskStatusTodo}, 33},
		{"cancelled does not count", []string{model.TaskStatusCancelled, model.TaskStatusCompleted}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tasksWithStatuses(tt.statuses...)); got != tt.want {
				t.Fatalf("Compute() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromCounts(t *testing.T) {
	if got := FromCounts(0, 0); got != 0 {
		t.Fatalf("FromCounts(0,0) = %d, want 0", got)
	}
	if got := FromCounts(1, 4); got != 25 {
		t.Fatalf("FromCounts(1,4) = %d, want 25", got)
	}
	if got := FromCounts(4, 4); got != 100 {
		t.Fatalf("FromCounts(4,4) = %d, want 100", got)
	}
}
