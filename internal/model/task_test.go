package model

import (
	"testing"
	"time"
)

func TestApplyStatusCompletion(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	task := &Task{Status: TaskStatusInProgress, Progress: 40}
	task.ApplyStatus(TaskStatusCompleted, now)

	if task.Status != TaskStatusCompleted {
		t.Fatalf("status = %q, want %q", task.Status, TaskStatusCompleted)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Fatalf("completed_at = %v, want %v", task.CompletedAt, now)
	}
	if task.Progress != 100 {
		t.Fatalf("progress = %d, want 100", task.Progress)
	}
}

func TestApplyStatusKeepsOriginalCompletionTime(t *testing.T) {
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	task := &Task{}
	task.ApplyStatus(TaskStatusCompleted, first)
	task.ApplyStatus(TaskStatusCompleted, later)

	if task.CompletedAt == nil || !task.CompletedAt.Equal(first) {
		t.Fatalf("completed_at = %v, want %v", task.CompletedAt, first)
	}
}

func TestApplyStatusClearsCompletionOnReopen(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	task := &Task{}
	task.ApplyStatus(TaskStatusCompleted, now)
	task.ApplyStatus(TaskStatusInProgress, now.Add(time.Hour))

	if task.CompletedAt != nil {
		t.Fatalf("completed_at = %v, want nil after reopening", task.CompletedAt)
	}
	if task.Status != TaskStatusInProgress {
		t.Fatalf("status = %q, want %q", task.Status, TaskStatusInProgress)
	}
}
