package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"taskhub/internal/model"
)

func TestValidateTaskInput(t *testing.T) {
	tests := []struct {
		name    string
		in      TaskInput
		wantErr bool
	}{
		{"empty status and priority pass", TaskInput{Title: "t"}, false},
		{"known values pass", TaskInput{Title: "t", Status: model.TaskStatusInReview, Priority: model.PriorityUrgent}, false},
		{"unknown status rejected", TaskInput{Title: "t", Status: "done"}, true},
		{"unknown priority rejected", TaskInput{Title: "t", Priority: "critical"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTaskInput(tt.in)
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateProjectInput(t *testing.T) {
	tests := []struct {
		name    string
		in      ProjectInput
		wantErr bool
	}{
		{"empty status and priority pass", ProjectInput{Name: "p"}, false},
		{"known values pass", ProjectInput{Name: "p", Status: model.ProjectStatusOnHold, Priority: model.PriorityLow}, false},
		{"unknown status rejected", ProjectInput{Name: "p", Status: "archived"}, true},
		{"unknown priority rejected", ProjectInput{Name: "p", Priority: "p0"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectInput(tt.in)
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTaskUpdateRejectsUnknownStatusBeforeStorage(t *testing.T) {
	// Validation fires before any storage access, so a service with no
	// database still rejects the bad input.
	s := NewTaskService(nil, nil, nil, zap.NewNop())

	_, err := s.Update(context.Background(), 1, 1, TaskInput{Title: "t", Status: "bogus"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	_, err = s.Create(context.Background(), 1, TaskInput{Title: "t", Priority: "bogus"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestApplyTaskInputOmittedStatusKeepsCompletion(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)
	before := &model.Task{
		ID: 1, CreatedBy: 1, Title: "ship it",
		Status: model.TaskStatusCompleted, Progress: 100,
		Priority: model.PriorityHigh, CompletedAt: &done,
	}

	after := applyTaskInput(before, TaskInput{Title: "ship it, renamed"}, now)

	if after.Status != model.TaskStatusCompleted {
		t.Fatalf("status = %q, want %q", after.Status, model.TaskStatusCompleted)
	}
	if after.CompletedAt == nil || !after.CompletedAt.Equal(done) {
		t.Fatalf("completed_at = %v, want %v", after.CompletedAt, done)
	}
	if after.Priority != model.PriorityHigh {
		t.Fatalf("priority = %q, want kept %q", after.Priority, model.PriorityHigh)
	}
	if after.Title != "ship it, renamed" {
		t.Fatalf("title = %q", after.Title)
	}
}

func TestApplyTaskInputExplicitStatusReopens(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)
	before := &model.Task{
		ID: 1, Status: model.TaskStatusCompleted, Progress: 100, CompletedAt: &done,
	}

	after := applyTaskInput(before, TaskInput{Title: "t", Status: model.TaskStatusInProgress}, now)

	if after.Status != model.TaskStatusInProgress {
		t.Fatalf("status = %q, want %q", after.Status, model.TaskStatusInProgress)
	}
	if after.CompletedAt != nil {
		t.Fatalf("completed_at = %v, want nil after explicit reopen", after.CompletedAt)
	}
}
