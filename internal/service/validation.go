package service

import (
	"fmt"

	"taskhub/internal/model"
)

func validTaskStatus(status string) bool {
	switch status {
	case model.TaskStatusTodo, model.TaskStatusInProgress, model.TaskStatusInReview,
		model.TaskStatusCompleted, model.TaskStatusCancelled:
		return true
	}
	return false
}

func validProjectStatus(status string) bool {
	switch status {
	case model.ProjectStatusPlanning, model.ProjectStatusActive, model.ProjectStatusOnHold,
		model.ProjectStatusCompleted, model.ProjectStatusCancelled:
		return true
	}
	return false
}

func validPriority(priority string) bool {
	switch priority {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent:
		return true
	}
	return false
}

// validateTaskInput rejects unknown status/priority values. Empty values are
// allowed here: create paths default them, update paths keep the previous value.
func validateTaskInput(in TaskInput) error {
	if in.Status != "" && !validTaskStatus(in.Status) {
		return fmt.Errorf("%w: invalid task status %q", ErrValidation, in.Status)
	}
	if in.Priority != "" && !validPriority(in.Priority) {
		return fmt.Errorf("%w: invalid priority %q", ErrValidation, in.Priority)
	}
	return nil
}

// validateProjectInput is the project counterpart of validateTaskInput.
func validateProjectInput(in ProjectInput) error {
	if in.Status != "" && !validProjectStatus(in.Status) {
		return fmt.Errorf("%w: invalid project status %q", ErrValidation, in.Status)
	}
	if in.Priority != "" && !validPriority(in.Priority) {
		return fmt.Errorf("%w: invalid priority %q", ErrValidation, in.Priority)
	}
	return nil
}
