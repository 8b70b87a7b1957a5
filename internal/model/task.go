package model

import "time"

// Task statuses.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusInReview   = "in_review"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

type Task struct {
	ID             int        `json:"id"`
	ProjectID      *int       `json:"project_id,omitempty"`
	CreatedBy      int        `json:"created_by"`
	AssignedTo     *int       `json:"assigned_to,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`   // todo / in_progress / in_review / completed / cancelled
	Priority       string     `json:"priority"` // low / medium / high / urgent
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
	Progress       int        `json:"progress"` // 0-100
	Tags           []string   `json:"tags,omitempty"`
	Notes          string     `json:"notes"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Project is the loaded parent project (with members), nil for personal tasks.
	Project *Project `json:"project,omitempty"`
}

// ApplyStatus sets the status and keeps the completion fields consistent:
// completed_at is non-nil if and only if the status is completed, and
// progress is forced to 100 on completion.
func (t *Task) ApplyStatus(status string, now time.Time) {
	t.Status = status
	if status == TaskStatusCompleted {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
		t.Progress = 100
		return
	}
	t.CompletedAt = nil
}
