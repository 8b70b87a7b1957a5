package mq

import "time"

// Routing keys for task/project events published through the outbox.
const (
	RoutingKeyTaskAssigned      = "task.assigned"
	RoutingKeyTaskUpdated       = "task.updated"
	RoutingKeyProjectInvitation = "project.invitation"
)

// FieldChange 表示单个字段的变更
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

type TaskAssignedPayload struct {
	EventID    string    `json:"event_id"`
	TaskID     int       `json:"task_id"`
	TaskTitle  string    `json:"task_title"`
	AssignedTo int       `json:"assigned_to"`
	ActingUser int       `json:"acting_user"`
	TraceID    string    `json:"trace_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type TaskUpdatedPayload struct {
	EventID    string                 `json:"event_id"`
	TaskID     int                    `json:"task_id"`
	TaskTitle  string                 `json:"task_title"`
	Recipient  int                    `json:"recipient"`
	ActingUser int                    `json:"acting_user"`
	Changes    map[string]FieldChange `json:"changes"`
	TraceID    string                 `json:"trace_id,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type ProjectInvitationPayload struct {
	EventID     string    `json:"event_id"`
	ProjectID   int       `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Recipient   int       `json:"recipient"`
	Role        string    `json:"role"` // member / manager / viewer
	InvitedBy   int       `json:"invited_by"`
	TraceID     string    `json:"trace_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
