package model

import "time"

// Project statuses.
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Priorities, shared by projects and tasks.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Member roles. Membership grants visibility, never task-edit rights.
const (
	MemberRoleMember  = "member"
	MemberRoleManager = "manager"
	MemberRoleViewer  = "viewer"
)

type Project struct {
	ID          int        `json:"id"`
	OwnerID     int        `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`   // planning / active / on_hold / completed / cancelled
	Priority    string     `json:"priority"` // low / medium / high / urgent
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Progress    int        `json:"progress"` // 0-100, derived from task completion
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Members is the loaded membership set; the owner never appears here.
	Members []ProjectMember `json:"members,omitempty"`
}

type ProjectMember struct {
	ID        int       `json:"id"`
	ProjectID int       `json:"project_id"`
	UserID    int       `json:"user_id"`
	Role      string    `json:"role"` // member / manager / viewer
	JoinedAt  time.Time `json:"joined_at"`
}
