package service

import (
	"context"

	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/pkg/rbac"
)

// Dashboard is the role-dependent aggregate view. Admin and superadmin
// sections stay nil for users without the matching permission.
type Dashboard struct {
	TasksByStatus       map[string]int `json:"tasks_by_status"`
	ProjectCount        int            `json:"project_count"`
	UnreadNotifications int            `json:"unread_notifications"`

	UsersByStatus map[string]int `json:"users_by_status,omitempty"`
	PostsByStatus map[string]int `json:"posts_by_status,omitempty"`

	TotalProjects *int `json:"total_projects,omitempty"`
}

type DashboardService struct {
	users         *repository.UserRepository
	projects      *repository.ProjectRepository
	tasks         *repository.TaskRepository
	posts         *repository.PostRepository
	notifications *repository.NotificationRepository
}

func NewDashboardService(
	users *repository.UserRepository,
	projects *repository.ProjectRepository,
	tasks *repository.TaskRepository,
	posts *repository.PostRepository,
	notifications *repository.NotificationRepository,
) *DashboardService {
	return &DashboardService{
		users:         users,
		projects:      projects,
		tasks:         tasks,
		posts:         posts,
		notifications: notifications,
	}
}

// Overview assembles the dashboard for the acting user, widening with
// moderation and global sections as the role permits.
func (s *DashboardService) Overview(ctx context.Context, actingUser *model.User) (*Dashboard, error) {
	tasksByStatus, err := s.tasks.CountByStatusForUser(ctx, actingUser.ID)
	if err != nil {
		return nil, err
	}

	projectCount, err := s.projects.CountForUser(ctx, actingUser.ID)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifications.CountUnread(ctx, actingUser.ID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TasksByStatus:       tasksByStatus,
		ProjectCount:        projectCount,
		UnreadNotifications: unread,
	}

	if rbac.HasPermission(actingUser.Role, rbac.PermissionManageUsers) {
		usersByStatus, err := s.users.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		d.UsersByStatus = usersByStatus

		postsByStatus, err := s.posts.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		d.PostsByStatus = postsByStatus
	}

	if rbac.HasPermission(actingUser.Role, rbac.PermissionViewAllStats) {
		total, err := s.projects.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		d.TotalProjects = &total
	}

	return d, nil
}
