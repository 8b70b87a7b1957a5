package access

import (
	"testing"

	"taskhub/internal/model"
)

func member(projectID, userID int, role string) model.ProjectMember {
	return model.ProjectMember{ProjectID: projectID, UserID: userID, Role: role}
}

func TestCanAccessProject(t *testing.T) {
	p := &model.Project{
		ID:      1,
		OwnerID: 10,
		Members: []model.ProjectMember{
			member(1, 20, model.MemberRoleViewer),
			member(1, 30, model.MemberRoleManager),
		},
	}

	tests := []struct {
		name   string
		userID int
		want   bool
	}{
		{"owner", 10, true},
		{"viewer member", 20, true},
		{"manager member", 30, true},
		{"stranger", 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessProject(tt.userID, p); got != tt.want {
				t.Fatalf("CanAccessProject(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}

	if CanAccessProject(10, nil) {
		t.Fatal("expected no access to nil project")
	}
}

func TestIsProjectOwner(t *testing.T) {
	p := &model.Project{ID: 1, OwnerID: 10, Members: []model.ProjectMember{member(1, 20, model.MemberRoleManager)}}

	if !IsProjectOwner(10, p) {
		t.Fatal("expected owner to be recognized")
	}
	if IsProjectOwner(20, p) {
		t.Fatal("manager membership must not grant ownership")
	}
	if IsProjectOwner(10, nil) {
		t.Fatal("nil project has no owner")
	}
}

func TestCanAccessTaskViaProjectMembership(t *testing.T) {
	assignee := 40
	p := &model.Project{
		ID:      1,
		OwnerID: 10,
		Members: []model.ProjectMember{member(1, 20, model.MemberRoleViewer)},
	}
	projectID := p.ID
	task := &model.Task{
		ID:         5,
		ProjectID:  &projectID,
		CreatedBy:  30,
		AssignedTo: &assignee,
		Project:    p,
	}

	// Viewer on the project can see the task but cannot edit it.
	if !CanAccessTask(20, task) {
		t.Fatal("project viewer should access the task")
	}
	if CanEditTask(20, task) {
		t.Fatal("project viewer must not edit the task")
	}

	// Creator and assignee can do both.
	for _, uid := range []int{30, 40} {
		if !CanAccessTask(uid, task) {
			t.Fatalf("user %d should access the task", uid)
		}
		if !CanEditTask(uid, task) {
			t.Fatalf("user %d should edit the task", uid)
		}
	}

	// Project owner edits via ownership, not membership.
	if !CanEditTask(10, task) {
		t.Fatal("project owner should edit the task")
	}

	// Stranger gets nothing.
	if CanAccessTask(99, task) || CanEditTask(99, task) {
		t.Fatal("stranger must not access or edit the task")
	}
}

func TestCanAccessTaskWithoutProject(t *testing.T) {
	task := &model.Task{ID: 5, CreatedBy: 30}

	if !CanAccessTask(30, task) || !CanEditTask(30, task) {
		t.Fatal("creator should access and edit a personal task")
	}
	if CanAccessTask(20, task) {
		t.Fatal("absent project reference must yield false for the project clause")
	}
	if CanAccessTask(20, nil) || CanEditTask(20, nil) {
		t.Fatal("nil task must yield false")
	}
}
