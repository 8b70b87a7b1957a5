// Package access holds the pure authorization predicates for projects and
// tasks. All functions are total: a nil project or task simply makes the
// corresponding clause false, nothing here errors or touches storage.
package access

import "taskhub/internal/model"

// CanAccessProject reports whether the user owns the project or holds any
// membership row on it (any role, viewer included).
func CanAccessProject(userID int, p *model.Project) bool {
	if p == nil {
		return false
	}
	if p.OwnerID == userID {
		return true
	}
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsProjectOwner reports whether the user owns the project.
func IsProjectOwner(userID int, p *model.Project) bool {
	return p != nil && p.OwnerID == userID
}

// CanAccessTask reports whether the user may view the task: creator,
// assignee, or anyone with access to its project.
func CanAccessTask(userID int, t *model.Task) bool {
	if t == nil {
		return false
	}
	if t.CreatedBy == userID {
		return true
	}
	if t.AssignedTo != nil && *t.AssignedTo == userID {
		return true
	}
	return CanAccessProject(userID, t.Project)
}

// CanEditTask reports whether the user may mutate the task. Edit rights are
// strictly narrower than access rights: project membership alone grants
// visibility but not edit — only the project owner gets edit via the project.
func CanEditTask(userID int, t *model.Task) bool {
	if t == nil {
		return false
	}
	if t.CreatedBy == userID {
		return true
	}
	if t.AssignedTo != nil && *t.AssignedTo == userID {
		return true
	}
	return IsProjectOwner(userID, t.Project)
}
