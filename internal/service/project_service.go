package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskhub/internal/access"
	"taskhub/internal/model"
	"taskhub/internal/notify"
	"taskhub/internal/repository"
	"taskhub/pkg/outbox"
	"taskhub/pkg/rbac"
	"taskhub/pkg/trace"
)

type ProjectInput struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      *float64   `json:"budget"`
}

type ProjectService struct {
	db         *pgxpool.Pool
	projects   *repository.ProjectRepository
	tasks      *repository.TaskRepository
	outboxRepo *outbox.Repository
	logger     *zap.Logger
}

func NewProjectService(
	db *pgxpool.Pool,
	projects *repository.ProjectRepository,
	tasks *repository.TaskRepository,
	log *zap.Logger,
) *ProjectService {
	return &ProjectService{
		db:         db,
		projects:   projects,
		tasks:      tasks,
		outboxRepo: outbox.NewRepository(db),
		logger:     log,
	}
}

// Create inserts a project owned by the acting user.
func (s *ProjectService) Create(ctx context.Context, actingUser *model.User, in ProjectInput) (*model.Project, error) {
	if err := rbac.CheckPermission(actingUser.Role, rbac.PermissionCreateProject); err != nil {
		return nil, ErrAccessDenied
	}
	if err := validateProjectInput(in); err != nil {
		return nil, err
	}

	p := &model.Project{
		OwnerID:     actingUser.ID,
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Budget:      in.Budget,
	}
	if p.Status == "" {
		p.Status = model.ProjectStatusPlanning
	}
	if p.Priority == "" {
		p.Priority = model.PriorityMedium
	}

	if err := s.projects.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a project (with members) if the acting user may view it.
func (s *ProjectService) Get(ctx context.Context, actingUserID, id int) (*model.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanAccessProject(actingUserID, p) {
		return nil, ErrAccessDenied
	}
	return p, nil
}

// List returns projects the user owns or belongs to.
func (s *ProjectService) List(ctx context.Context, userID int) ([]model.Project, error) {
	return s.projects.ListForUser(ctx, userID)
}

// Update applies a full-field update. Owner only.
func (s *ProjectService) Update(ctx context.Context, actingUserID, id int, in ProjectInput) (*model.Project, error) {
	if err := validateProjectInput(in); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.IsProjectOwner(actingUserID, p) {
		return nil, ErrAccessDenied
	}

	p.Name = in.Name
	p.Description = in.Description
	// Omitted status/priority keep their previous values.
	if in.Status != "" {
		p.Status = in.Status
	}
	if in.Priority != "" {
		p.Priority = in.Priority
	}
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.Budget = in.Budget

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a project. Owner only. Child tasks are detached, not
// deleted: their project binding is nulled in the same transaction
// (cascade-null policy).
func (s *ProjectService) Delete(ctx context.Context, actingUserID, id int) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !access.IsProjectOwner(actingUserID, p) {
		return ErrAccessDenied
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.tasks.DetachProjectTx(ctx, tx, id); err != nil {
		return err
	}
	if err := s.projects.DeleteTx(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.logger.Info("Project deleted",
		zap.Int("project_id", id),
		zap.Int("owner_id", actingUserID),
	)
	return nil
}

// canManageMembers: the owner or a manager member may change the roster.
func canManageMembers(userID int, p *model.Project) bool {
	if access.IsProjectOwner(userID, p) {
		return true
	}
	for _, m := range p.Members {
		if m.UserID == userID && m.Role == model.MemberRoleManager {
			return true
		}
	}
	return false
}

func validMemberRole(role string) bool {
	switch role {
	case model.MemberRoleMember, model.MemberRoleManager, model.MemberRoleViewer:
		return true
	}
	return false
}

// AddMember adds a user to the project roster and queues a project_invitation
// notification for them. The owner never holds a membership row.
func (s *ProjectService) AddMember(ctx context.Context, actingUserID, projectID, userID int, role string) (*model.ProjectMember, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canManageMembers(actingUserID, p) {
		return nil, ErrAccessDenied
	}
	if !validMemberRole(role) {
		return nil, fmt.Errorf("%w: invalid member role %q", ErrValidation, role)
	}
	if userID == p.OwnerID {
		return nil, fmt.Errorf("%w: owner cannot be added as a member", ErrValidation)
	}
	for _, m := range p.Members {
		if m.UserID == userID {
			return nil, fmt.Errorf("%w: user is already a member", ErrValidation)
		}
	}

	member := &model.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.projects.AddMemberTx(ctx, tx, member); err != nil {
		return nil, err
	}

	if ev := notify.PlanProjectInvitation(p, userID, role, actingUserID, time.Now(), trace.FromContext(ctx)); ev != nil {
		sink := newTxSink(s.outboxRepo, tx, "project", int64(projectID))
		if err := sink.Notify(ctx, ev.Recipient, ev.Kind, ev.Payload); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return member, nil
}

// RemoveMember drops a user from the roster. Members may remove themselves;
// otherwise owner or manager only.
func (s *ProjectService) RemoveMember(ctx context.Context, actingUserID, projectID, userID int) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if actingUserID != userID && !canManageMembers(actingUserID, p) {
		return ErrAccessDenied
	}
	return s.projects.RemoveMember(ctx, projectID, userID)
}

// UpdateMemberRole changes a member's role. Owner or manager only.
func (s *ProjectService) UpdateMemberRole(ctx context.Context, actingUserID, projectID, userID int, role string) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !canManageMembers(actingUserID, p) {
		return ErrAccessDenied
	}
	if !validMemberRole(role) {
		return fmt.Errorf("%w: invalid member role %q", ErrValidation, role)
	}
	return s.projects.UpdateMemberRole(ctx, projectID, userID, role)
}
