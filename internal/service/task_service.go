package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskhub/internal/access"
	"taskhub/internal/diff"
	"taskhub/internal/model"
	"taskhub/internal/notify"
	"taskhub/internal/progress"
	"taskhub/internal/repository"
	"taskhub/pkg/logger"
	"taskhub/pkg/metrics"
	"taskhub/pkg/outbox"
	"taskhub/pkg/trace"
)

// TaskInput carries the full field set of a create/update call. Updates are
// full-field writes, not partial patches.
type TaskInput struct {
	ProjectID      *int       `json:"project_id"`
	AssignedTo     *int       `json:"assigned_to"`
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	Progress       int        `json:"progress"`
	Tags           []string   `json:"tags"`
	Notes          string     `json:"notes"`
}

type TaskService struct {
	db         *pgxpool.Pool
	tasks      *repository.TaskRepository
	projects   *repository.ProjectRepository
	outboxRepo *outbox.Repository
	logger     *zap.Logger
}

func NewTaskService(
	db *pgxpool.Pool,
	tasks *repository.TaskRepository,
	projects *repository.ProjectRepository,
	log *zap.Logger,
) *TaskService {
	return &TaskService{
		db:         db,
		tasks:      tasks,
		projects:   projects,
		outboxRepo: outbox.NewRepository(db),
		logger:     log,
	}
}

// applyTaskInput lays a full-field update over an existing task. Omitted
// status/priority keep their previous values, so an update that leaves status
// out never silently reopens a completed task.
func applyTaskInput(before *model.Task, in TaskInput, now time.Time) model.Task {
	after := *before
	after.ProjectID = in.ProjectID
	after.AssignedTo = in.AssignedTo
	after.Title = in.Title
	after.Description = in.Description
	after.Priority = in.Priority
	after.DueDate = in.DueDate
	after.EstimatedHours = in.EstimatedHours
	after.ActualHours = in.ActualHours
	after.Progress = in.Progress
	after.Tags = in.Tags
	after.Notes = in.Notes

	if after.Priority == "" {
		after.Priority = before.Priority
	}
	status := in.Status
	if status == "" {
		status = before.Status
	}
	after.ApplyStatus(status, now)

	return after
}

// load fetches a task and, when bound, its project with the membership set,
// so the access predicates have everything they need.
func (s *TaskService) load(ctx context.Context, id int) (*model.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.ProjectID != nil {
		p, err := s.projects.GetByID(ctx, *t.ProjectID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		t.Project = p
	}
	return t, nil
}

// Get returns a task if the acting user may view it.
func (s *TaskService) Get(ctx context.Context, actingUserID, id int) (*model.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessTask(actingUserID, t) {
		return nil, ErrAccessDenied
	}
	return t, nil
}

// ListForUser returns every task visible to the user.
func (s *TaskService) ListForUser(ctx context.Context, userID int) ([]model.Task, error) {
	return s.tasks.ListForUser(ctx, userID)
}

// Create inserts a task created by the acting user. Binding the task to a
// project requires access to that project. Assigning someone else at
// creation time notifies them.
func (s *TaskService) Create(ctx context.Context, actingUserID int, in TaskInput) (*model.Task, error) {
	if err := validateTaskInput(in); err != nil {
		return nil, err
	}

	var project *model.Project
	if in.ProjectID != nil {
		p, err := s.projects.GetByID(ctx, *in.ProjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !access.CanAccessProject(actingUserID, p) {
			return nil, ErrAccessDenied
		}
		project = p
	}

	now := time.Now()
	t := &model.Task{
		ProjectID:      in.ProjectID,
		CreatedBy:      actingUserID,
		AssignedTo:     in.AssignedTo,
		Title:          in.Title,
		Description:    in.Description,
		Priority:       in.Priority,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
		Progress:       in.Progress,
		Tags:           in.Tags,
		Notes:          in.Notes,
		Project:        project,
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	status := in.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	t.ApplyStatus(status, now)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.tasks.Insert(ctx, tx, t); err != nil {
		return nil, err
	}

	if t.AssignedTo != nil && *t.AssignedTo != actingUserID {
		empty := &model.Task{CreatedBy: actingUserID}
		events := notify.PlanTaskEvents(empty, t, diff.TaskDiff(empty, t), actingUserID, now, trace.FromContext(ctx))
		sink := newTxSink(s.outboxRepo, tx, "task", int64(t.ID))
		for _, e := range events {
			// 创建路径只通知新负责人，变更通知从首次更新开始
			if e.Kind != notify.KindTaskAssigned {
				continue
			}
			if err := sink.Notify(ctx, e.Recipient, e.Kind, e.Payload); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.IncrementTaskMutation("create")
	s.recomputeProgress(ctx, t.ProjectID)
	return t, nil
}

// Update applies a full-field update: authorize, diff, persist, plan
// notifications into the outbox (one transaction), then recompute the
// progress of any touched project.
func (s *TaskService) Update(ctx context.Context, actingUserID, id int, in TaskInput) (*model.Task, error) {
	if err := validateTaskInput(in); err != nil {
		return nil, err
	}

	before, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditTask(actingUserID, before) {
		return nil, ErrAccessDenied
	}

	now := time.Now()
	after := applyTaskInput(before, in, now)

	// Rebinding to another project requires access to the target project.
	if in.ProjectID != nil && (before.ProjectID == nil || *before.ProjectID != *in.ProjectID) {
		p, err := s.projects.GetByID(ctx, *in.ProjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !access.CanAccessProject(actingUserID, p) {
			return nil, ErrAccessDenied
		}
		after.Project = p
	} else if in.ProjectID == nil {
		after.Project = nil
	}

	changes := diff.TaskDiff(before, &after)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.tasks.UpdateTx(ctx, tx, &after); err != nil {
		return nil, err
	}

	events := notify.PlanTaskEvents(before, &after, changes, actingUserID, now, trace.FromContext(ctx))
	sink := newTxSink(s.outboxRepo, tx, "task", int64(after.ID))
	if err := emitAll(ctx, sink, events); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.WithTrace(ctx, s.logger).Info("Task updated",
		zap.Int("task_id", after.ID),
		zap.Int("acting_user", actingUserID),
		zap.Int("changed_fields", len(changes)),
		zap.Int("notifications", len(events)),
	)
	metrics.IncrementTaskMutation("update")

	s.recomputeProgress(ctx, before.ProjectID)
	if after.ProjectID != nil && (before.ProjectID == nil || *before.ProjectID != *after.ProjectID) {
		s.recomputeProgress(ctx, after.ProjectID)
	}

	return &after, nil
}

// Delete removes a task the acting user may edit.
func (s *TaskService) Delete(ctx context.Context, actingUserID, id int) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanEditTask(actingUserID, t) {
		return ErrAccessDenied
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	metrics.IncrementTaskMutation("delete")
	s.recomputeProgress(ctx, t.ProjectID)
	return nil
}

// recomputeProgress rolls the project percentage up from its current task
// set. Failures are logged and swallowed: the rollup is derived state and
// the next mutation recomputes it anyway.
func (s *TaskService) recomputeProgress(ctx context.Context, projectID *int) {
	if projectID == nil {
		return
	}

	completed, total, err := s.tasks.CountByProject(ctx, *projectID)
	if err != nil {
		s.logger.Error("Failed to count project tasks",
			zap.Int("project_id", *projectID),
			zap.Error(err),
		)
		return
	}

	pct := progress.FromCounts(completed, total)
	if err := s.projects.UpdateProgress(ctx, *projectID, pct); err != nil {
		s.logger.Error("Failed to update project progress",
			zap.Int("project_id", *projectID),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("Project progress recomputed",
		zap.Int("project_id", *projectID),
		zap.Int("progress", pct),
	)
}
