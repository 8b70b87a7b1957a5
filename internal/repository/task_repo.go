package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskhub/internal/model"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger,
	}
}

const taskColumns = `
    id, project_id, created_by, assigned_to, title, description, status, priority,
    due_date, estimated_hours, actual_hours, progress, tags, notes, completed_at,
    created_at, updated_at
`

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.CreatedBy, &t.AssignedTo, &t.Title, &t.Description,
		&t.Status, &t.Priority, &t.DueDate, &t.EstimatedHours, &t.ActualHours,
		&t.Progress, &t.Tags, &t.Notes, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Insert(ctx context.Context, tx pgx.Tx, t *model.Task) error {
	r.logger.Debug("Inserting task",
		zap.Int("created_by", t.CreatedBy),
		zap.String("title", t.Title),
	)

	query := `
        INSERT INTO tasks (project_id, created_by, assigned_to, title, description, status, priority,
                           due_date, estimated_hours, actual_hours, progress, tags, notes, completed_at,
                           created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err := tx.QueryRow(ctx, query,
		t.ProjectID, t.CreatedBy, t.AssignedTo, t.Title, t.Description, t.Status, t.Priority,
		t.DueDate, t.EstimatedHours, t.ActualHours, t.Progress, t.Tags, t.Notes, t.CompletedAt,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		r.logger.Error("Failed to insert task", zap.Error(err))
		return err
	}

	r.logger.Info("Task inserted successfully",
		zap.Int("id", t.ID),
		zap.Int("created_by", t.CreatedBy),
	)
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.db.QueryRow(ctx, query, id))
}

// UpdateTx writes the full field set of a task inside the caller's transaction.
func (r *TaskRepository) UpdateTx(ctx context.Context, tx pgx.Tx, t *model.Task) error {
	query := `
        UPDATE tasks
        SET project_id = $1, assigned_to = $2, title = $3, description = $4, status = $5,
            priority = $6, due_date = $7, estimated_hours = $8, actual_hours = $9,
            progress = $10, tags = $11, notes = $12, completed_at = $13, updated_at = NOW()
        WHERE id = $14
    `
	_, err := tx.Exec(ctx, query,
		t.ProjectID, t.AssignedTo, t.Title, t.Description, t.Status,
		t.Priority, t.DueDate, t.EstimatedHours, t.ActualHours,
		t.Progress, t.Tags, t.Notes, t.CompletedAt, t.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.Int("id", t.ID), zap.Error(err))
	}
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

// ListForUser returns tasks the user created, is assigned to, or can see
// through project membership or ownership.
func (r *TaskRepository) ListForUser(ctx context.Context, userID int) ([]model.Task, error) {
	query := `
        SELECT DISTINCT t.id, t.project_id, t.created_by, t.assigned_to, t.title, t.description,
               t.status, t.priority, t.due_date, t.estimated_hours, t.actual_hours,
               t.progress, t.tags, t.notes, t.completed_at, t.created_at, t.updated_at
        FROM tasks t
        LEFT JOIN projects p ON p.id = t.project_id
        LEFT JOIN project_members m ON m.project_id = t.project_id
        WHERE t.created_by = $1 OR t.assigned_to = $1 OR p.owner_id = $1 OR m.user_id = $1
        ORDER BY t.created_at DESC
    `
	return r.queryTasks(ctx, query, userID)
}

// ListByProject returns all tasks bound to a project.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, projectID)
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.CreatedBy, &t.AssignedTo, &t.Title, &t.Description,
			&t.Status, &t.Priority, &t.DueDate, &t.EstimatedHours, &t.ActualHours,
			&t.Progress, &t.Tags, &t.Notes, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CountByProject returns (completed, total) task counts for a project.
func (r *TaskRepository) CountByProject(ctx context.Context, projectID int) (completed, total int, err error) {
	err = r.db.QueryRow(ctx, `
        SELECT COUNT(*) FILTER (WHERE status = 'completed'), COUNT(*)
        FROM tasks
        WHERE project_id = $1
    `, projectID).Scan(&completed, &total)
	return completed, total, err
}

// CountByStatusForUser returns status → count over tasks the user created or holds.
func (r *TaskRepository) CountByStatusForUser(ctx context.Context, userID int) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT status, COUNT(*)
        FROM tasks
        WHERE created_by = $1 OR assigned_to = $1
        GROUP BY status
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// DetachProjectTx nulls out the project binding of all tasks under a project.
// Runs in the project-deletion transaction (cascade-null policy).
func (r *TaskRepository) DetachProjectTx(ctx context.Context, tx pgx.Tx, projectID int) error {
	_, err := tx.Exec(ctx, `
        UPDATE tasks SET project_id = NULL, updated_at = NOW() WHERE project_id = $1
    `, projectID)
	return err
}
