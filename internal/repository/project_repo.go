package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskhub/internal/model"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) error {
	r.logger.Debug("Inserting project",
		zap.Int("owner_id", p.OwnerID),
		zap.String("name", p.Name),
	)

	query := `
        INSERT INTO projects (owner_id, name, description, status, priority, start_date, end_date, budget, progress, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		p.OwnerID, p.Name, p.Description, p.Status, p.Priority, p.StartDate, p.EndDate, p.Budget,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return err
	}

	r.logger.Info("Project inserted successfully",
		zap.Int("id", p.ID),
		zap.Int("owner_id", p.OwnerID),
	)
	return nil
}

// GetByID loads a project together with its membership set.
func (r *ProjectRepository) GetByID(ctx context.Context, id int) (*model.Project, error) {
	query := `
        SELECT id, owner_id, name, description, status, priority, start_date, end_date, budget, progress, created_at, updated_at
        FROM projects
        WHERE id = $1
    `
	var p model.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Status, &p.Priority,
		&p.StartDate, &p.EndDate, &p.Budget, &p.Progress, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	members, err := r.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Members = members
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `
        UPDATE projects
        SET name = $1, description = $2, status = $3, priority = $4,
            start_date = $5, end_date = $6, budget = $7, updated_at = NOW()
        WHERE id = $8
    `
	_, err := r.db.Exec(ctx, query,
		p.Name, p.Description, p.Status, p.Priority, p.StartDate, p.EndDate, p.Budget, p.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Int("id", p.ID), zap.Error(err))
	}
	return err
}

// DeleteTx removes the project row. Callers null out task bindings in the
// same transaction first (see TaskRepository.DetachProjectTx).
func (r *ProjectRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int) error {
	_, err := tx.Exec(ctx, `DELETE FROM project_members WHERE project_id = $1`, id)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// ListForUser returns projects the user owns or is a member of.
func (r *ProjectRepository) ListForUser(ctx context.Context, userID int) ([]model.Project, error) {
	query := `
        SELECT DISTINCT p.id, p.owner_id, p.name, p.description, p.status, p.priority,
               p.start_date, p.end_date, p.budget, p.progress, p.created_at, p.updated_at
        FROM projects p
        LEFT JOIN project_members m ON m.project_id = p.id
        WHERE p.owner_id = $1 OR m.user_id = $1
        ORDER BY p.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Status, &p.Priority,
			&p.StartDate, &p.EndDate, &p.Budget, &p.Progress, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProgress overwrites the derived progress value. Concurrent rollups
// are last-writer-wins here.
func (r *ProjectRepository) UpdateProgress(ctx context.Context, id, progress int) error {
	_, err := r.db.Exec(ctx, `
        UPDATE projects SET progress = $1, updated_at = NOW() WHERE id = $2
    `, progress, id)
	return err
}

// ListMembers returns the membership set of a project.
func (r *ProjectRepository) ListMembers(ctx context.Context, projectID int) ([]model.ProjectMember, error) {
	query := `
        SELECT id, project_id, user_id, role, joined_at
        FROM project_members
        WHERE project_id = $1
        ORDER BY joined_at ASC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.ProjectMember
	for rows.Next() {
		var m model.ProjectMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// AddMemberTx inserts a membership row inside the caller's transaction.
// The (project_id, user_id) pair carries a unique constraint.
func (r *ProjectRepository) AddMemberTx(ctx context.Context, tx pgx.Tx, m *model.ProjectMember) error {
	query := `
        INSERT INTO project_members (project_id, user_id, role, joined_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id, joined_at
    `
	return tx.QueryRow(ctx, query, m.ProjectID, m.UserID, m.Role).Scan(&m.ID, &m.JoinedAt)
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID int) error {
	_, err := r.db.Exec(ctx, `
        DELETE FROM project_members WHERE project_id = $1 AND user_id = $2
    `, projectID, userID)
	return err
}

func (r *ProjectRepository) UpdateMemberRole(ctx context.Context, projectID, userID int, role string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE project_members SET role = $1 WHERE project_id = $2 AND user_id = $3
    `, role, projectID, userID)
	return err
}

// CountForUser returns how many projects the user owns or belongs to.
func (r *ProjectRepository) CountForUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(DISTINCT p.id)
        FROM projects p
        LEFT JOIN project_members m ON m.project_id = p.id
        WHERE p.owner_id = $1 OR m.user_id = $1
    `, userID).Scan(&count)
	return count, err
}

// CountAll returns the total number of projects.
func (r *ProjectRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	return count, err
}
