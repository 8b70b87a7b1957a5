package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskhub/internal/model"
)

type PostRepository struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `
    id, author_id, title, body, status, moderated_by, moderated_at, moderation_notes,
    created_at, updated_at
`

func (r *PostRepository) Insert(ctx context.Context, p *model.Post) error {
	query := `
        INSERT INTO posts (author_id, title, body, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	return r.db.QueryRow(ctx, query, p.AuthorID, p.Title, p.Body, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, id int) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	var p model.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Status,
		&p.ModeratedBy, &p.ModeratedAt, &p.ModerationNotes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Update(ctx context.Context, p *model.Post) error {
	query := `
        UPDATE posts
        SET title = $1, body = $2, status = $3, moderated_by = $4, moderated_at = $5,
            moderation_notes = $6, updated_at = NOW()
        WHERE id = $7
    `
	_, err := r.db.Exec(ctx, query,
		p.Title, p.Body, p.Status, p.ModeratedBy, p.ModeratedAt, p.ModerationNotes, p.ID,
	)
	return err
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 ORDER BY created_at DESC`
	return r.queryPosts(ctx, query, authorID)
}

func (r *PostRepository) ListByStatus(ctx context.Context, status string) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY created_at DESC`
	return r.queryPosts(ctx, query, status)
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Status,
			&p.ModeratedBy, &p.ModeratedAt, &p.ModerationNotes, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountByStatus returns post counts grouped by moderation status.
func (r *PostRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM posts GROUP BY status`)
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
