package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/pkg/rbac"
)

type PostInput struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

type PostService struct {
	posts *repository.PostRepository
}

func NewPostService(posts *repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create inserts a draft post authored by the acting user.
func (s *PostService) Create(ctx context.Context, actingUser *model.User, in PostInput) (*model.Post, error) {
	if err := rbac.CheckPermission(actingUser.Role, rbac.PermissionCreatePost); err != nil {
		return nil, ErrAccessDenied
	}

	p := &model.Post{
		AuthorID: actingUser.ID,
		Title:    in.Title,
		Body:     in.Body,
		Status:   model.PostStatusDraft,
	}
	if err := s.posts.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id int) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID int) ([]model.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

func (s *PostService) ListByStatus(ctx context.Context, status string) ([]model.Post, error) {
	return s.posts.ListByStatus(ctx, status)
}

// Update lets the author edit their post. Editing reverts the post to draft,
// which clears any previous moderation decision.
func (s *PostService) Update(ctx context.Context, actingUserID, id int, in PostInput) (*model.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != actingUserID {
		return nil, ErrAccessDenied
	}

	p.Title = in.Title
	p.Body = in.Body
	p.ApplyModeration(model.PostStatusDraft, 0, "", time.Now())

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Moderate records an admin decision on a post: publish, flag or reject.
// Reverting to draft clears the moderation fields instead.
func (s *PostService) Moderate(ctx context.Context, actingUser *model.User, id int, status, notes string) (*model.Post, error) {
	if err := rbac.CheckPermission(actingUser.Role, rbac.PermissionModeratePosts); err != nil {
		return nil, ErrAccessDenied
	}

	switch status {
	case model.PostStatusPublished, model.PostStatusFlagged, model.PostStatusRejected, model.PostStatusDraft:
	default:
		return nil, fmt.Errorf("%w: invalid moderation status %q", ErrValidation, status)
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.ApplyModeration(status, actingUser.ID, notes, time.Now())

	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a post. Author only.
func (s *PostService) Delete(ctx context.Context, actingUserID, id int) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != actingUserID {
		return ErrAccessDenied
	}
	return s.posts.Delete(ctx, id)
}
