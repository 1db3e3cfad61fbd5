package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chhitz007/Blog-Posts/internal/apperror"
	"github.com/chhitz007/Blog-Posts/internal/model"
	"github.com/chhitz007/Blog-Posts/internal/repository"
)

// PostService handles business logic for posts and their comments.
type PostService struct {
	repo   repository.PostRepository
	logger *slog.Logger
}

func NewPostService(repo repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{
		repo:   repo,
		logger: logger,
	}
}

// ParseTags derives the tag list from the comma-separated form field.
//
// Semantics, kept exactly as the app has always behaved:
//   - empty input yields an empty list (not a list with one empty tag)
//   - otherwise split on "," and trim whitespace from each piece
//   - empty pieces are KEPT, so "a,b," yields ["a" "b" ""] — a trailing
//     comma produces an empty tag
func ParseTags(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tags = append(tags, strings.TrimSpace(part))
	}
	return tags
}

// Create validates and saves a new post.
//
// Title and content are required. Tags come in raw from the form and are
// parsed here; comments start as an empty list so the view page never deals
// with a nil slice.
func (s *PostService) Create(ctx context.Context, title, content, tagsRaw, author string) (*model.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		Author:   author,
		Tags:     ParseTags(tagsRaw),
		Comments: []string{},
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.String("id", post.ID),
		slog.String("author", post.Author),
	)

	return post, nil
}

// GetByID retrieves a post. Returns apperror.ErrNotFound for unknown IDs.
func (s *PostService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "post ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// List returns every post in creation order.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// Update overwrites a post's title, content and tags in place.
//
// Fetch-then-update: the fetch confirms the post exists (clean not-found),
// and the returned copy is what the edit form was pre-populated from.
// There is deliberately no check that the caller authored the post — any
// logged-in user may edit any post. Comments survive edits untouched.
func (s *PostService) Update(ctx context.Context, id, title, content, tagsRaw string) (*model.Post, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "post ID is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	post.Tags = ParseTags(tagsRaw)

	if err := s.repo.Update(ctx, post); err != nil {
		s.logger.Error("failed to update post",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating post: %w", err)
	}

	s.logger.Info("post updated", slog.String("id", post.ID))

	return post, nil
}

// AddComment appends a raw comment string to a post.
//
// Comments have no author — anonymous visitors can comment — and empty
// comments are not rejected. The append is atomic and order-preserving, so
// the comment is visible on the very next read of the post.
func (s *PostService) AddComment(ctx context.Context, id, comment string) error {
	if id == "" {
		return apperror.ValidationFailed("id", "post ID is required")
	}

	if err := s.repo.AppendComment(ctx, id, comment); err != nil {
		return err
	}

	s.logger.Info("comment added", slog.String("postID", id))
	return nil
}
