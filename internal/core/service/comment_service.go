package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// CommentService implements comment CRUD. Mutations are owner-only; there is
// no admin override on comments.
type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	logger   zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, logger: logger}
}

func (s *CommentService) ListForPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *CommentService) Create(ctx context.Context, identity domain.Identity, postID int64, body string) (*domain.Comment, error) {
	// The parent post must exist; a dangling comment would violate the FK anyway.
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:    postID,
		AuthorID:  identity.UserID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("comment_id", created.ID).Int64("post_id", postID).Msg("comment created")
	return created, nil
}

func (s *CommentService) Update(ctx context.Context, identity domain.Identity, id int64, body string) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanModifyOwned(comment.AuthorID, identity) {
		return nil, domain.ErrForbidden
	}

	comment.Body = body
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanModifyOwned(comment.AuthorID, identity) {
		return domain.ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}
