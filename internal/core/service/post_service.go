package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// PostService implements post CRUD with ownership enforcement and a
// read-through cache on the public listing.
type PostService struct {
	repo   ports.PostRepository
	cache  ports.PostListCache
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, cache ports.PostListCache, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, cache: cache, logger: logger}
}

func (s *PostService) Create(ctx context.Context, identity domain.Identity, title, body string) (*domain.Post, error) {
	post := &domain.Post{
		AuthorID:  identity.UserID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("post_id", created.ID).Int64("author_id", identity.UserID).Msg("post created")
	s.invalidateListCache(ctx)
	return created, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of posts, newest first. Page and size fall back to
// defaults when out of range. Cache failures degrade to the database.
func (s *PostService) List(ctx context.Context, page, size int64) (*domain.PagedPosts, error) {
	if page < 1 {
		page = defaultPage
	}
	if size < 1 {
		size = defaultPageSize
	}

	if cached, err := s.cache.GetPage(ctx, page, size); err != nil {
		s.logger.Warn().Err(err).Msg("post list cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	posts, err := s.repo.List(ctx, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	paged := &domain.PagedPosts{
		Data:        posts,
		TotalItems:  total,
		TotalPages:  (total + size - 1) / size,
		CurrentPage: page,
		PageSize:    size,
	}

	if err := s.cache.StorePage(ctx, page, size, paged); err != nil {
		s.logger.Warn().Err(err).Msg("post list cache write failed")
	}
	return paged, nil
}

// Update applies a partial update. A post that is absent or not owned by the
// identity reports ErrPostNotFound either way, so existence is not leaked.
func (s *PostService) Update(ctx context.Context, identity domain.Identity, id int64, input ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanModifyOwned(post.AuthorID, identity) {
		return nil, domain.ErrPostNotFound
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Body != nil {
		post.Body = *input.Body
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return post, nil
}

// Delete removes a post. The owner may delete their own post; an admin may
// delete anyone's. Comments go with it via the database cascade.
func (s *PostService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanDeletePost(post.AuthorID, identity) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("post_id", id).Int64("user_id", identity.UserID).Msg("post deleted")
	s.invalidateListCache(ctx)
	return nil
}

func (s *PostService) invalidateListCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("post list cache invalidation failed")
	}
}
