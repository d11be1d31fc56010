package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

type stubPostRepo struct {
	posts     map[int64]*domain.Post
	nextID    int64
	listCalls int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[int64]*domain.Post), nextID: 1}
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	clone := *post
	clone.ID = r.nextID
	r.nextID++
	r.posts[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id int64) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) List(_ context.Context, limit, offset int64) ([]domain.Post, error) {
	r.listCalls++
	out := make([]domain.Post, 0)
	for id := r.nextID - 1; id >= 1; id-- {
		if p, ok := r.posts[id]; ok {
			out = append(out, *p)
		}
	}
	if offset >= int64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubPostRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.posts)), nil
}

func (r *stubPostRepo) Update(_ context.Context, post *domain.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrPostNotFound
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

// stubPostCache is an in-memory PostListCache with the same versioned
// invalidation behaviour as the Redis implementation.
type stubPostCache struct {
	pages   map[string]*domain.PagedPosts
	version int64
}

func newStubPostCache() *stubPostCache {
	return &stubPostCache{pages: make(map[string]*domain.PagedPosts)}
}

func (c *stubPostCache) key(page, size int64) string {
	return fmt.Sprintf("%d:%d:%d", c.version, page, size)
}

func (c *stubPostCache) GetPage(_ context.Context, page, size int64) (*domain.PagedPosts, error) {
	return c.pages[c.key(page, size)], nil
}

func (c *stubPostCache) StorePage(_ context.Context, page, size int64, posts *domain.PagedPosts) error {
	c.pages[c.key(page, size)] = posts
	return nil
}

func (c *stubPostCache) Invalidate(_ context.Context) error {
	c.version++
	return nil
}

type failingPostCache struct{}

func (failingPostCache) GetPage(context.Context, int64, int64) (*domain.PagedPosts, error) {
	return nil, fmt.Errorf("redis down")
}
func (failingPostCache) StorePage(context.Context, int64, int64, *domain.PagedPosts) error {
	return fmt.Errorf("redis down")
}
func (failingPostCache) Invalidate(context.Context) error {
	return fmt.Errorf("redis down")
}

func newTestPostService() (*PostService, *stubPostRepo, *stubPostCache) {
	repo := newStubPostRepo()
	cache := newStubPostCache()
	return NewPostService(repo, cache, zerolog.Nop()), repo, cache
}

func seedPosts(t *testing.T, svc *PostService, n int, authorID int64) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := svc.Create(context.Background(), domain.Identity{UserID: authorID, Role: domain.RoleUser}, fmt.Sprintf("title %d", i), "body"); err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}
}

func TestPostService_Create(t *testing.T) {
	svc, _, _ := newTestPostService()

	post, err := svc.Create(context.Background(), domain.Identity{UserID: 9, Role: domain.RoleUser}, "hello", "world")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.AuthorID != 9 {
		t.Fatalf("author is the identity, got %d", post.AuthorID)
	}
	if post.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestPostService_List_PaginationAndDefaults(t *testing.T) {
	svc, _, _ := newTestPostService()
	seedPosts(t, svc, 25, 1)

	paged, err := svc.List(context.Background(), 0, 0) // out of range → defaults
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if paged.CurrentPage != 1 || paged.PageSize != 10 {
		t.Fatalf("expected defaults page=1 size=10, got %d/%d", paged.CurrentPage, paged.PageSize)
	}
	if len(paged.Data) != 10 || paged.TotalItems != 25 || paged.TotalPages != 3 {
		t.Fatalf("unexpected page: len=%d total=%d pages=%d", len(paged.Data), paged.TotalItems, paged.TotalPages)
	}

	last, err := svc.List(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("list last page: %v", err)
	}
	if len(last.Data) != 5 {
		t.Fatalf("expected 5 items on last page, got %d", len(last.Data))
	}
}

func TestPostService_List_CacheHit(t *testing.T) {
	svc, repo, _ := newTestPostService()
	seedPosts(t, svc, 3, 1)

	if _, err := svc.List(context.Background(), 1, 10); err != nil {
		t.Fatalf("first list: %v", err)
	}
	calls := repo.listCalls

	if _, err := svc.List(context.Background(), 1, 10); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if repo.listCalls != calls {
		t.Fatalf("second list hit the repository (%d → %d calls)", calls, repo.listCalls)
	}
}

func TestPostService_List_CacheInvalidatedOnMutation(t *testing.T) {
	svc, repo, _ := newTestPostService()
	seedPosts(t, svc, 3, 1)

	if _, err := svc.List(context.Background(), 1, 10); err != nil {
		t.Fatalf("list: %v", err)
	}
	calls := repo.listCalls

	if _, err := svc.Create(context.Background(), domain.Identity{UserID: 1, Role: domain.RoleUser}, "new", "post"); err != nil {
		t.Fatalf("create: %v", err)
	}

	paged, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if repo.listCalls == calls {
		t.Fatalf("expected cache miss after mutation")
	}
	if paged.TotalItems != 4 {
		t.Fatalf("expected 4 items, got %d", paged.TotalItems)
	}
}

func TestPostService_List_CacheFailureFallsThrough(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, failingPostCache{}, zerolog.Nop())
	if _, err := svc.Create(context.Background(), domain.Identity{UserID: 1, Role: domain.RoleUser}, "t", "b"); err != nil {
		t.Fatalf("create: %v", err)
	}

	paged, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list must survive a dead cache: %v", err)
	}
	if paged.TotalItems != 1 {
		t.Fatalf("unexpected total: %d", paged.TotalItems)
	}
}

func TestPostService_Update_OwnerOnly(t *testing.T) {
	svc, _, _ := newTestPostService()
	owner := domain.Identity{UserID: 5, Role: domain.RoleUser}

	post, _ := svc.Create(context.Background(), owner, "orig", "body")

	title := "changed"
	updated, err := svc.Update(context.Background(), owner, post.ID, ports.UpdatePostInput{Title: &title})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "changed" || updated.Body != "body" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	// Non-owner gets 404 semantics, not 403, so existence is not leaked.
	other := domain.Identity{UserID: 6, Role: domain.RoleUser}
	if _, err := svc.Update(context.Background(), other, post.ID, ports.UpdatePostInput{Title: &title}); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound for non-owner, got %v", err)
	}

	// No admin override on updates.
	admin := domain.Identity{UserID: 7, Role: domain.RoleAdmin}
	if _, err := svc.Update(context.Background(), admin, post.ID, ports.UpdatePostInput{Title: &title}); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound for admin non-owner, got %v", err)
	}
}

func TestPostService_Delete_OwnerOrAdmin(t *testing.T) {
	svc, _, _ := newTestPostService()
	owner := domain.Identity{UserID: 5, Role: domain.RoleUser}

	post, _ := svc.Create(context.Background(), owner, "a", "b")
	if err := svc.Delete(context.Background(), domain.Identity{UserID: 6, Role: domain.RoleUser}, post.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, post.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	post, _ = svc.Create(context.Background(), owner, "c", "d")
	if err := svc.Delete(context.Background(), domain.Identity{UserID: 99, Role: domain.RoleAdmin}, post.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestPostService_Delete_Missing(t *testing.T) {
	svc, _, _ := newTestPostService()
	if err := svc.Delete(context.Background(), domain.Identity{UserID: 1, Role: domain.RoleAdmin}, 42); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
