package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/api/handler"
	"github.com/inkpost/blog-api/internal/api/middleware"
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

type stubPostService struct {
	post  *domain.Post
	paged *domain.PagedPosts
	err   error

	gotIdentity domain.Identity
	gotPage     int64
	gotSize     int64
}

func (s *stubPostService) Create(_ context.Context, identity domain.Identity, title, body string) (*domain.Post, error) {
	s.gotIdentity = identity
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Post{ID: 1, AuthorID: identity.UserID, Title: title, Body: body}, nil
}

func (s *stubPostService) Get(_ context.Context, id int64) (*domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *stubPostService) List(_ context.Context, page, size int64) (*domain.PagedPosts, error) {
	s.gotPage, s.gotSize = page, size
	if s.err != nil {
		return nil, s.err
	}
	return s.paged, nil
}

func (s *stubPostService) Update(_ context.Context, identity domain.Identity, id int64, input ports.UpdatePostInput) (*domain.Post, error) {
	s.gotIdentity = identity
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *stubPostService) Delete(_ context.Context, identity domain.Identity, id int64) error {
	s.gotIdentity = identity
	return s.err
}

func postContext(e *echo.Echo, method, target, body string, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(middleware.IdentityContextKey, *identity)
	}
	return c, rec
}

func TestPostHandler_List(t *testing.T) {
	svc := &stubPostService{paged: &domain.PagedPosts{
		Data:        []domain.Post{{ID: 1, AuthorID: 2, Title: "hello", Body: "world"}},
		TotalItems:  1,
		TotalPages:  1,
		CurrentPage: 1,
		PageSize:    10,
	}}
	h := handler.NewPostHandler(svc)
	e := newAuthTestEcho()

	c, rec := postContext(e, http.MethodGet, "/posts?page=2&size=5", "", nil)
	if err := h.List(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotPage != 2 || svc.gotSize != 5 {
		t.Fatalf("query params not forwarded: page=%d size=%d", svc.gotPage, svc.gotSize)
	}

	var resp struct {
		Data       []json.RawMessage `json:"data"`
		TotalItems int64             `json:"total_items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.TotalItems != 1 {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestPostHandler_Get_NotFound(t *testing.T) {
	svc := &stubPostService{err: domain.ErrPostNotFound}
	h := handler.NewPostHandler(svc)
	e := newAuthTestEcho()

	c, rec := postContext(e, http.MethodGet, "/posts/9", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("9")
	if err := h.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPostHandler_Create(t *testing.T) {
	svc := &stubPostService{}
	h := handler.NewPostHandler(svc)
	e := newAuthTestEcho()

	identity := domain.Identity{UserID: 5, Role: domain.RoleUser}
	c, rec := postContext(e, http.MethodPost, "/posts", `{"title":"hello","body":"first post"}`, &identity)
	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotIdentity.UserID != 5 {
		t.Fatalf("identity not forwarded: %+v", svc.gotIdentity)
	}

	var resp struct {
		AuthorID int64 `json:"author_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AuthorID != 5 {
		t.Fatalf("author should be the authenticated user, got %d", resp.AuthorID)
	}
}

func TestPostHandler_Create_NoIdentity(t *testing.T) {
	svc := &stubPostService{}
	h := handler.NewPostHandler(svc)
	e := newAuthTestEcho()

	c, rec := postContext(e, http.MethodPost, "/posts", `{"title":"hello","body":"first post"}`, nil)
	if err := h.Create(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if svc.gotIdentity.UserID != 0 {
		t.Fatalf("service should not be called without identity")
	}
}

func TestPostHandler_BadPathID(t *testing.T) {
	svc := &stubPostService{}
	h := handler.NewPostHandler(svc)
	e := newAuthTestEcho()

	identity := domain.Identity{UserID: 5, Role: domain.RoleUser}
	c, rec := postContext(e, http.MethodDelete, "/posts/abc", "", &identity)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Delete(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPostHandler_Delete(t *testing.T) {
	svc := &stubPostService{}
	h := handler.NewPostHandler(svc)
	e := newAuthTestEcho()

	identity := domain.Identity{UserID: 5, Role: domain.RoleAdmin}
	c, rec := postContext(e, http.MethodDelete, "/posts/3", "", &identity)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Delete(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.gotIdentity.Role != domain.RoleAdmin {
		t.Fatalf("identity not forwarded: %+v", svc.gotIdentity)
	}
}

func TestPostHandler_Delete_Forbidden(t *testing.T) {
	svc := &stubPostService{err: domain.ErrForbidden}
	h := handler.NewPostHandler(svc)
	e := newAuthTestEcho()

	identity := domain.Identity{UserID: 7, Role: domain.RoleUser}
	c, rec := postContext(e, http.MethodDelete, "/posts/3", "", &identity)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Delete(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
