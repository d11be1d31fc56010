package handler

import "time"

type createPostRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body"  validate:"required"`
}

// updatePostRequest carries a partial update; absent fields stay unchanged.
type updatePostRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Body  *string `json:"body"  validate:"omitempty,min=1"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// pagedPostsResponse is the envelope for the public listing. The JSON
// contract is owned by the transport layer and intentionally decoupled from
// the domain type.
type pagedPostsResponse struct {
	Data        []postResponse `json:"data"`
	TotalItems  int64          `json:"total_items"`
	TotalPages  int64          `json:"total_pages"`
	CurrentPage int64          `json:"current_page"`
	PageSize    int64          `json:"page_size"`
}

type commentRequest struct {
	Body string `json:"body" validate:"required"`
}

type commentResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
