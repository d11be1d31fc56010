package domain

import "time"

// Post is a blog entry. AuthorID is set at creation and never reassigned.
type Post struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment belongs to a post. Deleting the post removes its comments
// (enforced by the database cascade, not application code).
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// PagedPosts is the envelope for paginated post listings.
type PagedPosts struct {
	Data        []Post `json:"data"`
	TotalItems  int64  `json:"total_items"`
	TotalPages  int64  `json:"total_pages"`
	CurrentPage int64  `json:"current_page"`
	PageSize    int64  `json:"page_size"`
}
