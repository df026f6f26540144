package models

import "time"

// Post represents a blog post. Author is the owning user's username,
// populated by the join on read paths.
type Post struct {
	ID          string    `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Author      string    `json:"author,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

// UpdatePostRequest represents the request body for updating a post.
// The author and creation time of a post never change.
type UpdatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
}
