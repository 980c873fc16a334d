package models

import "time"

// PostStatus enumerates the editorial states of a post.
type PostStatus string

const (
	PostStatusPublished PostStatus = "published"
	PostStatusDraft     PostStatus = "draft"
	PostStatusRejected  PostStatus = "rejected"
)

// CategoryRef is the nested category object rendered in the posts grid.
type CategoryRef struct {
	ID    int64  `db:"id" json:"id"`
	Title string `db:"title" json:"title,omitempty"`
}

// Post is a blog post managed from the dashboard.
type Post struct {
	ID        int64       `db:"id" json:"id"`
	Title     string      `db:"title" json:"title"`
	Content   string      `db:"content" json:"content"`
	Status    PostStatus  `db:"status" json:"status"`
	Category  CategoryRef `db:"category" json:"category"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}
