package dto

import "github.com/noah-isme/refine-admin-api/internal/models"

// CategoryIDRequest references a category by id, the shape the post form submits.
type CategoryIDRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// CreatePostRequest is the POST /posts payload.
type CreatePostRequest struct {
	Title    string            `json:"title" validate:"required,max=255"`
	Content  string            `json:"content" validate:"required"`
	Status   models.PostStatus `json:"status" validate:"omitempty,oneof=published draft rejected"`
	Category CategoryIDRequest `json:"category"`
}

// UpdatePostRequest is the PATCH /posts/:id payload. Nil fields are left unchanged.
type UpdatePostRequest struct {
	Title    *string            `json:"title" validate:"omitempty,min=1,max=255"`
	Content  *string            `json:"content" validate:"omitempty,min=1"`
	Status   *models.PostStatus `json:"status" validate:"omitempty,oneof=published draft rejected"`
	Category *CategoryIDRequest `json:"category"`
}
