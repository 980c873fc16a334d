package dto

// CategoryRequest is the create and update payload for categories.
type CategoryRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}
