package dto

import "github.com/noah-isme/refine-admin-api/internal/models"

// BackendFilterResponse is the result of translating grid filter state.
// Query holds the same filters encoded as a simple-rest querystring.
type BackendFilterResponse struct {
	Filters []models.CrudFilter `json:"filters"`
	Query   string              `json:"query"`
}

// BackendSortResponse is the result of translating grid sort state.
type BackendSortResponse struct {
	Sorts []models.CrudSort `json:"sorts"`
	Query string            `json:"query"`
}
