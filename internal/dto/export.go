package dto

import "github.com/noah-isme/refine-admin-api/internal/models"

// ExportRequest captures the POST /:resource/export payload. Query is the
// simple-rest list querystring of the grid being exported.
type ExportRequest struct {
	Format models.ExportFormat `json:"format" validate:"required,oneof=csv pdf"`
	Query  string              `json:"query"`
}

// ExportJobResponse is returned after enqueueing an export.
type ExportJobResponse struct {
	ID     string              `json:"id"`
	Status models.ExportStatus `json:"status"`
}

// ExportStatusResponse exposes job progress metadata.
type ExportStatusResponse struct {
	ID         string              `json:"id"`
	Resource   string              `json:"resource"`
	Format     models.ExportFormat `json:"format"`
	Status     models.ExportStatus `json:"status"`
	ResultURL  *string             `json:"resultUrl,omitempty"`
	Error      *string             `json:"error,omitempty"`
	FinishedAt *string             `json:"finishedAt,omitempty"`
}
