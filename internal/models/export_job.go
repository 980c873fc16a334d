package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ExportFormat enumerates supported export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob is a persisted grid export request.
type ExportJob struct {
	ID           string       `db:"id" json:"id"`
	Resource     string       `db:"resource" json:"resource"`
	Format       ExportFormat `db:"format" json:"format"`
	Query        ListQuery    `db:"query" json:"query"`
	Status       ExportStatus `db:"status" json:"status"`
	ResultURL    *string      `db:"result_url" json:"result_url,omitempty"`
	ErrorMessage *string      `db:"error_message" json:"error_message,omitempty"`
	CreatedBy    string       `db:"created_by" json:"created_by"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	FinishedAt   *time.Time   `db:"finished_at" json:"finished_at,omitempty"`
}

// Value marshals the list query to JSON for persistence.
func (q ListQuery) Value() (driver.Value, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal list query: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSONB payloads into the list query.
func (q *ListQuery) Scan(value interface{}) error {
	if value == nil {
		*q = ListQuery{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ListQuery", value)
	}
	if len(data) == 0 {
		*q = ListQuery{}
		return nil
	}
	if err := json.Unmarshal(data, q); err != nil {
		return fmt.Errorf("unmarshal list query: %w", err)
	}
	return nil
}
