package dto

import (
	"time"

	"github.com/google/uuid"
)

// BatchMetadata is optional client-supplied batch annotation.
type BatchMetadata struct {
	BatchID     string `json:"batch_id,omitempty"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// BatchRequest bundles independent uploads, paired positionally with an
// equal-length file list.
type BatchRequest struct {
	Uploads  []UploadRequest `json:"uploads"`
	Metadata BatchMetadata   `json:"batch_metadata,omitempty"`
}

// BatchItemResult tags a per-item result with its original index.
type BatchItemResult struct {
	UploadResult
	Index int `json:"index"`
}

// BatchSummary aggregates a finished batch.
type BatchSummary struct {
	Total          int           `json:"total"`
	Successful     int           `json:"successful"`
	Failed         int           `json:"failed"`
	TotalSize      int64         `json:"total_size"`
	ProcessingTime time.Duration `json:"-"`

	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// BatchResult reports a whole batch. Success means every item succeeded;
// partial failure keeps Success false and the per-item results intact.
type BatchResult struct {
	Success bool              `json:"success"`
	BatchID uuid.UUID         `json:"batch_id"`
	Results []BatchItemResult `json:"results"`
	Summary BatchSummary      `json:"summary"`
	Errors  []string          `json:"errors,omitempty"`
}
