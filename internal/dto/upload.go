package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

// UploadFile is the raw file part of an upload, already read into memory.
type UploadFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// UploadRequest describes where an uploaded file belongs and how to
// process it.
type UploadRequest struct {
	EntityType      entity.EntityType   `json:"entity_type"`
	EntityID        string              `json:"entity_id"`
	Purpose         entity.ImagePurpose `json:"image_purpose"`
	Profile         string              `json:"processing_profile,omitempty"`
	AltText         string              `json:"alt_text,omitempty"`
	Caption         string              `json:"caption,omitempty"`
	IsPrimary       bool                `json:"is_primary,omitempty"`
	Ordering        int                 `json:"ordering,omitempty"`
	AccessLevel     entity.AccessLevel  `json:"access_level,omitempty"`
	AllowedRoles    []string            `json:"allowed_roles,omitempty"`
	SkipEntityCheck bool                `json:"skip_entity_check,omitempty"`
	Custom          map[string]string   `json:"custom_metadata,omitempty"`
}

// Actor identifies who is performing the operation and from where.
type Actor struct {
	UserID    string
	SessionID string
	ClientIP  string
	UserAgent string
	TraceID   string
}

// ProcessingResults reports the transform outcome of a single upload.
type ProcessingResults struct {
	Profile       string            `json:"profile"`
	OriginalSize  int64             `json:"original_size"`
	ProcessedSize int64             `json:"processed_size"`
	Dimensions    entity.Dimensions `json:"dimensions"`
}

// UploadResult is the structured outcome of a single-file upload. Failures
// are reported here, never as a bare error to the caller.
type UploadResult struct {
	Success     bool                   `json:"success"`
	AssetID     uuid.UUID              `json:"image_asset_id,omitempty"`
	PublicURL   string                 `json:"public_url,omitempty"`
	SecureURL   string                 `json:"secure_url,omitempty"`
	StoragePath string                 `json:"storage_path,omitempty"`
	Processing  *ProcessingResults     `json:"processing_results,omitempty"`
	Metadata    *entity.UploadMetadata `json:"metadata,omitempty"`
	Warnings    []string               `json:"warnings,omitempty"`
	Error       string                 `json:"error,omitempty"`
	ErrorCode   errs.Code              `json:"error_code,omitempty"`
}

// Failure builds a failed result with the given code and message.
func Failure(code errs.Code, message string) *UploadResult {
	return &UploadResult{Error: message, ErrorCode: code}
}

// Verdict is the File Validator output.
type Verdict struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Code     errs.Code
}

// TransformResult is the Binary Transform Engine output.
type TransformResult struct {
	Data        []byte
	ContentType string
	Original    entity.Dimensions
	Processed   entity.Dimensions
	Duration    time.Duration
	Fallback    bool
}
