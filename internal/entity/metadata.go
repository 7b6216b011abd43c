package entity

import "time"

// UploadMetadata is the composed metadata document persisted with every
// catalog record. Sub-records are assembled independently and merged.
type UploadMetadata struct {
	Base       BaseMetadata       `json:"base"`
	Processing ProcessingMetadata `json:"processing"`
	Relation   RelationMetadata   `json:"relation"`
	Security   SecurityMetadata   `json:"security"`
	Audit      AuditMetadata      `json:"audit"`
	Custom     map[string]string  `json:"custom,omitempty"`
}

type BaseMetadata struct {
	OriginalFilename string    `json:"original_filename"`
	Size             int64     `json:"size"`
	ContentType      string    `json:"content_type"`
	UploadedAt       time.Time `json:"uploaded_at"`
	UploadedBy       string    `json:"uploaded_by"`
	SessionID        string    `json:"session_id,omitempty"`
	Checksum         string    `json:"checksum"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ProcessingMetadata struct {
	Profile             string        `json:"profile"`
	OriginalDimensions  Dimensions    `json:"original_dimensions"`
	ProcessedDimensions Dimensions    `json:"processed_dimensions"`
	OriginalSize        int64         `json:"original_size"`
	ProcessedSize       int64         `json:"processed_size"`
	CompressionRatio    float64       `json:"compression_ratio"`
	Duration            time.Duration `json:"duration_ns"`
	Fallback            bool          `json:"fallback,omitempty"`
}

type RelationMetadata struct {
	EntityType EntityType   `json:"entity_type"`
	EntityID   string       `json:"entity_id"`
	Purpose    ImagePurpose `json:"purpose"`
	IsPrimary  bool         `json:"is_primary"`
	Ordering   int          `json:"ordering"`
	AltText    string       `json:"alt_text,omitempty"`
	Caption    string       `json:"caption,omitempty"`
}

type SecurityMetadata struct {
	AccessLevel  AccessLevel `json:"access_level"`
	ScanResult   string      `json:"scan_result"`
	AllowedRoles []string    `json:"allowed_roles,omitempty"`
	ExpiresAt    *time.Time  `json:"expires_at,omitempty"`
}

type AuditMetadata struct {
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
}
