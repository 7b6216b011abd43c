package dto

import "github.com/stitchline/asset-service/internal/entity"

// ListFilters narrows and pages a catalog listing.
//
// Deleted semantics: false selects only live rows, true selects only
// soft-deleted rows, nil selects both.
type ListFilters struct {
	UploadedBy  string
	EntityType  entity.EntityType
	EntityID    string
	Purpose     entity.ImagePurpose
	AccessLevel entity.AccessLevel
	Status      entity.AssetStatus
	Deleted     *bool

	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// DefaultPageSize bounds a listing when the caller does not.
const DefaultPageSize = 50

// AssetUpdate is a partial catalog-record update. Nil fields are left
// untouched.
type AssetUpdate struct {
	AltText     *string             `json:"alt_text,omitempty"`
	Caption     *string             `json:"caption,omitempty"`
	IsPrimary   *bool               `json:"is_primary,omitempty"`
	AccessLevel *entity.AccessLevel `json:"access_level,omitempty"`
	Custom      map[string]string   `json:"custom_metadata,omitempty"`
}
