package entity

import (
	"time"

	"github.com/google/uuid"
)

// AssetStatus tracks the multi-step write sequence. A row is created
// pending before the storage write, then moved to active or failed, so a
// crash between the two writes is inspectable instead of silently partial.
type AssetStatus string

const (
	StatusPending AssetStatus = "pending"
	StatusActive  AssetStatus = "active"
	StatusFailed  AssetStatus = "failed"
)

// ImageAsset is the catalog record describing one stored object.
// One row maps to exactly one object, never shared.
type ImageAsset struct {
	ID uuid.UUID `json:"id"`

	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	Size             int64  `json:"size"`
	ContentType      string `json:"content_type"`

	Bucket      string `json:"bucket"`
	StoragePath string `json:"storage_path"`
	PublicURL   string `json:"public_url"`

	EntityType EntityType   `json:"entity_type"`
	EntityID   string       `json:"entity_id"`
	Purpose    ImagePurpose `json:"purpose"`

	Status      AssetStatus    `json:"status"`
	AccessLevel AccessLevel    `json:"access_level"`
	Metadata    UploadMetadata `json:"metadata"`

	UploadedBy string     `json:"uploaded_by"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Active reports whether the asset is live: finalized and not soft-deleted.
func (a *ImageAsset) Active() bool {
	return a.Status == StatusActive && a.DeletedAt == nil
}

// AuditRecord captures who changed what, for both single and batch paths.
type AuditRecord struct {
	ID         uuid.UUID  `json:"id"`
	ActorID    string     `json:"actor_id"`
	Action     string     `json:"action"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	AssetID    uuid.UUID  `json:"asset_id"`
	Outcome    string     `json:"outcome"`
	Detail     string     `json:"detail,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Audit actions.
const (
	ActionUpload     = "asset.upload"
	ActionUpdate     = "asset.update"
	ActionSoftDelete = "asset.soft_delete"
	ActionRestore    = "asset.restore"
	ActionHardDelete = "asset.hard_delete"
	ActionExpire     = "asset.expire"
)

// Audit outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
