package entity

import (
	"time"

	"github.com/google/uuid"
)

// AssetEvent is published after an asset changes state. Delivery is
// best-effort: a publish failure never fails the pipeline step.
type AssetEvent struct {
	ID         uuid.UUID    `json:"id"`
	Type       string       `json:"type"`
	AssetID    uuid.UUID    `json:"asset_id"`
	EntityType EntityType   `json:"entity_type"`
	EntityID   string       `json:"entity_id"`
	Purpose    ImagePurpose `json:"purpose"`
	ActorID    string       `json:"actor_id"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// Event types.
const (
	EventAssetUploaded = "asset.uploaded"
	EventAssetDeleted  = "asset.deleted"
	EventAssetRestored = "asset.restored"
	EventAssetExpired  = "asset.expired"
)
