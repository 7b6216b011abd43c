package repo

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
)

type (
	// ObjectStore writes, reads and removes byte blobs in the external
	// object storage. Upload returns the durable public URL.
	ObjectStore interface {
		Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
		Download(ctx context.Context, bucket, key string) (io.ReadCloser, error)
		Delete(ctx context.Context, bucket, key string) error
		PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	}

	// AssetCatalogRepo persists catalog records describing stored assets.
	AssetCatalogRepo interface {
		Create(ctx context.Context, asset *entity.ImageAsset) error
		GetByID(ctx context.Context, id uuid.UUID) (*entity.ImageAsset, error)
		List(ctx context.Context, filters dto.ListFilters) ([]entity.ImageAsset, int64, error)
		Update(ctx context.Context, asset *entity.ImageAsset) error
		SetStatus(ctx context.Context, id uuid.UUID, status entity.AssetStatus) error
		SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
		Restore(ctx context.Context, id uuid.UUID) error
		HardDelete(ctx context.Context, id uuid.UUID) error
		ListExpired(ctx context.Context, entityType entity.EntityType, cutoff time.Time, limit int) ([]entity.ImageAsset, error)
	}

	// AuditRepo records who changed what.
	AuditRepo interface {
		Record(ctx context.Context, rec *entity.AuditRecord) error
	}

	// EntityResolver checks that the business entity an upload targets
	// actually exists. The record store behind it is external.
	EntityResolver interface {
		Exists(ctx context.Context, entityType entity.EntityType, entityID string) (bool, error)
	}

	// Transactor runs a function inside one database transaction.
	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
