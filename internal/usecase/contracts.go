package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/policy"
)

type (
	// AssetUploader runs the single-file pipeline: validate, transform,
	// store, assemble metadata, catalog write. Failures come back inside
	// the result, never as an error.
	AssetUploader interface {
		Upload(ctx context.Context, file dto.UploadFile, req dto.UploadRequest, actor dto.Actor) *dto.UploadResult
	}

	// BatchUploader fans a multi-file request out over the single-file
	// pipeline. The returned error covers malformed input only; item
	// failures live in the per-item results.
	BatchUploader interface {
		UploadBatch(ctx context.Context, files []dto.UploadFile, req dto.BatchRequest, actor dto.Actor) (*dto.BatchResult, error)
	}

	// AssetCatalog queries and mutates catalog records.
	AssetCatalog interface {
		Get(ctx context.Context, id uuid.UUID) (*entity.ImageAsset, error)
		List(ctx context.Context, filters dto.ListFilters) ([]entity.ImageAsset, int64, error)
		Update(ctx context.Context, id uuid.UUID, update dto.AssetUpdate, actor dto.Actor) (*entity.ImageAsset, error)
		SoftDelete(ctx context.Context, id uuid.UUID, actor dto.Actor) error
		Restore(ctx context.Context, id uuid.UUID, actor dto.Actor) error
		HardDelete(ctx context.Context, id uuid.UUID, actor dto.Actor) error
		Download(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)
	}

	// ImageTransformer applies a profile best-effort: a codec failure
	// falls back to the original bytes and is reported as a warning.
	ImageTransformer interface {
		Apply(ctx context.Context, data []byte, profile policy.ProcessingProfile) (*dto.TransformResult, []string)
	}
)
