package infrastructure

import (
	"context"

	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/policy"
)

type (
	// BinaryTransformer applies a processing profile to raw bytes. The
	// concrete codec is swappable without touching pipeline logic.
	BinaryTransformer interface {
		Transform(ctx context.Context, data []byte, profile policy.ProcessingProfile) (*dto.TransformResult, error)
	}

	// VirusScanner is a reserved hook. Scan returns a result tag such as
	// "clean", "skipped" or "infected".
	VirusScanner interface {
		Scan(ctx context.Context, data []byte) (string, error)
	}

	// EventPublisher emits asset lifecycle events to interested consumers.
	EventPublisher interface {
		Publish(ctx context.Context, event *entity.AssetEvent) error
		Close() error
	}
)
