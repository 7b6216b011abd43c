// Package transform wraps the binary transform engine with the
// best-effort policy: a codec failure never loses the upload, the
// original bytes are kept and the failure is reported as a warning.
package transform

import (
	"bytes"
	"context"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/infrastructure"
	"github.com/stitchline/asset-service/internal/policy"
	"github.com/stitchline/asset-service/pkg/logger"
)

// content type reported when the original bytes pass through untouched
const defaultContentType = "application/octet-stream"

type UseCase struct {
	engine infrastructure.BinaryTransformer
	logger logger.Interface
}

func New(engine infrastructure.BinaryTransformer, l logger.Interface) *UseCase {
	return &UseCase{engine: engine, logger: l}
}

// Apply runs the profile against the data. The `original` profile skips
// the engine entirely. On engine failure the original buffer is returned
// untransformed with a warning; the caller decides nothing is lost.
func (uc *UseCase) Apply(ctx context.Context, data []byte, profile policy.ProcessingProfile) (*dto.TransformResult, []string) {
	if profile.Name == "" || profile.Name == policy.ProfileOriginal {
		return passthrough(data, false), nil
	}

	result, err := uc.engine.Transform(ctx, data, profile)
	if err != nil {
		uc.logger.Warn("TransformUseCase - Apply - uc.engine.Transform: %v", err)

		warning := fmt.Sprintf("processing failed, original kept: %v", err)
		return passthrough(data, true), []string{warning}
	}

	return result, nil
}

// passthrough returns the input unchanged, extracting dimensions when the
// buffer is a decodable image.
func passthrough(data []byte, fallback bool) *dto.TransformResult {
	var dims entity.Dimensions
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		dims = entity.Dimensions{Width: cfg.Width, Height: cfg.Height}
	}

	return &dto.TransformResult{
		Data:        data,
		ContentType: defaultContentType,
		Original:    dims,
		Processed:   dims,
		Fallback:    fallback,
	}
}
