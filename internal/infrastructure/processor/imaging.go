package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/policy"
)

// Transformer resizes and re-encodes images according to a processing
// profile. It never upscales beyond the original resolution.
type Transformer struct {
}

func New() *Transformer {
	return &Transformer{}
}

func (t *Transformer) Transform(ctx context.Context, data []byte, profile policy.ProcessingProfile) (*dto.TransformResult, error) {
	start := time.Now()

	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("Transformer - Transform - decodeImage: %w", err)
	}

	bounds := img.Bounds()
	original := entity.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}

	width, height := clampTarget(original, profile.Width, profile.Height)

	var out image.Image
	switch profile.Fit {
	case policy.FitCover:
		out = imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	case policy.FitContain, policy.FitInside:
		out = imaging.Fit(img, width, height, imaging.Lanczos)
	default:
		out = imaging.Fit(img, width, height, imaging.Lanczos)
	}

	encoded, err := encodeImage(out, profile)
	if err != nil {
		return nil, fmt.Errorf("Transformer - Transform - encodeImage: %w", err)
	}

	outBounds := out.Bounds()

	return &dto.TransformResult{
		Data:        encoded,
		ContentType: profile.ContentType(),
		Original:    original,
		Processed:   entity.Dimensions{Width: outBounds.Dx(), Height: outBounds.Dy()},
		Duration:    time.Since(start),
	}, nil
}

// clampTarget shrinks the target box so the image is never upscaled.
// A zero axis falls back to the original extent.
func clampTarget(original entity.Dimensions, width, height int) (int, int) {
	if width <= 0 || width > original.Width {
		width = original.Width
	}
	if height <= 0 || height > original.Height {
		height = original.Height
	}
	return width, height
}

func decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imaging.Decode: %w", err)
	}

	return img, nil
}

func encodeImage(img image.Image, profile policy.ProcessingProfile) ([]byte, error) {
	var buf bytes.Buffer
	var format imaging.Format
	var opts []imaging.EncodeOption

	switch profile.Format {
	case policy.FormatPNG:
		format = imaging.PNG
	case policy.FormatGIF:
		format = imaging.GIF
	default:
		format = imaging.JPEG
		quality := profile.Quality
		if quality <= 0 || quality > 100 {
			quality = 85
		}
		opts = append(opts, imaging.JPEGQuality(quality))
	}

	err := imaging.Encode(&buf, img, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}
