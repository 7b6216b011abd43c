package processor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/policy"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestTransformFitInside(t *testing.T) {
	tr := New()

	res, err := tr.Transform(context.Background(), testJPEG(t, 3000, 2000), policy.ProcessingProfile{
		Name: "gallery", Width: 1200, Height: 1200, Quality: 85, Format: policy.FormatJPEG, Fit: policy.FitInside,
	})
	require.NoError(t, err)

	assert.Equal(t, 3000, res.Original.Width)
	assert.Equal(t, 2000, res.Original.Height)
	assert.LessOrEqual(t, res.Processed.Width, 1200)
	assert.LessOrEqual(t, res.Processed.Height, 1200)
	assert.Equal(t, "image/jpeg", res.ContentType)
	assert.NotEmpty(t, res.Data)

	// aspect ratio survives the fit
	assert.Equal(t, 1200, res.Processed.Width)
	assert.Equal(t, 800, res.Processed.Height)
}

func TestTransformNeverUpscales(t *testing.T) {
	tr := New()

	res, err := tr.Transform(context.Background(), testJPEG(t, 400, 300), policy.ProcessingProfile{
		Name: "gallery", Width: 1200, Height: 1200, Quality: 85, Fit: policy.FitInside,
	})
	require.NoError(t, err)

	assert.Equal(t, 400, res.Processed.Width)
	assert.Equal(t, 300, res.Processed.Height)
}

func TestTransformFitCoverCropsToBox(t *testing.T) {
	tr := New()

	res, err := tr.Transform(context.Background(), testJPEG(t, 1000, 600), policy.ProcessingProfile{
		Name: "thumbnail", Width: 300, Height: 300, Quality: 80, Fit: policy.FitCover,
	})
	require.NoError(t, err)

	assert.Equal(t, 300, res.Processed.Width)
	assert.Equal(t, 300, res.Processed.Height)
}

func TestTransformPNGOutput(t *testing.T) {
	tr := New()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 900, 900))))

	res, err := tr.Transform(context.Background(), buf.Bytes(), policy.ProcessingProfile{
		Name: "logo", Width: 800, Height: 800, Format: policy.FormatPNG, Fit: policy.FitInside,
	})
	require.NoError(t, err)

	assert.Equal(t, "image/png", res.ContentType)
	assert.True(t, bytes.HasPrefix(res.Data, []byte{0x89, 0x50, 0x4E, 0x47}), "output must be a PNG")
	assert.Equal(t, 800, res.Processed.Width)
}

func TestTransformGarbageInput(t *testing.T) {
	tr := New()

	_, err := tr.Transform(context.Background(), []byte("not an image at all"), policy.ProcessingProfile{
		Name: "gallery", Width: 1200, Height: 1200,
	})
	require.Error(t, err)
}

func TestClampTarget(t *testing.T) {
	w, h := clampTarget(entity.Dimensions{Width: 500, Height: 400}, 1200, 1200)
	assert.Equal(t, 500, w)
	assert.Equal(t, 400, h)

	// zero axis falls back to the original extent
	w, h = clampTarget(entity.Dimensions{Width: 5000, Height: 4000}, 1200, 0)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 4000, h)
}
