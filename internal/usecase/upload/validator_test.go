package upload

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchline/asset-service/internal/policy"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

func testPolicy() policy.StoragePolicy {
	return policy.StoragePolicy{
		Bucket:       "test-bucket",
		PathTemplate: policy.DefaultPathTemplate,
		MaxSize:      1024,
		AllowedTypes: []string{"image/jpeg", "image/png", "application/pdf"},
	}
}

// jpegBytes builds a buffer that starts with the JPEG magic bytes and is
// large enough to pass the plausibility floor.
func jpegBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	return data
}

func TestValidateFileAccepts(t *testing.T) {
	v := ValidateFile(jpegBytes(512), "photo.jpg", "image/jpeg", testPolicy(), false)

	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
	assert.Empty(t, v.Code)
}

func TestValidateFileIsDeterministic(t *testing.T) {
	data := jpegBytes(512)
	first := ValidateFile(data, "photo.jpg", "image/jpeg", testPolicy(), false)
	second := ValidateFile(data, "photo.jpg", "image/jpeg", testPolicy(), false)

	assert.Equal(t, first, second)
}

func TestValidateFileSizeBoundary(t *testing.T) {
	pol := testPolicy()

	t.Run("exactly at limit", func(t *testing.T) {
		v := ValidateFile(jpegBytes(int(pol.MaxSize)), "photo.jpg", "image/jpeg", pol, false)
		assert.True(t, v.Valid)
	})

	t.Run("one byte over", func(t *testing.T) {
		v := ValidateFile(jpegBytes(int(pol.MaxSize)+1), "photo.jpg", "image/jpeg", pol, false)
		require.False(t, v.Valid)
		assert.Equal(t, errs.CodeFileTooLarge, v.Code)
	})
}

func TestValidateFileEmpty(t *testing.T) {
	v := ValidateFile(nil, "photo.jpg", "image/jpeg", testPolicy(), false)

	require.False(t, v.Valid)
	assert.Equal(t, errs.CodeValidationFailed, v.Code)
}

func TestValidateFileContentType(t *testing.T) {
	v := ValidateFile(jpegBytes(512), "clip.mp4", "video/mp4", testPolicy(), false)

	require.False(t, v.Valid)
	assert.Equal(t, errs.CodeInvalidFileType, v.Code)
}

func TestValidateFileDeniedExtension(t *testing.T) {
	for _, name := range []string{"payload.exe", "script.sh", "run.BAT", "tool.Jar"} {
		v := ValidateFile(jpegBytes(512), name, "image/jpeg", testPolicy(), false)

		require.False(t, v.Valid, "filename %s", name)
		assert.Equal(t, errs.CodeValidationFailed, v.Code, "filename %s", name)
	}
}

func TestValidateFileEmptyFilename(t *testing.T) {
	v := ValidateFile(jpegBytes(512), "   ", "image/jpeg", testPolicy(), false)

	require.False(t, v.Valid)
	assert.Equal(t, errs.CodeValidationFailed, v.Code)
}

func TestValidateFileSignatureMismatch(t *testing.T) {
	// PNG magic bytes under a jpeg declaration
	data := make([]byte, 512)
	copy(data, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})

	t.Run("lenient mode warns", func(t *testing.T) {
		v := ValidateFile(data, "photo.jpg", "image/jpeg", testPolicy(), false)

		assert.True(t, v.Valid)
		assert.NotEmpty(t, v.Warnings)
	})

	t.Run("strict mode rejects", func(t *testing.T) {
		v := ValidateFile(data, "photo.jpg", "image/jpeg", testPolicy(), true)

		require.False(t, v.Valid)
		assert.Equal(t, errs.CodeInvalidFileType, v.Code)
	})
}

func TestValidateFileImplausiblySmallImage(t *testing.T) {
	// correct magic bytes but far below any real image size
	v := ValidateFile(jpegBytes(50), "photo.jpg", "image/jpeg", testPolicy(), false)

	require.False(t, v.Valid)
	assert.Equal(t, errs.CodeValidationFailed, v.Code)
}

func TestValidateFilePDFSkipsImagePlausibilityFloor(t *testing.T) {
	data := append([]byte("%PDF-1.7"), bytes.Repeat([]byte{0x20}, 8)...)

	v := ValidateFile(data, "invoice.pdf", "application/pdf", testPolicy(), false)

	assert.True(t, v.Valid)
}

func TestValidateFileFirstFailureSetsCode(t *testing.T) {
	// oversized and wrong type: the size check runs first and wins the code
	pol := testPolicy()
	v := ValidateFile(make([]byte, int(pol.MaxSize)+1), "clip.mp4", "video/mp4", pol, false)

	require.False(t, v.Valid)
	assert.Equal(t, errs.CodeFileTooLarge, v.Code)
	assert.Len(t, v.Errors, 2)
}
