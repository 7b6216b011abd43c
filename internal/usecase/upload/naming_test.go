package upload

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/policy"
)

func TestGenerateFilenameShape(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	name, err := GenerateFilename("My Photo.JPG", "thumbnail", now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^20250314_[0-9a-f]{16}_thumbnail\.jpg$`), name)
}

func TestGenerateFilenameOriginalProfileHasNoSuffix(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	name, err := GenerateFilename("scan.png", policy.ProfileOriginal, now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^20250314_[0-9a-f]{16}\.png$`), name)
}

func TestGenerateFilenameNoExtension(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	name, err := GenerateFilename("README", "", now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^20250314_[0-9a-f]{16}$`), name)
}

func TestGenerateFilenameConcurrentUniqueness(t *testing.T) {
	const n = 50

	now := time.Now()

	var mu sync.Mutex
	seen := make(map[string]struct{}, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			name, err := GenerateFilename("same.jpg", "gallery", now)
			assert.NoError(t, err)

			mu.Lock()
			seen[name] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n, "identical inputs must still yield unique names")
}

func TestBuildStoragePath(t *testing.T) {
	got := BuildStoragePath(
		policy.DefaultPathTemplate,
		entity.EntityCatalogItem,
		"item-42",
		entity.PurposeGallery,
		"20250314_aabbccdd00112233_gallery.jpg",
	)

	assert.Equal(t, "catalog_items/item-42/gallery/20250314_aabbccdd00112233_gallery.jpg", got)
}

func TestBuildStoragePathCustomTemplate(t *testing.T) {
	got := BuildStoragePath(
		"{entity_type}/{entity_id}/{filename}",
		entity.EntityOrder,
		"ord-7",
		entity.PurposeAttachment,
		"f.pdf",
	)

	assert.Equal(t, "order/ord-7/f.pdf", got)
}
