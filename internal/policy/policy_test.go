package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

func TestRegistryCoversEveryEntityType(t *testing.T) {
	reg := NewRegistry()

	for _, et := range entity.EntityTypes() {
		pol, err := reg.ForEntity(et)
		require.NoError(t, err, "entity type %s", et)

		assert.NotEmpty(t, pol.Bucket, "entity type %s", et)
		assert.NotEmpty(t, pol.PathTemplate, "entity type %s", et)
		assert.Positive(t, pol.MaxSize, "entity type %s", et)
		assert.NotEmpty(t, pol.AllowedTypes, "entity type %s", et)
	}
}

func TestRegistryUnknownEntity(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.ForEntity("spaceship")
	require.ErrorIs(t, err, errs.ErrUnknownEntity)
}

func TestAllowsType(t *testing.T) {
	pol := StoragePolicy{AllowedTypes: []string{"image/jpeg", "image/png"}}

	assert.True(t, pol.AllowsType("image/jpeg"))
	assert.True(t, pol.AllowsType(" IMAGE/PNG "))
	assert.False(t, pol.AllowsType("application/pdf"))
	assert.False(t, pol.AllowsType(""))
}

func TestOrderPolicyAllowsPDF(t *testing.T) {
	reg := NewRegistry()

	pol, err := reg.ForEntity(entity.EntityOrder)
	require.NoError(t, err)

	assert.True(t, pol.AllowsType("application/pdf"))
	assert.Positive(t, pol.RetentionDays)
}

func TestProfileCatalogResolve(t *testing.T) {
	catalog := NewProfileCatalog()

	t.Run("empty name falls back to default", func(t *testing.T) {
		p, err := catalog.Resolve("")
		require.NoError(t, err)
		assert.Equal(t, DefaultProfile, p.Name)
	})

	t.Run("original is a no-op preset", func(t *testing.T) {
		p, err := catalog.Resolve(ProfileOriginal)
		require.NoError(t, err)
		assert.Zero(t, p.Width)
		assert.Zero(t, p.Height)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := catalog.Resolve("daguerreotype")
		require.ErrorIs(t, err, errs.ErrUnknownProfile)
	})
}

func TestProfileContentType(t *testing.T) {
	assert.Equal(t, "image/png", ProcessingProfile{Format: FormatPNG}.ContentType())
	assert.Equal(t, "image/gif", ProcessingProfile{Format: FormatGIF}.ContentType())
	assert.Equal(t, "image/jpeg", ProcessingProfile{Format: FormatJPEG}.ContentType())
	assert.Equal(t, "image/jpeg", ProcessingProfile{}.ContentType())
}
