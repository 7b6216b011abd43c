package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/infrastructure/scanner"
	"github.com/stitchline/asset-service/internal/policy"
)

func TestAssembleMetadata(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	file := dto.UploadFile{
		Data:        []byte("original-bytes-original-bytes"),
		Filename:    "design.png",
		ContentType: "image/png",
	}
	req := dto.UploadRequest{
		EntityType:   entity.EntityDesignTask,
		EntityID:     "task-9",
		Purpose:      entity.PurposeDesign,
		AccessLevel:  entity.AccessRestricted,
		AllowedRoles: []string{"designer", "production_manager"},
		AltText:      "front print",
		IsPrimary:    true,
		Ordering:     2,
		Custom:       map[string]string{"colorway": "navy"},
	}
	actor := dto.Actor{
		UserID:    "user-1",
		SessionID: "sess-1",
		ClientIP:  "10.0.0.5",
		UserAgent: "curl/8",
		TraceID:   "trace-xyz",
	}
	transformed := &dto.TransformResult{
		Data:      []byte("smaller"),
		Original:  entity.Dimensions{Width: 3000, Height: 2000},
		Processed: entity.Dimensions{Width: 1200, Height: 800},
		Duration:  42 * time.Millisecond,
	}
	pol := policy.StoragePolicy{RetentionDays: 365}

	meta := AssembleMetadata(file, req, actor, transformed, pol, "gallery", scanner.ResultSkipped, now)

	sum := sha256.Sum256(file.Data)
	assert.Equal(t, hex.EncodeToString(sum[:]), meta.Base.Checksum)
	assert.Equal(t, "design.png", meta.Base.OriginalFilename)
	assert.Equal(t, int64(len(file.Data)), meta.Base.Size)
	assert.Equal(t, "user-1", meta.Base.UploadedBy)
	assert.Equal(t, now, meta.Base.UploadedAt)

	assert.Equal(t, "gallery", meta.Processing.Profile)
	assert.Equal(t, transformed.Original, meta.Processing.OriginalDimensions)
	assert.Equal(t, transformed.Processed, meta.Processing.ProcessedDimensions)
	assert.InDelta(t, float64(len(transformed.Data))/float64(len(file.Data)), meta.Processing.CompressionRatio, 1e-9)

	assert.Equal(t, entity.EntityDesignTask, meta.Relation.EntityType)
	assert.True(t, meta.Relation.IsPrimary)
	assert.Equal(t, 2, meta.Relation.Ordering)
	assert.Equal(t, "front print", meta.Relation.AltText)

	assert.Equal(t, entity.AccessRestricted, meta.Security.AccessLevel)
	assert.Equal(t, []string{"designer", "production_manager"}, meta.Security.AllowedRoles)
	assert.Equal(t, scanner.ResultSkipped, meta.Security.ScanResult)
	if assert.NotNil(t, meta.Security.ExpiresAt) {
		assert.Equal(t, now.AddDate(0, 0, 365), *meta.Security.ExpiresAt)
	}

	assert.Equal(t, "10.0.0.5", meta.Audit.ClientIP)
	assert.Equal(t, "trace-xyz", meta.Audit.TraceID)
	assert.Equal(t, "navy", meta.Custom["colorway"])
}

func TestAssembleMetadataNoRetention(t *testing.T) {
	meta := AssembleMetadata(
		dto.UploadFile{Data: []byte("x")},
		dto.UploadRequest{},
		dto.Actor{},
		&dto.TransformResult{Data: []byte("x")},
		policy.StoragePolicy{},
		"original",
		scanner.ResultClean,
		time.Now(),
	)

	assert.Nil(t, meta.Security.ExpiresAt)
}

func TestCompressionRatioZeroOriginal(t *testing.T) {
	assert.Zero(t, compressionRatio(0, 10))
}
