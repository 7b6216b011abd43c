package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/policy"
)

// AssembleMetadata merges the base, processing, entity-relation, security
// and audit sub-records into one metadata document.
func AssembleMetadata(
	file dto.UploadFile,
	req dto.UploadRequest,
	actor dto.Actor,
	transformed *dto.TransformResult,
	pol policy.StoragePolicy,
	profileName string,
	scanResult string,
	now time.Time,
) entity.UploadMetadata {
	checksum := sha256.Sum256(file.Data)

	meta := entity.UploadMetadata{
		Base: entity.BaseMetadata{
			OriginalFilename: file.Filename,
			Size:             int64(len(file.Data)),
			ContentType:      file.ContentType,
			UploadedAt:       now,
			UploadedBy:       actor.UserID,
			SessionID:        actor.SessionID,
			Checksum:         hex.EncodeToString(checksum[:]),
		},
		Processing: entity.ProcessingMetadata{
			Profile:             profileName,
			OriginalDimensions:  transformed.Original,
			ProcessedDimensions: transformed.Processed,
			OriginalSize:        int64(len(file.Data)),
			ProcessedSize:       int64(len(transformed.Data)),
			CompressionRatio:    compressionRatio(len(file.Data), len(transformed.Data)),
			Duration:            transformed.Duration,
			Fallback:            transformed.Fallback,
		},
		Relation: entity.RelationMetadata{
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
			Purpose:    req.Purpose,
			IsPrimary:  req.IsPrimary,
			Ordering:   req.Ordering,
			AltText:    req.AltText,
			Caption:    req.Caption,
		},
		Security: entity.SecurityMetadata{
			AccessLevel:  req.AccessLevel,
			AllowedRoles: req.AllowedRoles,
			ScanResult:   scanResult,
		},
		Audit: entity.AuditMetadata{
			ClientIP:  actor.ClientIP,
			UserAgent: actor.UserAgent,
			TraceID:   actor.TraceID,
		},
		Custom: req.Custom,
	}

	if pol.RetentionDays > 0 {
		expires := now.AddDate(0, 0, pol.RetentionDays)
		meta.Security.ExpiresAt = &expires
	}

	return meta
}

func compressionRatio(originalSize, processedSize int) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(processedSize) / float64(originalSize)
}
