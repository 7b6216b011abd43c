// Package upload implements the single-file pipeline: validate against
// the entity's storage policy, transform, write to object storage,
// assemble metadata and record the catalog row.
package upload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/infrastructure"
	"github.com/stitchline/asset-service/internal/infrastructure/scanner"
	"github.com/stitchline/asset-service/internal/policy"
	"github.com/stitchline/asset-service/internal/repo"
	"github.com/stitchline/asset-service/internal/usecase"
	"github.com/stitchline/asset-service/pkg/logger"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

type UseCase struct {
	store       repo.ObjectStore
	catalog     repo.AssetCatalogRepo
	audit       repo.AuditRepo
	resolver    repo.EntityResolver
	transactor  repo.Transactor
	transformer usecase.ImageTransformer
	scanner     infrastructure.VirusScanner
	events      infrastructure.EventPublisher

	policies *policy.Registry
	profiles *policy.ProfileCatalog

	strictSignature bool
	presignTTL      time.Duration

	logger logger.Interface
}

func New(
	store repo.ObjectStore,
	catalog repo.AssetCatalogRepo,
	audit repo.AuditRepo,
	resolver repo.EntityResolver,
	transactor repo.Transactor,
	transformer usecase.ImageTransformer,
	virusScanner infrastructure.VirusScanner,
	events infrastructure.EventPublisher,
	policies *policy.Registry,
	profiles *policy.ProfileCatalog,
	strictSignature bool,
	presignTTL time.Duration,
	l logger.Interface,
) *UseCase {
	return &UseCase{
		store:           store,
		catalog:         catalog,
		audit:           audit,
		resolver:        resolver,
		transactor:      transactor,
		transformer:     transformer,
		scanner:         virusScanner,
		events:          events,
		policies:        policies,
		profiles:        profiles,
		strictSignature: strictSignature,
		presignTTL:      presignTTL,
		logger:          l,
	}
}

// Upload runs the whole pipeline for one file. Every failure comes back
// as a structured result; the method never returns an error.
func (uc *UseCase) Upload(ctx context.Context, file dto.UploadFile, req dto.UploadRequest, actor dto.Actor) *dto.UploadResult {
	if req.AccessLevel == "" {
		req.AccessLevel = entity.AccessPrivate
	}

	// 1. resolve policy and profile
	pol, err := uc.policies.ForEntity(req.EntityType)
	if err != nil {
		return uc.reject(ctx, req, actor, errs.CodeValidationFailed,
			fmt.Sprintf("no storage policy for entity type %q", req.EntityType))
	}
	if !req.Purpose.Valid() {
		return uc.reject(ctx, req, actor, errs.CodeValidationFailed,
			fmt.Sprintf("unknown image purpose %q", req.Purpose))
	}
	if !req.AccessLevel.Valid() {
		return uc.reject(ctx, req, actor, errs.CodeValidationFailed,
			fmt.Sprintf("unknown access level %q", req.AccessLevel))
	}

	profile, err := uc.profiles.Resolve(req.Profile)
	if err != nil {
		return uc.reject(ctx, req, actor, errs.CodeValidationFailed,
			fmt.Sprintf("unknown processing profile %q", req.Profile))
	}

	// 2. validate the file against policy
	verdict := ValidateFile(file.Data, file.Filename, file.ContentType, pol, uc.strictSignature)
	if !verdict.Valid {
		result := uc.reject(ctx, req, actor, verdict.Code, strings.Join(verdict.Errors, "; "))
		result.Warnings = verdict.Warnings
		return result
	}

	// 3. the target entity must exist unless the caller opts out
	if !req.SkipEntityCheck {
		exists, err := uc.resolver.Exists(ctx, req.EntityType, req.EntityID)
		if err != nil {
			uc.logger.Error(fmt.Errorf("UploadUseCase - Upload - uc.resolver.Exists: %w", err))
			return uc.reject(ctx, req, actor, errs.CodeDatabaseError, "entity lookup failed")
		}
		if !exists {
			return uc.reject(ctx, req, actor, errs.CodeEntityNotFound,
				fmt.Sprintf("%s %q does not exist", req.EntityType, req.EntityID))
		}
	}

	// 4. virus-scan hook
	scanResult, err := uc.scanner.Scan(ctx, file.Data)
	if err != nil {
		uc.logger.Error(fmt.Errorf("UploadUseCase - Upload - uc.scanner.Scan: %w", err))
		return uc.reject(ctx, req, actor, errs.CodeUnexpected, "virus scan failed")
	}
	if scanResult != scanner.ResultClean && scanResult != scanner.ResultSkipped {
		return uc.reject(ctx, req, actor, errs.CodeVirusDetected,
			fmt.Sprintf("virus scan result: %s", scanResult))
	}

	now := time.Now()

	// 5. pending catalog row before the storage write, so a crash between
	// the two writes is inspectable
	asset := &entity.ImageAsset{
		ID:               uuid.New(),
		OriginalFilename: file.Filename,
		Size:             int64(len(file.Data)),
		ContentType:      file.ContentType,
		EntityType:       req.EntityType,
		EntityID:         req.EntityID,
		Purpose:          req.Purpose,
		Status:           entity.StatusPending,
		AccessLevel:      req.AccessLevel,
		UploadedBy:       actor.UserID,
		CreatedAt:        now,
	}

	if err := uc.catalog.Create(ctx, asset); err != nil {
		uc.logger.Error(fmt.Errorf("UploadUseCase - Upload - uc.catalog.Create: %w", err))
		return uc.reject(ctx, req, actor, errs.CodeDatabaseError, "catalog write failed")
	}

	// 6. transform, best-effort
	transformed, warnings := uc.transformer.Apply(ctx, file.Data, profile)
	warnings = append(verdict.Warnings, warnings...)

	// 7. name and write the object
	filename, err := GenerateFilename(file.Filename, profile.Name, now)
	if err != nil {
		uc.logger.Error(fmt.Errorf("UploadUseCase - Upload: %w", err))
		uc.markFailed(ctx, asset.ID)
		return uc.reject(ctx, req, actor, errs.CodeUnexpected, "filename generation failed")
	}

	key := BuildStoragePath(pol.PathTemplate, req.EntityType, req.EntityID, req.Purpose, filename)

	publicURL, err := uc.store.Upload(ctx, pol.Bucket, key, transformed.Data, transformed.ContentType)
	if err != nil {
		uc.logger.Error(fmt.Errorf("UploadUseCase - Upload - uc.store.Upload: %w", err))
		uc.markFailed(ctx, asset.ID)
		return uc.rejectAsset(ctx, req, actor, asset.ID, errs.CodeStorageError, "object storage write failed")
	}

	// 8. assemble metadata, finalize the row and the audit trail together
	meta := AssembleMetadata(file, req, actor, transformed, pol, profile.Name, scanResult, now)

	asset.Filename = filename
	asset.Bucket = pol.Bucket
	asset.StoragePath = key
	asset.PublicURL = publicURL
	asset.Size = int64(len(transformed.Data))
	asset.ContentType = transformed.ContentType
	asset.Status = entity.StatusActive
	asset.Metadata = meta

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.catalog.Update(ctx, asset); err != nil {
			return fmt.Errorf("uc.catalog.Update: %w", err)
		}
		if err := uc.audit.Record(ctx, uc.auditRecord(asset.ID, req, actor, entity.ActionUpload, entity.OutcomeSuccess, "")); err != nil {
			return fmt.Errorf("uc.audit.Record: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error(fmt.Errorf("UploadUseCase - Upload - uc.transactor.WithinTransaction: %w", err))

		// compensate: the row stays failed, the orphaned object is removed
		if delErr := uc.store.Delete(ctx, pol.Bucket, key); delErr != nil {
			uc.logger.Error(fmt.Errorf("UploadUseCase - Upload - uc.store.Delete: %w", delErr))
		}
		uc.markFailed(ctx, asset.ID)

		return uc.rejectAsset(ctx, req, actor, asset.ID, errs.CodeDatabaseError, "catalog finalize failed")
	}

	uc.publish(ctx, entity.EventAssetUploaded, asset, actor)

	secureURL := ""
	if req.AccessLevel != entity.AccessPublic {
		secureURL, err = uc.store.PresignGet(ctx, pol.Bucket, key, uc.presignTTL)
		if err != nil {
			uc.logger.Warn("UploadUseCase - Upload - uc.store.PresignGet: %v", err)
			secureURL = ""
		}
	}

	return &dto.UploadResult{
		Success:     true,
		AssetID:     asset.ID,
		PublicURL:   publicURL,
		SecureURL:   secureURL,
		StoragePath: key,
		Processing: &dto.ProcessingResults{
			Profile:       profile.Name,
			OriginalSize:  int64(len(file.Data)),
			ProcessedSize: int64(len(transformed.Data)),
			Dimensions:    transformed.Processed,
		},
		Metadata: &meta,
		Warnings: warnings,
	}
}

// reject records a failed attempt in the audit trail and builds the
// structured failure result.
func (uc *UseCase) reject(ctx context.Context, req dto.UploadRequest, actor dto.Actor, code errs.Code, message string) *dto.UploadResult {
	return uc.rejectAsset(ctx, req, actor, uuid.Nil, code, message)
}

func (uc *UseCase) rejectAsset(ctx context.Context, req dto.UploadRequest, actor dto.Actor, assetID uuid.UUID, code errs.Code, message string) *dto.UploadResult {
	rec := uc.auditRecord(assetID, req, actor, entity.ActionUpload, entity.OutcomeFailure, string(code)+": "+message)
	if err := uc.audit.Record(ctx, rec); err != nil {
		uc.logger.Error(fmt.Errorf("UploadUseCase - rejectAsset - uc.audit.Record: %w", err))
	}

	return dto.Failure(code, message)
}

func (uc *UseCase) auditRecord(assetID uuid.UUID, req dto.UploadRequest, actor dto.Actor, action, outcome, detail string) *entity.AuditRecord {
	return &entity.AuditRecord{
		ID:         uuid.New(),
		ActorID:    actor.UserID,
		Action:     action,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		AssetID:    assetID,
		Outcome:    outcome,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
}

func (uc *UseCase) markFailed(ctx context.Context, id uuid.UUID) {
	if err := uc.catalog.SetStatus(ctx, id, entity.StatusFailed); err != nil {
		uc.logger.Error(fmt.Errorf("UploadUseCase - markFailed - uc.catalog.SetStatus: %w", err))
	}
}

func (uc *UseCase) publish(ctx context.Context, eventType string, asset *entity.ImageAsset, actor dto.Actor) {
	if uc.events == nil {
		return
	}

	err := uc.events.Publish(ctx, &entity.AssetEvent{
		ID:         uuid.New(),
		Type:       eventType,
		AssetID:    asset.ID,
		EntityType: asset.EntityType,
		EntityID:   asset.EntityID,
		Purpose:    asset.Purpose,
		ActorID:    actor.UserID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		uc.logger.Warn("UploadUseCase - publish - uc.events.Publish: %v", err)
	}
}
