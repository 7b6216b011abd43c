// Package catalog exposes queries and lifecycle mutations over the asset
// catalog: list, update, soft-delete, restore and hard-delete.
package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/infrastructure"
	"github.com/stitchline/asset-service/internal/repo"
	"github.com/stitchline/asset-service/pkg/logger"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

type UseCase struct {
	catalog    repo.AssetCatalogRepo
	store      repo.ObjectStore
	audit      repo.AuditRepo
	transactor repo.Transactor
	events     infrastructure.EventPublisher

	logger logger.Interface
}

func New(
	catalogRepo repo.AssetCatalogRepo,
	store repo.ObjectStore,
	audit repo.AuditRepo,
	transactor repo.Transactor,
	events infrastructure.EventPublisher,
	l logger.Interface,
) *UseCase {
	return &UseCase{
		catalog:    catalogRepo,
		store:      store,
		audit:      audit,
		transactor: transactor,
		events:     events,
		logger:     l,
	}
}

func (uc *UseCase) Get(ctx context.Context, id uuid.UUID) (*entity.ImageAsset, error) {
	asset, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("CatalogUseCase - Get - uc.catalog.GetByID: %w", err)
	}

	return asset, nil
}

func (uc *UseCase) List(ctx context.Context, filters dto.ListFilters) ([]entity.ImageAsset, int64, error) {
	assets, total, err := uc.catalog.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("CatalogUseCase - List - uc.catalog.List: %w", err)
	}

	return assets, total, nil
}

// Update applies a partial metadata update; nil fields are untouched.
func (uc *UseCase) Update(ctx context.Context, id uuid.UUID, update dto.AssetUpdate, actor dto.Actor) (*entity.ImageAsset, error) {
	asset, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("CatalogUseCase - Update - uc.catalog.GetByID: %w", err)
	}

	if update.AltText != nil {
		asset.Metadata.Relation.AltText = *update.AltText
	}
	if update.Caption != nil {
		asset.Metadata.Relation.Caption = *update.Caption
	}
	if update.IsPrimary != nil {
		asset.Metadata.Relation.IsPrimary = *update.IsPrimary
	}
	if update.AccessLevel != nil {
		if !update.AccessLevel.Valid() {
			return nil, errs.New(errs.CodeValidationFailed, fmt.Sprintf("unknown access level %q", *update.AccessLevel))
		}
		asset.AccessLevel = *update.AccessLevel
		asset.Metadata.Security.AccessLevel = *update.AccessLevel
	}
	for k, v := range update.Custom {
		if asset.Metadata.Custom == nil {
			asset.Metadata.Custom = map[string]string{}
		}
		asset.Metadata.Custom[k] = v
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.catalog.Update(ctx, asset); err != nil {
			return fmt.Errorf("uc.catalog.Update: %w", err)
		}
		return uc.audit.Record(ctx, uc.auditRecord(asset, actor, entity.ActionUpdate, entity.OutcomeSuccess, ""))
	})
	if err != nil {
		return nil, fmt.Errorf("CatalogUseCase - Update - uc.transactor.WithinTransaction: %w", err)
	}

	return asset, nil
}

// SoftDelete marks the record deleted; the stored object is retained.
func (uc *UseCase) SoftDelete(ctx context.Context, id uuid.UUID, actor dto.Actor) error {
	asset, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("CatalogUseCase - SoftDelete - uc.catalog.GetByID: %w", err)
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.catalog.SoftDelete(ctx, id, time.Now()); err != nil {
			return fmt.Errorf("uc.catalog.SoftDelete: %w", err)
		}
		return uc.audit.Record(ctx, uc.auditRecord(asset, actor, entity.ActionSoftDelete, entity.OutcomeSuccess, ""))
	})
	if err != nil {
		return fmt.Errorf("CatalogUseCase - SoftDelete - uc.transactor.WithinTransaction: %w", err)
	}

	uc.publish(ctx, entity.EventAssetDeleted, asset, actor)

	return nil
}

// Restore clears deleted_at on a soft-deleted record.
func (uc *UseCase) Restore(ctx context.Context, id uuid.UUID, actor dto.Actor) error {
	asset, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("CatalogUseCase - Restore - uc.catalog.GetByID: %w", err)
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.catalog.Restore(ctx, id); err != nil {
			return fmt.Errorf("uc.catalog.Restore: %w", err)
		}
		return uc.audit.Record(ctx, uc.auditRecord(asset, actor, entity.ActionRestore, entity.OutcomeSuccess, ""))
	})
	if err != nil {
		return fmt.Errorf("CatalogUseCase - Restore - uc.transactor.WithinTransaction: %w", err)
	}

	uc.publish(ctx, entity.EventAssetRestored, asset, actor)

	return nil
}

// HardDelete removes the catalog row and the backing object.
func (uc *UseCase) HardDelete(ctx context.Context, id uuid.UUID, actor dto.Actor) error {
	// keys are needed for the object delete after the row is gone
	asset, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("CatalogUseCase - HardDelete - uc.catalog.GetByID: %w", err)
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.catalog.HardDelete(ctx, id); err != nil {
			return fmt.Errorf("uc.catalog.HardDelete: %w", err)
		}
		return uc.audit.Record(ctx, uc.auditRecord(asset, actor, entity.ActionHardDelete, entity.OutcomeSuccess, ""))
	})
	if err != nil {
		return fmt.Errorf("CatalogUseCase - HardDelete - uc.transactor.WithinTransaction: %w", err)
	}

	if asset.StoragePath != "" {
		if err := uc.store.Delete(ctx, asset.Bucket, asset.StoragePath); err != nil {
			uc.logger.Warn("CatalogUseCase - HardDelete - failed to delete object %s/%s: %v", asset.Bucket, asset.StoragePath, err)
		}
	}

	uc.publish(ctx, entity.EventAssetDeleted, asset, actor)

	return nil
}

// Download streams the stored object of a live asset.
func (uc *UseCase) Download(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	asset, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("CatalogUseCase - Download - uc.catalog.GetByID: %w", err)
	}

	if !asset.Active() {
		return nil, "", fmt.Errorf("CatalogUseCase - Download: %w", errs.ErrRecordNotFound)
	}

	body, err := uc.store.Download(ctx, asset.Bucket, asset.StoragePath)
	if err != nil {
		return nil, "", fmt.Errorf("CatalogUseCase - Download - uc.store.Download: %w", err)
	}

	return body, asset.ContentType, nil
}

func (uc *UseCase) auditRecord(asset *entity.ImageAsset, actor dto.Actor, action, outcome, detail string) *entity.AuditRecord {
	return &entity.AuditRecord{
		ID:         uuid.New(),
		ActorID:    actor.UserID,
		Action:     action,
		EntityType: asset.EntityType,
		EntityID:   asset.EntityID,
		AssetID:    asset.ID,
		Outcome:    outcome,
		Detail:     detail,
		CreatedAt:  time.Now(),
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
		uc.logger.Warn("CatalogUseCase - publish - uc.events.Publish: %v", err)
	}
}
