package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/pkg/postgres"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

const (
	// Table
	assetsTable = "image_assets"

	// Columns
	idColumn               = "id"
	filenameColumn         = "filename"
	originalFilenameColumn = "original_filename"
	sizeColumn             = "size"
	contentTypeColumn      = "content_type"
	bucketColumn           = "bucket"
	storagePathColumn      = "storage_path"
	publicURLColumn        = "public_url"
	entityTypeColumn       = "entity_type"
	entityIDColumn         = "entity_id"
	purposeColumn          = "purpose"
	statusColumn           = "status"
	accessLevelColumn      = "access_level"
	metadataColumn         = "metadata"
	uploadedByColumn       = "uploaded_by"
	createdAtColumn        = "created_at"
	deletedAtColumn        = "deleted_at"
)

var assetColumns = []string{
	idColumn,
	filenameColumn,
	originalFilenameColumn,
	sizeColumn,
	contentTypeColumn,
	bucketColumn,
	storagePathColumn,
	publicURLColumn,
	entityTypeColumn,
	entityIDColumn,
	purposeColumn,
	statusColumn,
	accessLevelColumn,
	metadataColumn,
	uploadedByColumn,
	createdAtColumn,
	deletedAtColumn,
}

// columns accepted as a listing sort key
var sortableColumns = map[string]bool{
	createdAtColumn: true,
	sizeColumn:      true,
	filenameColumn:  true,
	statusColumn:    true,
}

type AssetCatalogRepo struct {
	*postgres.Postgres
}

func NewAssetCatalogRepo(pg *postgres.Postgres) *AssetCatalogRepo {
	return &AssetCatalogRepo{pg}
}

func (r *AssetCatalogRepo) Create(ctx context.Context, asset *entity.ImageAsset) error {
	meta, err := json.Marshal(asset.Metadata)
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - Create - json.Marshal: %w", err)
	}

	sql, args, err := r.Builder.
		Insert(assetsTable).
		Columns(assetColumns...).
		Values(
			asset.ID,
			asset.Filename,
			asset.OriginalFilename,
			asset.Size,
			asset.ContentType,
			asset.Bucket,
			asset.StoragePath,
			asset.PublicURL,
			asset.EntityType,
			asset.EntityID,
			asset.Purpose,
			asset.Status,
			asset.AccessLevel,
			meta,
			asset.UploadedBy,
			asset.CreatedAt,
			asset.DeletedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *AssetCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ImageAsset, error) {
	sql, args, err := r.Builder.
		Select(assetColumns...).
		From(assetsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("AssetCatalogRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	asset, err := scanAsset(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("AssetCatalogRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("AssetCatalogRepo - GetByID - scanAsset: %w", err)
	}

	return asset, nil
}

func (r *AssetCatalogRepo) List(ctx context.Context, filters dto.ListFilters) ([]entity.ImageAsset, int64, error) {
	where := listConditions(filters)

	executor := r.GetExecutor(ctx)

	// total, before pagination
	countSQL, countArgs, err := r.Builder.
		Select("COUNT(*)").
		From(assetsTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("AssetCatalogRepo - List - count ToSql: %w", err)
	}

	var total int64
	if err := executor.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("AssetCatalogRepo - List - count Scan: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = dto.DefaultPageSize
	}

	sortBy := filters.SortBy
	if !sortableColumns[sortBy] {
		sortBy = createdAtColumn
	}
	order := sortBy + " ASC"
	if filters.SortDesc || filters.SortBy == "" {
		order = sortBy + " DESC"
	}

	sql, args, err := r.Builder.
		Select(assetColumns...).
		From(assetsTable).
		Where(where).
		OrderBy(order).
		Limit(uint64(limit)).
		Offset(uint64(filters.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("AssetCatalogRepo - List - r.Builder.ToSql: %w", err)
	}

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("AssetCatalogRepo - List - executor.Query: %w", err)
	}
	defer rows.Close()

	assets := make([]entity.ImageAsset, 0, limit)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("AssetCatalogRepo - List - scanAsset: %w", err)
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("AssetCatalogRepo - List - rows.Err: %w", err)
	}

	return assets, total, nil
}

func listConditions(filters dto.ListFilters) squirrel.And {
	where := squirrel.And{}

	if filters.UploadedBy != "" {
		where = append(where, squirrel.Eq{uploadedByColumn: filters.UploadedBy})
	}
	if filters.EntityType != "" {
		where = append(where, squirrel.Eq{entityTypeColumn: filters.EntityType})
	}
	if filters.EntityID != "" {
		where = append(where, squirrel.Eq{entityIDColumn: filters.EntityID})
	}
	if filters.Purpose != "" {
		where = append(where, squirrel.Eq{purposeColumn: filters.Purpose})
	}
	if filters.AccessLevel != "" {
		where = append(where, squirrel.Eq{accessLevelColumn: filters.AccessLevel})
	}
	// pending and failed rows stay out of listings unless asked for
	if filters.Status != "" {
		where = append(where, squirrel.Eq{statusColumn: filters.Status})
	} else {
		where = append(where, squirrel.Eq{statusColumn: entity.StatusActive})
	}
	if filters.Deleted != nil {
		if *filters.Deleted {
			where = append(where, squirrel.NotEq{deletedAtColumn: nil})
		} else {
			where = append(where, squirrel.Eq{deletedAtColumn: nil})
		}
	}

	return where
}

func (r *AssetCatalogRepo) Update(ctx context.Context, asset *entity.ImageAsset) error {
	meta, err := json.Marshal(asset.Metadata)
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - Update - json.Marshal: %w", err)
	}

	sql, args, err := r.Builder.
		Update(assetsTable).
		Set(filenameColumn, asset.Filename).
		Set(sizeColumn, asset.Size).
		Set(contentTypeColumn, asset.ContentType).
		Set(bucketColumn, asset.Bucket).
		Set(storagePathColumn, asset.StoragePath).
		Set(publicURLColumn, asset.PublicURL).
		Set(statusColumn, asset.Status).
		Set(accessLevelColumn, asset.AccessLevel).
		Set(metadataColumn, meta).
		Where(squirrel.Eq{idColumn: asset.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - Update - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - Update - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("AssetCatalogRepo - Update: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *AssetCatalogRepo) SetStatus(ctx context.Context, id uuid.UUID, status entity.AssetStatus) error {
	sql, args, err := r.Builder.
		Update(assetsTable).
		Set(statusColumn, status).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - SetStatus - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - SetStatus - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("AssetCatalogRepo - SetStatus: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *AssetCatalogRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	sql, args, err := r.Builder.
		Update(assetsTable).
		Set(deletedAtColumn, at).
		Where(squirrel.And{
			squirrel.Eq{idColumn: id},
			squirrel.Eq{deletedAtColumn: nil},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - SoftDelete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - SoftDelete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("AssetCatalogRepo - SoftDelete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *AssetCatalogRepo) Restore(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Update(assetsTable).
		Set(deletedAtColumn, nil).
		Where(squirrel.And{
			squirrel.Eq{idColumn: id},
			squirrel.NotEq{deletedAtColumn: nil},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - Restore - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - Restore - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("AssetCatalogRepo - Restore: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *AssetCatalogRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Delete(assetsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - HardDelete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AssetCatalogRepo - HardDelete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("AssetCatalogRepo - HardDelete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *AssetCatalogRepo) ListExpired(ctx context.Context, entityType entity.EntityType, cutoff time.Time, limit int) ([]entity.ImageAsset, error) {
	sql, args, err := r.Builder.
		Select(assetColumns...).
		From(assetsTable).
		Where(squirrel.And{
			squirrel.Eq{entityTypeColumn: entityType},
			squirrel.Eq{statusColumn: entity.StatusActive},
			squirrel.Eq{deletedAtColumn: nil},
			squirrel.Lt{createdAtColumn: cutoff},
		}).
		OrderBy(createdAtColumn + " ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("AssetCatalogRepo - ListExpired - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("AssetCatalogRepo - ListExpired - executor.Query: %w", err)
	}
	defer rows.Close()

	var assets []entity.ImageAsset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("AssetCatalogRepo - ListExpired - scanAsset: %w", err)
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("AssetCatalogRepo - ListExpired - rows.Err: %w", err)
	}

	return assets, nil
}

func scanAsset(row pgx.Row) (*entity.ImageAsset, error) {
	var asset entity.ImageAsset
	var meta []byte

	err := row.Scan(
		&asset.ID,
		&asset.Filename,
		&asset.OriginalFilename,
		&asset.Size,
		&asset.ContentType,
		&asset.Bucket,
		&asset.StoragePath,
		&asset.PublicURL,
		&asset.EntityType,
		&asset.EntityID,
		&asset.Purpose,
		&asset.Status,
		&asset.AccessLevel,
		&meta,
		&asset.UploadedBy,
		&asset.CreatedAt,
		&asset.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &asset.Metadata); err != nil {
			return nil, fmt.Errorf("json.Unmarshal metadata: %w", err)
		}
	}

	return &asset, nil
}
