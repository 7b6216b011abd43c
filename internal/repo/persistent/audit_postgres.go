package persistent

import (
	"context"
	"fmt"

	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/pkg/postgres"
)

const (
	auditTable = "audit_log"

	auditIDColumn         = "id"
	auditActorColumn      = "actor_id"
	auditActionColumn     = "action"
	auditEntityTypeColumn = "entity_type"
	auditEntityIDColumn   = "entity_id"
	auditAssetIDColumn    = "asset_id"
	auditOutcomeColumn    = "outcome"
	auditDetailColumn     = "detail"
	auditCreatedAtColumn  = "created_at"
)

type AuditRepo struct {
	*postgres.Postgres
}

func NewAuditRepo(pg *postgres.Postgres) *AuditRepo {
	return &AuditRepo{pg}
}

func (r *AuditRepo) Record(ctx context.Context, rec *entity.AuditRecord) error {
	sql, args, err := r.Builder.
		Insert(auditTable).
		Columns(
			auditIDColumn,
			auditActorColumn,
			auditActionColumn,
			auditEntityTypeColumn,
			auditEntityIDColumn,
			auditAssetIDColumn,
			auditOutcomeColumn,
			auditDetailColumn,
			auditCreatedAtColumn,
		).
		Values(
			rec.ID,
			rec.ActorID,
			rec.Action,
			rec.EntityType,
			rec.EntityID,
			rec.AssetID,
			rec.Outcome,
			rec.Detail,
			rec.CreatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("AuditRepo - Record - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AuditRepo - Record - executor.Exec: %w", err)
	}

	return nil
}
