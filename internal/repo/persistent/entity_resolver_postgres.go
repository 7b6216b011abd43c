package persistent

import (
	"context"
	"fmt"

	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/pkg/postgres"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

// entityTables maps entity types to the record-store tables that hold
// them. The tables belong to the outer order-management application; this
// resolver only checks existence.
var entityTables = map[entity.EntityType]string{
	entity.EntityCatalogItem:    "catalog_items",
	entity.EntityCustomer:       "customers",
	entity.EntityUserProfile:    "users",
	entity.EntityOrganization:   "organizations",
	entity.EntityOrder:          "orders",
	entity.EntityDesignTask:     "design_tasks",
	entity.EntityProductionTask: "production_tasks",
	entity.EntityProductLibrary: "product_library_entries",
	entity.EntityManufacturer:   "manufacturers",
}

type EntityResolver struct {
	*postgres.Postgres
}

func NewEntityResolver(pg *postgres.Postgres) *EntityResolver {
	return &EntityResolver{pg}
}

func (r *EntityResolver) Exists(ctx context.Context, entityType entity.EntityType, entityID string) (bool, error) {
	table, ok := entityTables[entityType]
	if !ok {
		return false, fmt.Errorf("EntityResolver - Exists %q: %w", entityType, errs.ErrUnknownEntity)
	}

	executor := r.GetExecutor(ctx)

	var exists bool
	// table names come from the closed map above, never from input
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)

	err := executor.QueryRow(ctx, query, entityID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("EntityResolver - Exists - executor.QueryRow: %w", err)
	}

	return exists, nil
}
