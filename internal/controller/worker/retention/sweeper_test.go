package retention

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/policy"
	"github.com/stitchline/asset-service/pkg/logger"
)

type sweepCatalog struct {
	expired     map[entity.EntityType][]entity.ImageAsset
	softDeleted []uuid.UUID
	cutoffs     map[entity.EntityType]time.Time
}

func (c *sweepCatalog) Create(context.Context, *entity.ImageAsset) error { return nil }

func (c *sweepCatalog) GetByID(context.Context, uuid.UUID) (*entity.ImageAsset, error) {
	return nil, nil
}

func (c *sweepCatalog) List(context.Context, dto.ListFilters) ([]entity.ImageAsset, int64, error) {
	return nil, 0, nil
}

func (c *sweepCatalog) Update(context.Context, *entity.ImageAsset) error { return nil }

func (c *sweepCatalog) SetStatus(context.Context, uuid.UUID, entity.AssetStatus) error { return nil }

func (c *sweepCatalog) SoftDelete(_ context.Context, id uuid.UUID, _ time.Time) error {
	c.softDeleted = append(c.softDeleted, id)
	return nil
}

func (c *sweepCatalog) Restore(context.Context, uuid.UUID) error { return nil }

func (c *sweepCatalog) HardDelete(context.Context, uuid.UUID) error { return nil }

func (c *sweepCatalog) ListExpired(_ context.Context, entityType entity.EntityType, cutoff time.Time, _ int) ([]entity.ImageAsset, error) {
	if c.cutoffs == nil {
		c.cutoffs = map[entity.EntityType]time.Time{}
	}
	c.cutoffs[entityType] = cutoff
	return c.expired[entityType], nil
}

type sweepAudit struct {
	records []entity.AuditRecord
}

func (a *sweepAudit) Record(_ context.Context, rec *entity.AuditRecord) error {
	a.records = append(a.records, *rec)
	return nil
}

func TestSweepExpiresOnlyRetainedTypes(t *testing.T) {
	old := entity.ImageAsset{
		ID:         uuid.New(),
		EntityType: entity.EntityCustomer,
		EntityID:   "cust-1",
		Purpose:    entity.PurposeProfile,
		Status:     entity.StatusActive,
	}

	repo := &sweepCatalog{expired: map[entity.EntityType][]entity.ImageAsset{
		entity.EntityCustomer: {old},
	}}
	audit := &sweepAudit{}

	policies := policy.NewRegistryWith(map[entity.EntityType]policy.StoragePolicy{
		entity.EntityCustomer:    {Bucket: "b", PathTemplate: "t", MaxSize: 1, AllowedTypes: []string{"image/jpeg"}, RetentionDays: 30},
		entity.EntityCatalogItem: {Bucket: "b", PathTemplate: "t", MaxSize: 1, AllowedTypes: []string{"image/jpeg"}},
	})

	s := New(repo, audit, nil, policies, logger.New("error"), time.Hour, time.Minute, 100)
	s.sweep(context.Background())

	require.Equal(t, []uuid.UUID{old.ID}, repo.softDeleted)

	require.Len(t, audit.records, 1)
	assert.Equal(t, entity.ActionExpire, audit.records[0].Action)
	assert.Equal(t, sweeperActor, audit.records[0].ActorID)

	// zero-retention types are never queried
	assert.Contains(t, repo.cutoffs, entity.EntityCustomer)
	assert.NotContains(t, repo.cutoffs, entity.EntityCatalogItem)
}

func TestSweepCutoffHonorsRetentionWindow(t *testing.T) {
	repo := &sweepCatalog{}
	policies := policy.NewRegistryWith(map[entity.EntityType]policy.StoragePolicy{
		entity.EntityOrder: {Bucket: "b", PathTemplate: "t", MaxSize: 1, AllowedTypes: []string{"image/jpeg"}, RetentionDays: 730},
	})

	s := New(repo, &sweepAudit{}, nil, policies, logger.New("error"), time.Hour, time.Minute, 100)

	before := time.Now().AddDate(0, 0, -730)
	s.sweep(context.Background())
	after := time.Now().AddDate(0, 0, -730)

	cutoff, ok := repo.cutoffs[entity.EntityOrder]
	require.True(t, ok)
	assert.False(t, cutoff.Before(before))
	assert.False(t, cutoff.After(after))
}

func TestSweeperDoubleStart(t *testing.T) {
	s := New(&sweepCatalog{}, &sweepAudit{}, nil, policy.NewRegistryWith(nil), logger.New("error"), time.Hour, time.Minute, 1)

	require.NoError(t, s.Start(context.Background()))
	require.Error(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}
