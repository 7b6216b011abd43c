// Package retention hosts the background worker that expires assets past
// their policy's retention window.
package retention

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/internal/infrastructure"
	"github.com/stitchline/asset-service/internal/policy"
	"github.com/stitchline/asset-service/internal/repo"
	"github.com/stitchline/asset-service/pkg/logger"
)

const sweeperActor = "retention-sweeper"

// Sweeper soft-deletes assets older than their entity policy's retention
// window. Expired assets stay restorable until purged.
type Sweeper struct {
	catalog  repo.AssetCatalogRepo
	audit    repo.AuditRepo
	events   infrastructure.EventPublisher
	policies *policy.Registry
	logger   logger.Interface

	sweepInterval time.Duration
	sweepTimeout  time.Duration
	batchSize     int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(
	catalog repo.AssetCatalogRepo,
	audit repo.AuditRepo,
	events infrastructure.EventPublisher,
	policies *policy.Registry,
	l logger.Interface,
	sweepInterval time.Duration,
	sweepTimeout time.Duration,
	batchSize int,
) *Sweeper {
	return &Sweeper{
		catalog:       catalog,
		audit:         audit,
		events:        events,
		policies:      policies,
		logger:        l,
		sweepInterval: sweepInterval,
		sweepTimeout:  sweepTimeout,
		batchSize:     batchSize,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Sweeper - Start - worker already started")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	s.worker(s.sweepInterval, func() {
		sweepCtx, sweepCancel := context.WithTimeout(s.ctx, s.sweepTimeout)
		s.sweep(sweepCtx)
		sweepCancel()
	})

	return nil
}

// sweep walks every entity type with a retention window and soft-deletes
// one batch of expired assets per type.
func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()

	for _, entityType := range s.policies.EntityTypes() {
		pol, err := s.policies.ForEntity(entityType)
		if err != nil || pol.RetentionDays <= 0 {
			continue
		}

		cutoff := now.AddDate(0, 0, -pol.RetentionDays)

		expired, err := s.catalog.ListExpired(ctx, entityType, cutoff, s.batchSize)
		if err != nil {
			s.logger.Error(fmt.Errorf("Sweeper - sweep - s.catalog.ListExpired: %w", err))

			continue
		}

		for i := range expired {
			s.expire(ctx, &expired[i], now)
		}
	}
}

func (s *Sweeper) expire(ctx context.Context, asset *entity.ImageAsset, now time.Time) {
	if err := s.catalog.SoftDelete(ctx, asset.ID, now); err != nil {
		s.logger.Error(fmt.Errorf("Sweeper - expire - s.catalog.SoftDelete: %w", err))

		return
	}

	err := s.audit.Record(ctx, &entity.AuditRecord{
		ID:         uuid.New(),
		ActorID:    sweeperActor,
		Action:     entity.ActionExpire,
		EntityType: asset.EntityType,
		EntityID:   asset.EntityID,
		AssetID:    asset.ID,
		Outcome:    entity.OutcomeSuccess,
		CreatedAt:  now,
	})
	if err != nil {
		s.logger.Error(fmt.Errorf("Sweeper - expire - s.audit.Record: %w", err))
	}

	if s.events != nil {
		err = s.events.Publish(ctx, &entity.AssetEvent{
			ID:         uuid.New(),
			Type:       entity.EventAssetExpired,
			AssetID:    asset.ID,
			EntityType: asset.EntityType,
			EntityID:   asset.EntityID,
			Purpose:    asset.Purpose,
			ActorID:    sweeperActor,
			OccurredAt: now,
		})
		if err != nil {
			s.logger.Warn("Sweeper - expire - s.events.Publish: %v", err)
		}
	}

	s.logger.Info("Sweeper - expired asset %s (%s/%s)", asset.ID, asset.EntityType, asset.EntityID)
}

func (s *Sweeper) worker(interval time.Duration, task func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

func (s *Sweeper) Shutdown(ctx context.Context) error {
	if !s.started.Load() {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
