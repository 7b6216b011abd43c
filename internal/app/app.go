package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stitchline/asset-service/config"
	"github.com/stitchline/asset-service/internal/controller/restapi"
	"github.com/stitchline/asset-service/internal/controller/worker/retention"
	"github.com/stitchline/asset-service/internal/infrastructure"
	infrakafka "github.com/stitchline/asset-service/internal/infrastructure/kafka"
	"github.com/stitchline/asset-service/internal/infrastructure/processor"
	"github.com/stitchline/asset-service/internal/infrastructure/scanner"
	"github.com/stitchline/asset-service/internal/policy"
	"github.com/stitchline/asset-service/internal/repo/persistent"
	"github.com/stitchline/asset-service/internal/usecase/batch"
	"github.com/stitchline/asset-service/internal/usecase/catalog"
	"github.com/stitchline/asset-service/internal/usecase/transform"
	"github.com/stitchline/asset-service/internal/usecase/upload"
	"github.com/stitchline/asset-service/pkg/httpserver"
	"github.com/stitchline/asset-service/pkg/kafka/producer"
	"github.com/stitchline/asset-service/pkg/logger"
	"github.com/stitchline/asset-service/pkg/postgres"
	"github.com/stitchline/asset-service/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	assetStore := persistent.NewAssetStore(s3c)
	catalogRepo := persistent.NewAssetCatalogRepo(pg)
	auditRepo := persistent.NewAuditRepo(pg)
	entityResolver := persistent.NewEntityResolver(pg)

	// Policies and profiles
	policies := policy.NewRegistry()
	profiles := policy.NewProfileCatalog()

	// Kafka Producer (optional)
	var events infrastructure.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
		}
		events = infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic)
	}

	// Use-Case

	// transform use-case
	transformUseCase := transform.New(processor.New(), l)

	// upload use-case
	uploadUseCase := upload.New(
		assetStore,
		catalogRepo,
		auditRepo,
		entityResolver,
		pg,
		transformUseCase,
		scanner.NewNoop(),
		events,
		policies,
		profiles,
		cfg.Upload.StrictSignature,
		cfg.S3.PresignTTL,
		l,
	)

	// batch use-case
	batchUseCase := batch.New(uploadUseCase, cfg.Upload.BatchChunkSize, l)

	// catalog use-case
	catalogUseCase := catalog.New(catalogRepo, assetStore, auditRepo, pg, events, l)

	// Retention Sweeper Worker
	var sweeper *retention.Sweeper
	if cfg.Retention.Enabled {
		sweeper = retention.New(
			catalogRepo,
			auditRepo,
			events,
			policies,
			l,
			cfg.Retention.SweepInterval,
			cfg.Retention.SweepTimeout,
			cfg.Retention.BatchSize,
		)
	}

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, uploadUseCase, batchUseCase, catalogUseCase, l)

	// Start Components
	if sweeper != nil {
		err = sweeper.Start(ctx)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - sweeper.Start: %w", err))
		}
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	if sweeper != nil {
		swShutdownCtx, swShutdownCancel := context.WithTimeout(ctx, cfg.Retention.ShutdownTimeout)
		defer swShutdownCancel()
		err = sweeper.Shutdown(swShutdownCtx)
		if err != nil {
			l.Error(fmt.Errorf("app - Run - sweeper.Shutdown: %w", err))
		}
	}

	if events != nil {
		err = events.Close()
		if err != nil {
			l.Error(fmt.Errorf("app - Run - events.Close: %w", err))
		}
	}
}
