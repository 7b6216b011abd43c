// Package batch fans a multi-file request out over the single-item
// uploader in bounded-concurrency chunks.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/usecase"
	"github.com/stitchline/asset-service/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize bounds how many items are in flight at once, limiting
// peak memory from concurrent transforms and storage writes.
const DefaultChunkSize = 3

type UseCase struct {
	uploader  usecase.AssetUploader
	chunkSize int

	logger logger.Interface
}

func New(uploader usecase.AssetUploader, chunkSize int, l logger.Interface) *UseCase {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &UseCase{
		uploader:  uploader,
		chunkSize: chunkSize,
		logger:    l,
	}
}

// UploadBatch processes files paired positionally with req.Uploads.
// Chunks run sequentially, items inside a chunk concurrently. One item's
// failure never aborts or rolls back its siblings; the returned error is
// reserved for malformed input.
func (uc *UseCase) UploadBatch(ctx context.Context, files []dto.UploadFile, req dto.BatchRequest, actor dto.Actor) (*dto.BatchResult, error) {
	if len(files) != len(req.Uploads) {
		return nil, fmt.Errorf("BatchUseCase - UploadBatch: %d files paired with %d upload requests", len(files), len(req.Uploads))
	}

	batchID := uuid.New()
	if req.Metadata.BatchID != "" {
		if parsed, err := uuid.Parse(req.Metadata.BatchID); err == nil {
			batchID = parsed
		}
	}

	start := time.Now()

	results := make([]dto.BatchItemResult, len(files))

	for offset := 0; offset < len(files); offset += uc.chunkSize {
		end := offset + uc.chunkSize
		if end > len(files) {
			end = len(files)
		}

		g, gctx := errgroup.WithContext(ctx)

		for i := offset; i < end; i++ {
			g.Go(func() error {
				res := uc.uploader.Upload(gctx, files[i], req.Uploads[i], actor)
				results[i] = dto.BatchItemResult{UploadResult: *res, Index: i}
				return nil
			})
		}

		// Upload never returns an error; Wait only synchronizes the chunk.
		_ = g.Wait()
	}

	elapsed := time.Since(start)

	summary := dto.BatchSummary{
		Total:            len(files),
		ProcessingTime:   elapsed,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}

	var itemErrors []string
	for i := range results {
		summary.TotalSize += int64(len(files[i].Data))
		if results[i].Success {
			summary.Successful++
		} else {
			summary.Failed++
			itemErrors = append(itemErrors, fmt.Sprintf("item %d: %s", i, results[i].Error))
		}
	}

	if summary.Failed > 0 {
		uc.logger.Warn("BatchUseCase - UploadBatch - batch %s finished with %d/%d failures", batchID, summary.Failed, summary.Total)
	}

	return &dto.BatchResult{
		Success: summary.Failed == 0,
		BatchID: batchID,
		Results: results,
		Summary: summary,
		Errors:  itemErrors,
	}, nil
}
