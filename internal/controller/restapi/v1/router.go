package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stitchline/asset-service/internal/usecase"
	"github.com/stitchline/asset-service/pkg/logger"
)

func NewAssetRoutes(apiV1Group fiber.Router, uploader usecase.AssetUploader, batch usecase.BatchUploader, catalog usecase.AssetCatalog, l logger.Interface) {
	r := &V1{uploader: uploader, batch: batch, catalog: catalog, logger: l}

	{
		// Uploads
		apiV1Group.Post("/assets", r.uploadAsset)
		apiV1Group.Post("/assets/batch", r.uploadBatch)

		// Catalog
		apiV1Group.Get("/assets", r.listAssets)
		apiV1Group.Get("/assets/:id", r.getAsset)
		apiV1Group.Get("/assets/:id/content", r.downloadAsset)
		apiV1Group.Patch("/assets/:id", r.updateAsset)
		apiV1Group.Delete("/assets/:id", r.softDeleteAsset)
		apiV1Group.Post("/assets/:id/restore", r.restoreAsset)
		apiV1Group.Delete("/assets/:id/purge", r.purgeAsset)
	}
}
