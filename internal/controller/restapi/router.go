package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/stitchline/asset-service/config"
	v1 "github.com/stitchline/asset-service/internal/controller/restapi/v1"
	"github.com/stitchline/asset-service/internal/usecase"
	"github.com/stitchline/asset-service/pkg/logger"
)

// @title Asset service
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(app *fiber.App, cfg *config.Config, uploader usecase.AssetUploader, batch usecase.BatchUploader, catalog usecase.AssetCatalog, l logger.Interface) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewAssetRoutes(apiV1Group, uploader, batch, catalog, l)
	}
}
