package v1

import (
	"github.com/stitchline/asset-service/internal/usecase"
	"github.com/stitchline/asset-service/pkg/logger"
)

type V1 struct {
	uploader usecase.AssetUploader
	batch    usecase.BatchUploader
	catalog  usecase.AssetCatalog
	logger   logger.Interface
}
