package response

import "github.com/stitchline/asset-service/internal/entity"

type Error struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type AssetList struct {
	Assets []entity.ImageAsset `json:"assets"`
	Total  int64               `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}
