package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stitchline/asset-service/internal/controller/restapi/v1/response"
	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

// @Summary 	List assets
// @Description Lists catalog records with filtering, sorting and paging
// @Tags 		assets
// @Produce 	json
// @Param 		entity_type  query string false "Owning entity type"
// @Param 		entity_id 	 query string false "Owning entity id"
// @Param 		image_purpose query string false "Image purpose"
// @Param 		uploaded_by  query string false "Uploader id"
// @Param 		access_level query string false "Access level"
// @Param 		status 		 query string false "Asset status (default: active)" Enums(pending, active, failed)
// @Param 		deleted 	 query bool   false "Only soft-deleted (true) or only live (false); omit for both"
// @Param 		sort_by 	 query string false "Sort column" Enums(created_at, size, original_filename)
// @Param 		sort_desc 	 query bool   false "Sort descending"
// @Param 		limit 		 query int 	  false "Page size (default 50)"
// @Param 		offset 		 query int 	  false "Page offset"
// @Success 	200 {object} response.AssetList
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets [get]
func (r *V1) listAssets(ctx *fiber.Ctx) error {
	filters := dto.ListFilters{
		UploadedBy:  ctx.Query("uploaded_by"),
		EntityType:  entity.EntityType(ctx.Query("entity_type")),
		EntityID:    ctx.Query("entity_id"),
		Purpose:     entity.ImagePurpose(ctx.Query("image_purpose")),
		AccessLevel: entity.AccessLevel(ctx.Query("access_level")),
		Status:      entity.AssetStatus(ctx.Query("status")),
		SortBy:      ctx.Query("sort_by"),
		SortDesc:    ctx.QueryBool("sort_desc"),
		Limit:       ctx.QueryInt("limit", dto.DefaultPageSize),
		Offset:      ctx.QueryInt("offset", 0),
	}

	if deletedStr := ctx.Query("deleted"); deletedStr != "" {
		deleted, err := strconv.ParseBool(deletedStr)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "deleted must be a bool")
		}
		filters.Deleted = &deleted
	}

	assets, total, err := r.catalog.List(ctx.UserContext(), filters)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - listAssets")

		return errorResponse(ctx, http.StatusInternalServerError, "database problems")
	}

	return ctx.Status(http.StatusOK).JSON(response.AssetList{
		Assets: assets,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	})
}

// @Summary 	Get asset
// @Description Returns one catalog record by id
// @Tags 		assets
// @Produce 	json
// @Param 		id path string true "Asset ID(uuid)"
// @Success 	200 {object} entity.ImageAsset
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Asset not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{id} [get]
func (r *V1) getAsset(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	asset, err := r.catalog.Get(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "asset not found")
		}
		r.logger.Error(err, "restapi - v1 - getAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "database problems")
	}

	return ctx.Status(http.StatusOK).JSON(asset)
}

// @Summary 	Download asset content
// @Description Streams the stored object of a live asset
// @Tags 		assets
// @Produce 	image/jpeg,image/png,image/gif,application/pdf
// @Param 		id path string true "Asset ID(uuid)"
// @Success 	200 {file} 	binary
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Asset not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{id}/content [get]
func (r *V1) downloadAsset(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	body, contentType, err := r.catalog.Download(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "asset not found")
		}
		r.logger.Error(err, "restapi - v1 - downloadAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	ctx.Set(fiber.HeaderContentType, contentType)

	return ctx.SendStream(body)
}

// @Summary 	Update asset
// @Description Partial update of mutable catalog fields; omitted fields are untouched
// @Tags 		assets
// @Accept 		json
// @Produce 	json
// @Param 		id 	   path string 			true "Asset ID(uuid)"
// @Param 		update body dto.AssetUpdate true "Fields to update"
// @Success 	200 {object} entity.ImageAsset
// @Failure 	400 {object} response.Error "Invalid ID or body"
// @Failure 	404 {object} response.Error "Asset not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{id} [patch]
func (r *V1) updateAsset(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	var update dto.AssetUpdate
	if err := ctx.BodyParser(&update); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid body")
	}

	asset, err := r.catalog.Update(ctx.UserContext(), id, update, actorFromCtx(ctx))
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "asset not found")
		}
		if code := errs.CodeOf(err); code == errs.CodeValidationFailed {
			return codeResponse(ctx, code, err.Error())
		}
		r.logger.Error(err, "restapi - v1 - updateAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "database problems")
	}

	return ctx.Status(http.StatusOK).JSON(asset)
}

// @Summary 	Soft-delete asset
// @Description Marks the record deleted; the stored object is retained and the record is restorable
// @Tags 		assets
// @Param 		id path string true "Asset ID(uuid)"
// @Success 	204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Asset not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{id} [delete]
func (r *V1) softDeleteAsset(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err = r.catalog.SoftDelete(ctx.UserContext(), id, actorFromCtx(ctx))
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "asset not found")
		}
		r.logger.Error(err, "restapi - v1 - softDeleteAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "database problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary 	Restore asset
// @Description Clears the deletion mark of a soft-deleted record
// @Tags 		assets
// @Param 		id path string true "Asset ID(uuid)"
// @Success 	204 "Restored"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Asset not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{id}/restore [post]
func (r *V1) restoreAsset(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err = r.catalog.Restore(ctx.UserContext(), id, actorFromCtx(ctx))
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "asset not found")
		}
		r.logger.Error(err, "restapi - v1 - restoreAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "database problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary 	Purge asset
// @Description Permanently removes the catalog record and the stored object
// @Tags 		assets
// @Param 		id path string true "Asset ID(uuid)"
// @Success 	204 "Purged"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Asset not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{id}/purge [delete]
func (r *V1) purgeAsset(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err = r.catalog.HardDelete(ctx.UserContext(), id, actorFromCtx(ctx))
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "asset not found")
		}
		r.logger.Error(err, "restapi - v1 - purgeAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}
