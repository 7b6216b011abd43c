package v1

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/stitchline/asset-service/internal/dto"
)

// @Summary  	Upload asset
// @Description Validates, processes and stores one file for a business entity
// @Tags 		assets
// @Accept 		mpfd
// @Produce 	json
// @Param 		file 				formData file   true  "File to upload"
// @Param 		entity_type 		formData string true  "Owning entity type" Enums(catalog_item, customer, user_profile, organization, order, design_task, production_task, product_library, manufacturer)
// @Param 		entity_id 			formData string true  "Owning entity id"
// @Param 		image_purpose 		formData string true  "Image purpose"
// @Param 		processing_profile	formData string false "Processing profile (default: gallery)"
// @Param 		access_level 		formData string false "Access level" Enums(public, private, restricted)
// @Param 		alt_text 			formData string false "Alt text"
// @Param 		caption 			formData string false "Caption"
// @Param 		is_primary 			formData bool   false "Primary image for the entity"
// @Param 		ordering 			formData int    false "Position within the entity's gallery"
// @Param 		allowed_roles 		formData string false "Comma-separated roles for restricted assets"
// @Param 		custom_metadata		formData string false "JSON object of caller-defined key/value pairs"
// @Param 		skip_entity_check	formData bool   false "Skip owning-entity existence check"
// @Success 	201 {object} dto.UploadResult
// @Failure 	400 {object} response.Error "Missing file or invalid parameters"
// @Failure 	404 {object} response.Error "Owning entity not found"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported file type"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets [post]
func (r *V1) uploadAsset(ctx *fiber.Ctx) error {
	header, err := ctx.FormFile("file")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "file is required")
	}

	file, err := readUploadFile(header)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	req, err := uploadRequestFromForm(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	result := r.uploader.Upload(ctx.UserContext(), file, req, actorFromCtx(ctx))
	if !result.Success {
		return ctx.Status(statusFromCode(result.ErrorCode)).JSON(result)
	}

	return ctx.Status(http.StatusCreated).JSON(result)
}

// @Summary  	Upload asset batch
// @Description Uploads several files in one request; items are independent, one failure never rolls back the others
// @Tags 		assets
// @Accept 		mpfd
// @Produce 	json
// @Param 		files 	 formData file   true "Files, paired positionally with requests"
// @Param 		requests formData string true "JSON-encoded batch request"
// @Success 	200 {object} dto.BatchResult
// @Failure 	207 {object} dto.BatchResult "Partial failure"
// @Failure 	400 {object} response.Error "Malformed batch"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/batch [post]
func (r *V1) uploadBatch(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "multipart form is required")
	}

	requestsJSON := ctx.FormValue("requests")
	if requestsJSON == "" {
		return errorResponse(ctx, http.StatusBadRequest, "requests field is required")
	}

	var req dto.BatchRequest
	if err := json.Unmarshal([]byte(requestsJSON), &req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "requests field is not valid JSON")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return errorResponse(ctx, http.StatusBadRequest, "at least one file is required")
	}
	if len(headers) != len(req.Uploads) {
		return errorResponse(ctx, http.StatusBadRequest, "files and requests must have the same length")
	}

	files := make([]dto.UploadFile, len(headers))
	for i, header := range headers {
		file, err := readUploadFile(header)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, err.Error())
		}
		files[i] = file
	}

	result, err := r.batch.UploadBatch(ctx.UserContext(), files, req, actorFromCtx(ctx))
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadBatch")

		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusMultiStatus
	}

	return ctx.Status(status).JSON(result)
}
