package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/stitchline/asset-service/internal/dto"
	"github.com/stitchline/asset-service/internal/entity"
)

// hard cap on a single multipart file read, policies enforce the real limits
const maxMultipartFileSize = 100 * 1024 * 1024

func actorFromCtx(ctx *fiber.Ctx) dto.Actor {
	return dto.Actor{
		UserID:    ctx.Get("X-User-ID"),
		SessionID: ctx.Get("X-Session-ID"),
		ClientIP:  ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
		TraceID:   ctx.Get("X-Request-ID"),
	}
}

func uploadRequestFromForm(ctx *fiber.Ctx) (dto.UploadRequest, error) {
	isPrimary, _ := strconv.ParseBool(ctx.FormValue("is_primary"))
	skipEntityCheck, _ := strconv.ParseBool(ctx.FormValue("skip_entity_check"))
	ordering, _ := strconv.Atoi(ctx.FormValue("ordering"))

	var custom map[string]string
	if raw := ctx.FormValue("custom_metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &custom); err != nil {
			return dto.UploadRequest{}, errors.New("custom_metadata is not a valid JSON object")
		}
	}

	var allowedRoles []string
	if raw := ctx.FormValue("allowed_roles"); raw != "" {
		for _, role := range strings.Split(raw, ",") {
			if role = strings.TrimSpace(role); role != "" {
				allowedRoles = append(allowedRoles, role)
			}
		}
	}

	return dto.UploadRequest{
		EntityType:      entity.EntityType(ctx.FormValue("entity_type")),
		EntityID:        ctx.FormValue("entity_id"),
		Purpose:         entity.ImagePurpose(ctx.FormValue("image_purpose")),
		Profile:         ctx.FormValue("processing_profile"),
		AltText:         ctx.FormValue("alt_text"),
		Caption:         ctx.FormValue("caption"),
		IsPrimary:       isPrimary,
		Ordering:        ordering,
		AccessLevel:     entity.AccessLevel(ctx.FormValue("access_level")),
		AllowedRoles:    allowedRoles,
		SkipEntityCheck: skipEntityCheck,
		Custom:          custom,
	}, nil
}

func readUploadFile(header *multipart.FileHeader) (dto.UploadFile, error) {
	if header.Size == 0 {
		return dto.UploadFile{}, fmt.Errorf("file %q is empty", header.Filename)
	}
	if header.Size > maxMultipartFileSize {
		return dto.UploadFile{}, fmt.Errorf("file %q exceeds %d bytes", header.Filename, maxMultipartFileSize)
	}

	f, err := header.Open()
	if err != nil {
		return dto.UploadFile{}, fmt.Errorf("header.Open: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return dto.UploadFile{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	return dto.UploadFile{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}
