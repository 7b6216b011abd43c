package v1

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/stitchline/asset-service/internal/controller/restapi/v1/response"
	"github.com/stitchline/asset-service/pkg/types/errs"
)

func errorResponse(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(response.Error{Error: msg})
}

func codeResponse(ctx *fiber.Ctx, code errs.Code, msg string) error {
	return ctx.Status(statusFromCode(code)).JSON(response.Error{Error: msg, Code: string(code)})
}

// statusFromCode maps pipeline failure codes onto HTTP statuses.
func statusFromCode(code errs.Code) int {
	switch code {
	case errs.CodeValidationFailed:
		return http.StatusBadRequest
	case errs.CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case errs.CodeInvalidFileType:
		return http.StatusUnsupportedMediaType
	case errs.CodeEntityNotFound:
		return http.StatusNotFound
	case errs.CodePermissionDenied:
		return http.StatusForbidden
	case errs.CodeVirusDetected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
