package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"registrar/internal/app/models/dto"
	"registrar/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses, surfacing the
// CustomError message when one is present.
func HandleAPIError(c *gin.Context, err error) {
	message := ""
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message, "Resource not found")
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, message, "Resource conflict")
	case errors.Is(err, apperrors.ErrUnprocessableContent):
		respondError(c, http.StatusUnprocessableEntity, dto.ErrorCodeUnprocessableContent, message, "Unprocessable content")
	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message, "Validation failed")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, message, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, message, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, message, "Invalid token")
	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "", "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message, fallback string) {
	if message == "" {
		message = fallback
	}

	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
