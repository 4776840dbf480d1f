package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamthree/jobapply/internal/app/models/dto"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
	"github.com/teamthree/jobapply/internal/pkg/logger"
)

// errorCategory maps an error to an HTTP status and the stable category
// string of the error envelope.
func errorCategory(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, "ValidationError"
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusUnauthorized, "UnauthorizedError"
	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrNoOpenPositions),
		errors.Is(err, apperrors.ErrNotApplicationOwner):
		return http.StatusForbidden, "ForbiddenError"
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrJobRoleNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound, "NotFoundError"
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, "ConflictError"
	default:
		return http.StatusInternalServerError, "InternalError"
	}
}

// HandleAPIError translates a service error into the API's error envelope.
// Unexpected errors are logged with their cause and hidden from the client.
func HandleAPIError(c *gin.Context, err error) {
	status, category := errorCategory(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		message = "An unexpected error occurred"
	}

	c.JSON(status, dto.ErrorResponse{Error: category, Message: message})
}
