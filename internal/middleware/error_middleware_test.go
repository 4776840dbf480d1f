package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamthree/jobapply/internal/app/models/dto"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validation", apperrors.NewValidationError("Role name is required"), http.StatusBadRequest, "ValidationError"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "UnauthorizedError"},
		{"forbidden", apperrors.NewForbiddenError("You can only withdraw your own applications"), http.StatusForbidden, "ForbiddenError"},
		{"job role not found", apperrors.ErrJobRoleNotFound, http.StatusNotFound, "NotFoundError"},
		{"application not found", apperrors.ErrApplicationNotFound, http.StatusNotFound, "NotFoundError"},
		{"conflict", apperrors.NewConflictError("Email already registered"), http.StatusConflict, "ConflictError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.category, body.Error)
		})
	}
}

func TestHandleAPIErrorKeepsMessages(t *testing.T) {
	_, body := handleError(t, apperrors.NewValidationError("No updates provided"))
	assert.Equal(t, "No updates provided", body.Message)
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	status, body := handleError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "InternalError", body.Error)
	assert.Equal(t, "An unexpected error occurred", body.Message)
}
