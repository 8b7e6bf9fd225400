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

	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return recorder.Code, &body
}

func TestHandleAPIErrorSentinelMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"sessions already generated", apperrors.ErrSessionsAlreadyGenerated, http.StatusConflict, dto.ErrorCodeSessionsExist},
		{"no sessions in range", apperrors.ErrNoSessionsInRange, http.StatusUnprocessableEntity, dto.ErrorCodeNoSessionsInRange},
		{"missing schedule", apperrors.ErrMissingSchedule, http.StatusBadRequest, dto.ErrorCodeScheduleMissing},
		{"duplicate enrollment", apperrors.ErrDuplicateEnrollment, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.False(t, body.Success)
		})
	}
}

// Unmapped errors answer 500 with the original message in the
// envelope, not a fixed placeholder.
func TestHandleAPIErrorPassesUnknownMessageThrough(t *testing.T) {
	status, body := handleError(t, errors.New("connection refused: backend unreachable"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, dto.ErrorCodeInternalServer, body.Error.Code)
	assert.Equal(t, "connection refused: backend unreachable", body.Error.Message)
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := apperrors.NewBadRequestError("session times must use the 24-hour HH:MM format")

	status, body := handleError(t, wrapped)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "session times must use the 24-hour HH:MM format", body.Error.Message)
}

func TestHandleAPIErrorForbiddenMessage(t *testing.T) {
	status, body := handleError(t, apperrors.NewForbiddenError("only managers may delete courses"))

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, dto.ErrorCodeForbidden, body.Error.Code)
	assert.Equal(t, "only managers may delete courses", body.Error.Message)

	// Bare sentinel keeps the generic message
	_, bare := handleError(t, apperrors.ErrPermissionDenied)
	assert.Equal(t, "Permission denied", bare.Error.Message)
}
