package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
	"github.com/etchegaray/integria-connect/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Every
// controller funnels its errors through here so each sentinel has
// exactly one status code and error code.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Schedule generation
	case errors.Is(err, apperrors.ErrSessionsAlreadyGenerated):
		respondError(c, http.StatusConflict, dto.ErrorCodeSessionsExist, "Course already has sessions; generation is rejected")
	case errors.Is(err, apperrors.ErrNoSessionsInRange):
		respondError(c, http.StatusUnprocessableEntity, dto.ErrorCodeNoSessionsInRange, "Schedule produces no sessions in the course date range")
	case errors.Is(err, apperrors.ErrMissingSchedule):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeScheduleMissing, "Course has no complete schedule to expand")

	// Duplicates, recoverable by design
	case errors.Is(err, apperrors.ErrDuplicateEnrollment):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "User is already enrolled in this course")
	case errors.Is(err, apperrors.ErrDuplicateAssignment):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Member is already assigned to this monitor")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOrDefault(err, "Conflict"))

	// Not found
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Session not found")
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enrollment not found")
	case errors.Is(err, apperrors.ErrAssignmentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Assignment not found")
	case errors.Is(err, apperrors.ErrInterviewNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Interview not found")
	case errors.Is(err, apperrors.ErrInstructorNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Instructor not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOrDefault(err, "Resource not found"))

	// Authorization
	case errors.Is(err, apperrors.ErrMemberNotAssigned):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Member is not assigned to this monitor")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOrDefault(err, "Permission denied"))

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	// Validation
	case errors.Is(err, apperrors.ErrInvalidRole):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid role")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOrDefault(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOrDefault(err, "Bad request"))

	default:
		// Generic backend failures carry their message through to the
		// caller, they are not masked behind a fixed string.
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, err.Error())
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOrDefault surfaces the wrapped CustomError message when one
// was attached, otherwise the fallback.
func messageOrDefault(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
