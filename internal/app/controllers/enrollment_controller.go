package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/app/services"
	"github.com/etchegaray/integria-connect/internal/middleware"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Enroll adds a user to a course
// @Summary Enroll in a course
// @Description Enrolls the caller, or another user when a manager sets userId. Capacity never blocks; duplicates return 409.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.EnrollRequest false "Optional target user"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Security BearerAuth
// @Router /courses/{id}/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// Body is optional for self-enrollment
	var req dto.EnrollRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), actor, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: enrollment, Timestamp: time.Now()})
}

// ListEnrollments lists a course's enrollments with capacity figures
// @Summary List course enrollments
// @Tags enrollments
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /courses/{id}/enrollments [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.ListEnrollments(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: enrollments, Timestamp: time.Now()})
}

// Withdraw removes an enrollment
// @Summary Withdraw an enrollment
// @Description A user withdraws themselves; managers may withdraw anyone
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) Withdraw(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.enrollmentService.Withdraw(ctx.Request.Context(), actor, enrollmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Enrollment withdrawn"}, Timestamp: time.Now()})
}
