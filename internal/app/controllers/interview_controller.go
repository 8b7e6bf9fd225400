package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/app/repositories"
	"github.com/etchegaray/integria-connect/internal/app/services"
	"github.com/etchegaray/integria-connect/internal/middleware"
)

// InterviewController handles interview endpoints
type InterviewController struct {
	interviewService *services.InterviewService
	logger           zerolog.Logger
}

// NewInterviewController creates a new InterviewController
func NewInterviewController(interviewService *services.InterviewService, logger zerolog.Logger) *InterviewController {
	return &InterviewController{
		interviewService: interviewService,
		logger:           logger,
	}
}

// ScheduleInterview creates an interview
// @Summary Schedule an interview
// @Description Monitors schedule with their assigned members only; managers are unrestricted
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body dto.CreateInterviewRequest true "Interview"
// @Success 201 {object} dto.APIResponse{data=models.Interview}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Member not assigned to this monitor"
// @Security BearerAuth
// @Router /interviews [post]
func (c *InterviewController) ScheduleInterview(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	interview, err := c.interviewService.ScheduleInterview(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: interview, Timestamp: time.Now()})
}

// ListInterviews lists interviews scoped to the caller's role
// @Summary List interviews
// @Description Managers list freely; monitors see their own; members see interviews they are the subject of
// @Tags interviews
// @Produce json
// @Param monitorId query int false "Monitor filter (managers only)"
// @Param memberId query int false "Member filter (managers only)"
// @Param status query string false "Status filter" Enums(scheduled, completed, cancelled)
// @Success 200 {object} dto.APIResponse{data=[]models.Interview}
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /interviews [get]
func (c *InterviewController) ListInterviews(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	var filter repositories.InterviewFilter

	if monitorParam := ctx.Query("monitorId"); monitorParam != "" {
		id, err := strconv.ParseInt(monitorParam, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid monitorId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.MonitorID = &id
	}
	if memberParam := ctx.Query("memberId"); memberParam != "" {
		id, err := strconv.ParseInt(memberParam, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid memberId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.MemberID = &id
	}
	if statusParam := ctx.Query("status"); statusParam != "" {
		if !models.ValidInterviewStatus(statusParam) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		status := models.InterviewStatus(statusParam)
		filter.Status = &status
	}

	interviews, err := c.interviewService.ListInterviews(ctx.Request.Context(), actor, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: interviews, Timestamp: time.Now()})
}

// UpdateInterview partially updates an interview
// @Summary Update an interview
// @Description Completing or cancelling goes through the status field
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path int true "Interview ID"
// @Param request body dto.UpdateInterviewRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Interview}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /interviews/{id} [put]
func (c *InterviewController) UpdateInterview(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	interview, err := c.interviewService.UpdateInterview(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: interview, Timestamp: time.Now()})
}

// DeleteInterview removes an interview
// @Summary Delete an interview
// @Tags interviews
// @Produce json
// @Param id path int true "Interview ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /interviews/{id} [delete]
func (c *InterviewController) DeleteInterview(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.interviewService.DeleteInterview(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Interview deleted"}, Timestamp: time.Now()})
}
