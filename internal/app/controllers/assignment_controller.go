package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/app/services"
	"github.com/etchegaray/integria-connect/internal/middleware"
)

// AssignmentController handles monitor assignment endpoints
type AssignmentController struct {
	assignmentService *services.AssignmentService
	logger            zerolog.Logger
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService, logger zerolog.Logger) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// CreateAssignment pairs a monitor with a member
// @Summary Create a monitor assignment
// @Description Manager-only; duplicates return 409
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body dto.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} dto.APIResponse{data=models.MonitorAssignment}
// @Failure 400 {object} dto.ErrorResponse "Wrong roles"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already assigned"
// @Security BearerAuth
// @Router /assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: assignment, Timestamp: time.Now()})
}

// ListAssignments lists assignments
// @Summary List monitor assignments
// @Description Managers list all, optionally narrowed by monitorId; monitors see their own
// @Tags assignments
// @Produce json
// @Param monitorId query int false "Monitor filter (managers only)"
// @Success 200 {object} dto.APIResponse{data=[]models.MonitorAssignment}
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	var monitorID *int64
	if monitorParam := ctx.Query("monitorId"); monitorParam != "" {
		id, err := strconv.ParseInt(monitorParam, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid monitorId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		monitorID = &id
	}

	assignments, err := c.assignmentService.ListAssignments(ctx.Request.Context(), actor, monitorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: assignments, Timestamp: time.Now()})
}

// DeleteAssignment removes an assignment
// @Summary Delete a monitor assignment
// @Tags assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /assignments/{id} [delete]
func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.assignmentService.DeleteAssignment(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Assignment deleted"}, Timestamp: time.Now()})
}
