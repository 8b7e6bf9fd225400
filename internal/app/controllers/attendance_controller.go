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

// AttendanceController handles per-session attendance endpoints
type AttendanceController struct {
	attendanceService *services.AttendanceService
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, logger zerolog.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// SetAttendance upserts one member's status for a session
// @Summary Set attendance status
// @Description Records or overwrites the attendance status of an enrolled member. Last writer wins.
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body dto.SetAttendanceRequest true "Attendance status"
// @Success 200 {object} dto.APIResponse{data=models.AttendanceRecord}
// @Failure 400 {object} dto.ErrorResponse "Cancelled session or user not enrolled"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id}/attendance [put]
func (c *AttendanceController) SetAttendance(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	record, err := c.attendanceService.SetStatus(ctx.Request.Context(), actor, sessionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: record, Timestamp: time.Now()})
}

// ListAttendance returns the attendance sheet of a session
// @Summary List session attendance
// @Description Every enrolled member with their status; unrecorded members read "pending"
// @Tags attendance
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceItem}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id}/attendance [get]
func (c *AttendanceController) ListAttendance(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	items, err := c.attendanceService.ListForSession(ctx.Request.Context(), actor, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: items, Timestamp: time.Now()})
}

// GetAttendance returns one member's status for a session
// @Summary Get one member's attendance
// @Tags attendance
// @Produce json
// @Param id path int true "Session ID"
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceItem}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id}/attendance/{userId} [get]
func (c *AttendanceController) GetAttendance(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	item, err := c.attendanceService.GetStatus(ctx.Request.Context(), actor, sessionID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: item, Timestamp: time.Now()})
}
