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

// SessionController handles course session endpoints
type SessionController struct {
	sessionService *services.SessionService
	logger         zerolog.Logger
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService *services.SessionService, logger zerolog.Logger) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		logger:         logger,
	}
}

// ListSessions lists a course's sessions in chronological order
// @Summary List course sessions
// @Tags sessions
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Session}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /courses/{id}/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sessions, err := c.sessionService.ListSessions(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: sessions, Timestamp: time.Now()})
}

// GenerateSessions expands the course recurrence rule into sessions
// @Summary Generate course sessions
// @Description Expands the weekly schedule into concrete sessions. Only runs on a course with zero sessions.
// @Tags sessions
// @Produce json
// @Param id path int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateSessionsResponse}
// @Failure 400 {object} dto.ErrorResponse "Course has no complete schedule"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Course already has sessions"
// @Failure 422 {object} dto.ErrorResponse "Schedule matches no date in range"
// @Security BearerAuth
// @Router /courses/{id}/sessions/generate [post]
func (c *SessionController) GenerateSessions(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.sessionService.GenerateSessions(ctx.Request.Context(), actor, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: result, Timestamp: time.Now()})
}

// AddSession creates one session by hand
// @Summary Add a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.CreateSessionRequest true "Session fields"
// @Success 201 {object} dto.APIResponse{data=models.Session}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /courses/{id}/sessions [post]
func (c *SessionController) AddSession(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	session, err := c.sessionService.AddSession(ctx.Request.Context(), actor, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: session, Timestamp: time.Now()})
}

// UpdateSession partially updates a session
// @Summary Update a session
// @Description Partial update; cancelling a session goes through isCancelled and keeps the row
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body dto.UpdateSessionRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Session}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id} [put]
func (c *SessionController) UpdateSession(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	session, err := c.sessionService.UpdateSession(ctx.Request.Context(), actor, sessionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: session, Timestamp: time.Now()})
}

// DeleteSession hard-deletes a session
// @Summary Delete a session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	actor, ok := middleware.RequireActor(ctx)
	if !ok {
		return
	}

	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.sessionService.DeleteSession(ctx.Request.Context(), actor, sessionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Session deleted"}, Timestamp: time.Now()})
}
