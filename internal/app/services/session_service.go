package services

import (
	"context"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
	"github.com/etchegaray/integria-connect/internal/pkg/helpers"
	"github.com/etchegaray/integria-connect/internal/pkg/logger"
	"github.com/etchegaray/integria-connect/internal/pkg/validation"
)

// SessionService handles course session operations, including bulk
// generation from the course recurrence rule
type SessionService struct {
	courseRepo  CourseStore
	sessionRepo SessionStore
}

// NewSessionService creates a new SessionService
func NewSessionService(courseRepo CourseStore, sessionRepo SessionStore) *SessionService {
	return &SessionService{
		courseRepo:  courseRepo,
		sessionRepo: sessionRepo,
	}
}

// ListSessions retrieves all sessions of a course in chronological order
func (s *SessionService) ListSessions(ctx context.Context, courseID int64) ([]*models.Session, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.sessionRepo.ListByCourse(ctx, courseID)
}

// GenerateSessions expands the course recurrence rule into concrete
// sessions. It only runs against a course with zero sessions: once any
// session exists, generation is rejected outright and the existing
// rows are left untouched. The whole batch is written in one
// transaction.
func (s *SessionService) GenerateSessions(ctx context.Context, actor auth.Actor, courseID int64) (*dto.GenerateSessionsResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !canManageCourse(actor, course) {
		return nil, apperrors.ErrPermissionDenied
	}

	existing, err := s.sessionRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperrors.ErrSessionsAlreadyGenerated
	}

	slots, err := ExpandSchedule(course)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, apperrors.ErrNoSessionsInRange
	}

	sessions := make([]*models.Session, 0, len(slots))
	for _, slot := range slots {
		sessions = append(sessions, &models.Session{
			CourseID:    courseID,
			SessionDate: slot.Date,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
		})
	}

	if err := s.sessionRepo.CreateBatch(ctx, sessions); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseID", courseID).Int("generated", len(sessions)).Msg("Course sessions generated")

	created, err := s.sessionRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateSessionsResponse{
		Generated: len(created),
		Sessions:  created,
	}, nil
}

// AddSession creates a single session by hand, outside the bulk
// generation path
func (s *SessionService) AddSession(ctx context.Context, actor auth.Actor, courseID int64, req *dto.CreateSessionRequest) (*models.Session, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !canManageCourse(actor, course) {
		return nil, apperrors.ErrPermissionDenied
	}

	sessionDate, err := helpers.ParseDate(req.SessionDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("session date must use the 2006-01-02 format")
	}
	if !validation.ValidClock(req.StartTime) || !validation.ValidClock(req.EndTime) {
		return nil, apperrors.NewBadRequestError("session times must use the 24-hour HH:MM format")
	}

	session := &models.Session{
		CourseID:    courseID,
		SessionDate: sessionDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if req.Location != "" {
		session.Location = &req.Location
	}
	if req.Notes != "" {
		session.Notes = &req.Notes
	}

	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	return s.sessionRepo.GetByID(ctx, id)
}

// UpdateSession partially updates a session; nil fields are left
// untouched. Cancelling goes through here via isCancelled, keeping the
// row for history.
func (s *SessionService) UpdateSession(ctx context.Context, actor auth.Actor, sessionID int64, req *dto.UpdateSessionRequest) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, session.CourseID)
	if err != nil {
		return nil, err
	}

	if !canManageCourse(actor, course) {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.SessionDate != nil {
		sessionDate, err := helpers.ParseDate(*req.SessionDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("session date must use the 2006-01-02 format")
		}
		session.SessionDate = sessionDate
	}
	if req.StartTime != nil {
		if !validation.ValidClock(*req.StartTime) {
			return nil, apperrors.NewBadRequestError("start time must use the 24-hour HH:MM format")
		}
		session.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if !validation.ValidClock(*req.EndTime) {
			return nil, apperrors.NewBadRequestError("end time must use the 24-hour HH:MM format")
		}
		session.EndTime = *req.EndTime
	}
	if req.Location != nil {
		session.Location = req.Location
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	if req.IsCancelled != nil {
		session.IsCancelled = *req.IsCancelled
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return s.sessionRepo.GetByID(ctx, sessionID)
}

// DeleteSession hard-deletes a session and its attendance rows
func (s *SessionService) DeleteSession(ctx context.Context, actor auth.Actor, sessionID int64) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	course, err := s.courseRepo.GetByID(ctx, session.CourseID)
	if err != nil {
		return err
	}

	if !canManageCourse(actor, course) {
		return apperrors.ErrPermissionDenied
	}

	return s.sessionRepo.Delete(ctx, sessionID)
}
