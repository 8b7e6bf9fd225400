package services

import (
	"context"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
)

// AttendanceService handles per-session attendance. A missing record
// reads as "pending"; writes are single-statement upserts so
// concurrent markers converge on one row.
type AttendanceService struct {
	courseRepo     CourseStore
	sessionRepo    SessionStore
	enrollmentRepo EnrollmentStore
	attendanceRepo AttendanceStore
	userRepo       UserStore
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	courseRepo CourseStore,
	sessionRepo SessionStore,
	enrollmentRepo EnrollmentStore,
	attendanceRepo AttendanceStore,
	userRepo UserStore,
) *AttendanceService {
	return &AttendanceService{
		courseRepo:     courseRepo,
		sessionRepo:    sessionRepo,
		enrollmentRepo: enrollmentRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

// resolveSession loads a session and its course, and checks that the
// actor may record attendance for that course.
func (s *AttendanceService) resolveSession(ctx context.Context, actor auth.Actor, sessionID int64) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, session.CourseID)
	if err != nil {
		return nil, err
	}

	if !auth.Can(actor, auth.PermRecordAttendance) {
		return nil, apperrors.ErrPermissionDenied
	}
	if !auth.IsManager(actor) {
		if course.InstructorID == nil || *course.InstructorID != actor.UserID {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	return session, nil
}

// SetStatus upserts the attendance status for one enrolled member of
// a session. Re-marking overwrites, last writer wins.
func (s *AttendanceService) SetStatus(ctx context.Context, actor auth.Actor, sessionID int64, req *dto.SetAttendanceRequest) (*models.AttendanceRecord, error) {
	session, err := s.resolveSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsCancelled {
		return nil, apperrors.NewBadRequestError("cannot mark attendance on a cancelled session")
	}

	// Binding already restricts the status; re-check here so the
	// service holds the invariant on its own.
	if !models.ValidAttendanceStatus(req.Status) {
		return nil, apperrors.NewBadRequestError("unknown attendance status")
	}

	enrolled, err := s.enrollmentRepo.IsUserEnrolled(ctx, req.UserID, session.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperrors.NewBadRequestError("user is not enrolled in this course")
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	return s.attendanceRepo.Upsert(ctx, sessionID, req.UserID, models.AttendanceStatus(req.Status), notes)
}

// GetStatus retrieves one member's status for a session, defaulting to
// "pending" when nothing has been recorded.
func (s *AttendanceService) GetStatus(ctx context.Context, actor auth.Actor, sessionID, userID int64) (*dto.AttendanceItem, error) {
	session, err := s.resolveSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &dto.AttendanceItem{
		UserID:   userID,
		FullName: user.FullName(),
		Status:   string(models.AttendancePending),
	}

	record, err := s.attendanceRepo.Get(ctx, session.ID, userID)
	if err != nil {
		return nil, err
	}
	if record != nil {
		item.Status = string(record.Status)
		item.Notes = record.Notes
	}

	return item, nil
}

// ListForSession retrieves the attendance sheet of a session: every
// enrolled member, with recorded statuses merged in and the rest
// reading "pending".
func (s *AttendanceService) ListForSession(ctx context.Context, actor auth.Actor, sessionID int64) ([]dto.AttendanceItem, error) {
	session, err := s.resolveSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, session.CourseID)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(enrollments))
	for _, enrollment := range enrollments {
		userIDs = append(userIDs, enrollment.UserID)
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AttendanceItem, 0, len(enrollments))
	for _, enrollment := range enrollments {
		item := dto.AttendanceItem{
			UserID: enrollment.UserID,
			Status: string(models.AttendancePending),
		}
		if user, ok := users[enrollment.UserID]; ok {
			item.FullName = user.FullName()
		}
		if record, ok := records[enrollment.UserID]; ok {
			item.Status = string(record.Status)
			item.Notes = record.Notes
		}
		items = append(items, item)
	}

	return items, nil
}
