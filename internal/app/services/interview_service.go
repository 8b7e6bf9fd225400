package services

import (
	"context"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/app/repositories"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
	"github.com/etchegaray/integria-connect/internal/pkg/helpers"
)

// InterviewService handles monitor/member interviews. Monitors only
// operate within their assigned members; managers are unrestricted.
type InterviewService struct {
	interviewRepo  InterviewStore
	assignmentRepo AssignmentStore
	userRepo       UserStore
}

// NewInterviewService creates a new InterviewService
func NewInterviewService(interviewRepo InterviewStore, assignmentRepo AssignmentStore, userRepo UserStore) *InterviewService {
	return &InterviewService{
		interviewRepo:  interviewRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
	}
}

// ScheduleInterview creates an interview. A monitor schedules for
// themselves, and only with members assigned to them; a manager may
// schedule on behalf of any monitor.
func (s *InterviewService) ScheduleInterview(ctx context.Context, actor auth.Actor, req *dto.CreateInterviewRequest) (*models.Interview, error) {
	if !auth.Can(actor, auth.PermScheduleInterviews) {
		return nil, apperrors.ErrPermissionDenied
	}

	monitorID := actor.UserID
	if req.MonitorID != nil {
		monitorID = *req.MonitorID
	}

	if !auth.IsManager(actor) {
		if monitorID != actor.UserID {
			return nil, apperrors.ErrPermissionDenied
		}
		assigned, err := s.assignmentRepo.IsMemberAssigned(ctx, monitorID, req.MemberID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, apperrors.ErrMemberNotAssigned
		}
	}

	monitor, err := s.userRepo.GetByID(ctx, monitorID)
	if err != nil {
		return nil, err
	}
	member, err := s.userRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	scheduledDate, err := helpers.ParseDate(req.ScheduledDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("scheduled date must use the 2006-01-02 format")
	}

	interview := &models.Interview{
		MemberID:      req.MemberID,
		MonitorID:     monitorID,
		ScheduledDate: scheduledDate,
		Status:        models.InterviewScheduled,
	}
	if req.Notes != "" {
		interview.Notes = &req.Notes
	}

	id, err := s.interviewRepo.Create(ctx, interview)
	if err != nil {
		return nil, err
	}

	created, err := s.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	created.Monitor = monitor
	created.Member = member

	return created, nil
}

// canTouchInterview reports whether the actor may modify an interview:
// its own monitor or a manager.
func canTouchInterview(actor auth.Actor, interview *models.Interview) bool {
	if auth.IsManager(actor) {
		return true
	}
	return actor.Role == models.RoleMonitor && interview.MonitorID == actor.UserID
}

// UpdateInterview partially updates an interview; nil fields are left
// untouched. Completing or cancelling goes through the status field.
func (s *InterviewService) UpdateInterview(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateInterviewRequest) (*models.Interview, error) {
	interview, err := s.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canTouchInterview(actor, interview) {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.ScheduledDate != nil {
		scheduledDate, err := helpers.ParseDate(*req.ScheduledDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("scheduled date must use the 2006-01-02 format")
		}
		interview.ScheduledDate = scheduledDate
	}
	if req.Status != nil {
		if !models.ValidInterviewStatus(*req.Status) {
			return nil, apperrors.NewBadRequestError("unknown interview status")
		}
		interview.Status = models.InterviewStatus(*req.Status)
	}
	if req.Notes != nil {
		interview.Notes = req.Notes
	}

	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		return nil, err
	}

	return s.interviewRepo.GetByID(ctx, id)
}

// DeleteInterview removes an interview
func (s *InterviewService) DeleteInterview(ctx context.Context, actor auth.Actor, id int64) error {
	interview, err := s.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !canTouchInterview(actor, interview) {
		return apperrors.ErrPermissionDenied
	}

	return s.interviewRepo.Delete(ctx, id)
}

// ListInterviews retrieves interviews joined with user profiles.
// Managers list freely, monitors see their own, members see the
// interviews they are the subject of.
func (s *InterviewService) ListInterviews(ctx context.Context, actor auth.Actor, filter repositories.InterviewFilter) ([]*models.Interview, error) {
	switch actor.Role {
	case models.RoleManager:
		// Free to filter or not
	case models.RoleMonitor:
		own := actor.UserID
		filter.MonitorID = &own
	case models.RoleMember:
		own := actor.UserID
		filter.MemberID = &own
	default:
		return nil, apperrors.ErrPermissionDenied
	}

	interviews, err := s.interviewRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(interviews)*2)
	for _, interview := range interviews {
		userIDs = append(userIDs, interview.MonitorID, interview.MemberID)
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	for _, interview := range interviews {
		interview.Monitor = users[interview.MonitorID]
		interview.Member = users[interview.MemberID]
	}

	return interviews, nil
}
