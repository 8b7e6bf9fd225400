package services

import (
	"context"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
	"github.com/etchegaray/integria-connect/internal/pkg/logger"
)

// AssignmentService handles monitor to member assignments
type AssignmentService struct {
	assignmentRepo AssignmentStore
	userRepo       UserStore
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(assignmentRepo AssignmentStore, userRepo UserStore) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
	}
}

// CreateAssignment pairs a monitor with a member
func (s *AssignmentService) CreateAssignment(ctx context.Context, actor auth.Actor, req *dto.CreateAssignmentRequest) (*models.MonitorAssignment, error) {
	if !auth.Can(actor, auth.PermManageAssignments) {
		return nil, apperrors.ErrPermissionDenied
	}

	monitor, err := s.userRepo.GetByID(ctx, req.MonitorID)
	if err != nil {
		return nil, err
	}
	if monitor.RoleType != models.RoleMonitor {
		return nil, apperrors.NewBadRequestError("assignee must have the MONITOR role")
	}

	member, err := s.userRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if member.RoleType != models.RoleMember {
		return nil, apperrors.NewBadRequestError("assigned user must have the MEMBER role")
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	id, err := s.assignmentRepo.Create(ctx, req.MonitorID, req.MemberID, notes)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("monitorID", req.MonitorID).Int64("memberID", req.MemberID).Msg("Monitor assignment created")

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	assignment.Monitor = monitor
	assignment.Member = member

	return assignment, nil
}

// DeleteAssignment removes an assignment
func (s *AssignmentService) DeleteAssignment(ctx context.Context, actor auth.Actor, id int64) error {
	if !auth.Can(actor, auth.PermManageAssignments) {
		return apperrors.ErrPermissionDenied
	}

	return s.assignmentRepo.Delete(ctx, id)
}

// ListAssignments retrieves assignments joined with user profiles.
// Managers see everything, optionally narrowed by monitor; monitors
// only ever see their own.
func (s *AssignmentService) ListAssignments(ctx context.Context, actor auth.Actor, monitorID *int64) ([]*models.MonitorAssignment, error) {
	switch actor.Role {
	case models.RoleManager:
		// Free to filter or not
	case models.RoleMonitor:
		own := actor.UserID
		monitorID = &own
	default:
		return nil, apperrors.ErrPermissionDenied
	}

	assignments, err := s.assignmentRepo.List(ctx, monitorID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(assignments)*2)
	for _, assignment := range assignments {
		userIDs = append(userIDs, assignment.MonitorID, assignment.MemberID)
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	for _, assignment := range assignments {
		assignment.Monitor = users[assignment.MonitorID]
		assignment.Member = users[assignment.MemberID]
	}

	return assignments, nil
}
