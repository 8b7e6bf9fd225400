package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/app/repositories"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
)

func interviewServiceFixture(t *testing.T) (*InterviewService, *fakeAssignmentStore) {
	t.Helper()

	interviews := newFakeInterviewStore()
	assignments := newFakeAssignmentStore()
	users := newFakeUserStore()

	users.add(&models.User{ID: 1, Email: "socio@integria.org", FirstName: "Ane", LastName: "Etxeberria", RoleType: models.RoleMember, IsActive: true})
	users.add(&models.User{ID: 2, Email: "otro@integria.org", FirstName: "Jon", LastName: "Iriarte", RoleType: models.RoleMember, IsActive: true})
	users.add(&models.User{ID: 20, Email: "monitor@integria.org", FirstName: "Nerea", LastName: "Aguirre", RoleType: models.RoleMonitor, IsActive: true})
	users.add(&models.User{ID: 21, Email: "monitor2@integria.org", FirstName: "Iker", LastName: "Lasa", RoleType: models.RoleMonitor, IsActive: true})

	// Monitor 20 is responsible for member 1 only
	_, err := assignments.Create(context.Background(), 20, 1, nil)
	require.NoError(t, err)

	return NewInterviewService(interviews, assignments, users), assignments
}

func TestScheduleInterviewWithAssignedMember(t *testing.T) {
	svc, _ := interviewServiceFixture(t)
	monitor := auth.Actor{UserID: 20, Role: models.RoleMonitor}

	interview, err := svc.ScheduleInterview(context.Background(), monitor, &dto.CreateInterviewRequest{
		MemberID:      1,
		ScheduledDate: "2025-04-10",
		Notes:         "seguimiento trimestral",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20), interview.MonitorID)
	assert.Equal(t, int64(1), interview.MemberID)
	assert.Equal(t, models.InterviewScheduled, interview.Status)
	require.NotNil(t, interview.Monitor)
	assert.Equal(t, "Nerea Aguirre", interview.Monitor.FullName())
}

func TestScheduleInterviewUnassignedMember(t *testing.T) {
	svc, _ := interviewServiceFixture(t)
	monitor := auth.Actor{UserID: 20, Role: models.RoleMonitor}

	_, err := svc.ScheduleInterview(context.Background(), monitor, &dto.CreateInterviewRequest{
		MemberID:      2,
		ScheduledDate: "2025-04-10",
	})
	assert.ErrorIs(t, err, apperrors.ErrMemberNotAssigned)
}

func TestScheduleInterviewForAnotherMonitor(t *testing.T) {
	svc, _ := interviewServiceFixture(t)

	other := int64(21)

	// A monitor cannot schedule on another monitor's behalf
	monitor := auth.Actor{UserID: 20, Role: models.RoleMonitor}
	_, err := svc.ScheduleInterview(context.Background(), monitor, &dto.CreateInterviewRequest{
		MemberID:      1,
		MonitorID:     &other,
		ScheduledDate: "2025-04-10",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// A manager can, regardless of assignments
	manager := auth.Actor{UserID: 99, Role: models.RoleManager}
	interview, err := svc.ScheduleInterview(context.Background(), manager, &dto.CreateInterviewRequest{
		MemberID:      2,
		MonitorID:     &other,
		ScheduledDate: "2025-04-10",
	})
	require.NoError(t, err)
	assert.Equal(t, other, interview.MonitorID)
}

func TestScheduleInterviewDeniedRoles(t *testing.T) {
	svc, _ := interviewServiceFixture(t)

	for _, role := range []models.RoleType{models.RoleMember, models.RoleProfessor} {
		actor := auth.Actor{UserID: 1, Role: role}
		_, err := svc.ScheduleInterview(context.Background(), actor, &dto.CreateInterviewRequest{
			MemberID:      1,
			ScheduledDate: "2025-04-10",
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "role %s", role)
	}
}

func TestScheduleInterviewBadDate(t *testing.T) {
	svc, _ := interviewServiceFixture(t)
	monitor := auth.Actor{UserID: 20, Role: models.RoleMonitor}

	_, err := svc.ScheduleInterview(context.Background(), monitor, &dto.CreateInterviewRequest{
		MemberID:      1,
		ScheduledDate: "10/04/2025",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdateInterviewOwnership(t *testing.T) {
	svc, _ := interviewServiceFixture(t)
	monitor := auth.Actor{UserID: 20, Role: models.RoleMonitor}

	interview, err := svc.ScheduleInterview(context.Background(), monitor, &dto.CreateInterviewRequest{
		MemberID:      1,
		ScheduledDate: "2025-04-10",
	})
	require.NoError(t, err)

	completed := "completed"

	// Another monitor cannot touch it
	other := auth.Actor{UserID: 21, Role: models.RoleMonitor}
	_, err = svc.UpdateInterview(context.Background(), other, interview.ID, &dto.UpdateInterviewRequest{Status: &completed})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The owning monitor completes it through the status field
	updated, err := svc.UpdateInterview(context.Background(), monitor, interview.ID, &dto.UpdateInterviewRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, updated.Status)

	bogus := "postponed"
	_, err = svc.UpdateInterview(context.Background(), monitor, interview.ID, &dto.UpdateInterviewRequest{Status: &bogus})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDeleteInterviewOwnership(t *testing.T) {
	svc, _ := interviewServiceFixture(t)
	monitor := auth.Actor{UserID: 20, Role: models.RoleMonitor}

	interview, err := svc.ScheduleInterview(context.Background(), monitor, &dto.CreateInterviewRequest{
		MemberID:      1,
		ScheduledDate: "2025-04-10",
	})
	require.NoError(t, err)

	other := auth.Actor{UserID: 21, Role: models.RoleMonitor}
	assert.ErrorIs(t, svc.DeleteInterview(context.Background(), other, interview.ID), apperrors.ErrPermissionDenied)
	assert.NoError(t, svc.DeleteInterview(context.Background(), monitor, interview.ID))
}

func TestListInterviewsScoping(t *testing.T) {
	svc, assignments := interviewServiceFixture(t)
	manager := auth.Actor{UserID: 99, Role: models.RoleManager}

	_, err := assignments.Create(context.Background(), 21, 2, nil)
	require.NoError(t, err)

	monitor20 := int64(20)
	monitor21 := int64(21)
	for _, req := range []*dto.CreateInterviewRequest{
		{MemberID: 1, MonitorID: &monitor20, ScheduledDate: "2025-04-10"},
		{MemberID: 2, MonitorID: &monitor21, ScheduledDate: "2025-04-11"},
	} {
		_, err := svc.ScheduleInterview(context.Background(), manager, req)
		require.NoError(t, err)
	}

	// A manager sees everything
	all, err := svc.ListInterviews(context.Background(), manager, repositories.InterviewFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A monitor is pinned to their own interviews even when filtering
	monitor := auth.Actor{UserID: 20, Role: models.RoleMonitor}
	own, err := svc.ListInterviews(context.Background(), monitor, repositories.InterviewFilter{MonitorID: &monitor21})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, monitor20, own[0].MonitorID)

	// A member only sees interviews they are the subject of
	member := auth.Actor{UserID: 2, Role: models.RoleMember}
	subject, err := svc.ListInterviews(context.Background(), member, repositories.InterviewFilter{})
	require.NoError(t, err)
	require.Len(t, subject, 1)
	assert.Equal(t, int64(2), subject[0].MemberID)

	// Professors have no interview surface at all
	professor := auth.Actor{UserID: 10, Role: models.RoleProfessor}
	_, err = svc.ListInterviews(context.Background(), professor, repositories.InterviewFilter{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
