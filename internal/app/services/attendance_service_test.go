package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
)

type attendanceFixture struct {
	svc         *AttendanceService
	sessions    *fakeSessionStore
	enrollments *fakeEnrollmentStore
	session     *models.Session
	course      *models.Course
	member      *models.User
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()

	courses := newFakeCourseStore()
	sessions := newFakeSessionStore()
	enrollments := newFakeEnrollmentStore()
	attendance := newFakeAttendanceStore()
	users := newFakeUserStore()

	instructorID := int64(10)
	course := courses.add(&models.Course{Title: "Teatro", InstructorID: &instructorID, MaxCapacity: 10})
	session := sessions.add(&models.Session{
		CourseID:    course.ID,
		SessionDate: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "12:00",
	})

	member := users.add(&models.User{ID: 1, Email: "socio@integria.org", FirstName: "Ane", LastName: "Etxeberria", RoleType: models.RoleMember, IsActive: true})
	users.add(&models.User{ID: 10, Email: "profe@integria.org", FirstName: "Luis", LastName: "Ortega", RoleType: models.RoleProfessor, IsActive: true})

	_, err := enrollments.Create(context.Background(), member.ID, course.ID)
	require.NoError(t, err)

	return &attendanceFixture{
		svc:         NewAttendanceService(courses, sessions, enrollments, attendance, users),
		sessions:    sessions,
		enrollments: enrollments,
		session:     session,
		course:      course,
		member:      member,
	}
}

func TestSetAttendanceUpsert(t *testing.T) {
	f := newAttendanceFixture(t)
	professor := auth.Actor{UserID: 10, Role: models.RoleProfessor}

	record, err := f.svc.SetStatus(context.Background(), professor, f.session.ID, &dto.SetAttendanceRequest{
		UserID: f.member.ID,
		Status: "present",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, record.Status)

	// Re-marking overwrites the same row, last writer wins
	record, err = f.svc.SetStatus(context.Background(), professor, f.session.ID, &dto.SetAttendanceRequest{
		UserID: f.member.ID,
		Status: "excused",
		Notes:  "cita medica",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceExcused, record.Status)
	require.NotNil(t, record.Notes)
	assert.Equal(t, "cita medica", *record.Notes)

	item, err := f.svc.GetStatus(context.Background(), professor, f.session.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, "excused", item.Status)
}

func TestSetAttendanceOnCancelledSession(t *testing.T) {
	f := newAttendanceFixture(t)
	professor := auth.Actor{UserID: 10, Role: models.RoleProfessor}

	f.session.IsCancelled = true

	_, err := f.svc.SetStatus(context.Background(), professor, f.session.ID, &dto.SetAttendanceRequest{
		UserID: f.member.ID,
		Status: "present",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSetAttendanceUnknownStatus(t *testing.T) {
	f := newAttendanceFixture(t)
	professor := auth.Actor{UserID: 10, Role: models.RoleProfessor}

	for _, bad := range []string{"", "late", "PRESENT"} {
		_, err := f.svc.SetStatus(context.Background(), professor, f.session.ID, &dto.SetAttendanceRequest{
			UserID: f.member.ID,
			Status: bad,
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest, "status %q", bad)
	}
}

func TestSetAttendanceNotEnrolled(t *testing.T) {
	f := newAttendanceFixture(t)
	professor := auth.Actor{UserID: 10, Role: models.RoleProfessor}

	_, err := f.svc.SetStatus(context.Background(), professor, f.session.ID, &dto.SetAttendanceRequest{
		UserID: 999,
		Status: "present",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSetAttendanceAuthorization(t *testing.T) {
	f := newAttendanceFixture(t)

	tests := []struct {
		name    string
		actor   auth.Actor
		allowed bool
	}{
		{"manager", auth.Actor{UserID: 50, Role: models.RoleManager}, true},
		{"owning professor", auth.Actor{UserID: 10, Role: models.RoleProfessor}, true},
		{"other professor", auth.Actor{UserID: 77, Role: models.RoleProfessor}, false},
		{"monitor", auth.Actor{UserID: 3, Role: models.RoleMonitor}, false},
		{"member", auth.Actor{UserID: 1, Role: models.RoleMember}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SetStatus(context.Background(), tt.actor, f.session.ID, &dto.SetAttendanceRequest{
				UserID: f.member.ID,
				Status: "present",
			})
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
			}
		})
	}
}

func TestGetAttendanceDefaultsToPending(t *testing.T) {
	f := newAttendanceFixture(t)
	professor := auth.Actor{UserID: 10, Role: models.RoleProfessor}

	item, err := f.svc.GetStatus(context.Background(), professor, f.session.ID, f.member.ID)
	require.NoError(t, err)

	assert.Equal(t, "pending", item.Status)
	assert.Equal(t, "Ane Etxeberria", item.FullName)
	assert.Nil(t, item.Notes)
}

func TestListAttendanceMergesRecords(t *testing.T) {
	f := newAttendanceFixture(t)
	professor := auth.Actor{UserID: 10, Role: models.RoleProfessor}

	// Second enrolled member with no record yet
	_, err := f.enrollments.Create(context.Background(), 10, f.course.ID)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(context.Background(), professor, f.session.ID, &dto.SetAttendanceRequest{
		UserID: f.member.ID,
		Status: "absent",
	})
	require.NoError(t, err)

	items, err := f.svc.ListForSession(context.Background(), professor, f.session.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byUser := map[int64]dto.AttendanceItem{}
	for _, item := range items {
		byUser[item.UserID] = item
	}
	assert.Equal(t, "absent", byUser[f.member.ID].Status)
	assert.Equal(t, "pending", byUser[10].Status)
}

func TestAttendanceUnknownSession(t *testing.T) {
	f := newAttendanceFixture(t)
	manager := auth.Actor{UserID: 50, Role: models.RoleManager}

	_, err := f.svc.SetStatus(context.Background(), manager, 999, &dto.SetAttendanceRequest{
		UserID: f.member.ID,
		Status: "present",
	})
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
