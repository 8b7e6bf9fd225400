package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
)

func enrollmentServiceFixture(t *testing.T) (*EnrollmentService, *fakeCourseStore, *fakeEnrollmentStore, *fakeUserStore) {
	t.Helper()

	courses := newFakeCourseStore()
	enrollments := newFakeEnrollmentStore()
	users := newFakeUserStore()

	courses.add(&models.Course{Title: "Cocina", MaxCapacity: 2})
	users.add(&models.User{ID: 1, Email: "socio@integria.org", FirstName: "Ane", LastName: "Etxeberria", RoleType: models.RoleMember, IsActive: true})
	users.add(&models.User{ID: 2, Email: "manager@integria.org", FirstName: "Mikel", LastName: "Zubiri", RoleType: models.RoleManager, IsActive: true})
	users.add(&models.User{ID: 3, Email: "baja@integria.org", FirstName: "Jon", LastName: "Iriarte", RoleType: models.RoleMember, IsActive: false})

	return NewEnrollmentService(courses, enrollments, users), courses, enrollments, users
}

func TestEnrollSelf(t *testing.T) {
	svc, _, _, _ := enrollmentServiceFixture(t)
	member := auth.Actor{UserID: 1, Role: models.RoleMember}

	enrollment, err := svc.Enroll(context.Background(), member, 1, &dto.EnrollRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), enrollment.UserID)
	assert.Equal(t, int64(1), enrollment.CourseID)
	assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
	require.NotNil(t, enrollment.User)
	assert.Equal(t, "socio@integria.org", enrollment.User.Email)
}

func TestEnrollDuplicateRejected(t *testing.T) {
	svc, _, _, _ := enrollmentServiceFixture(t)
	member := auth.Actor{UserID: 1, Role: models.RoleMember}

	_, err := svc.Enroll(context.Background(), member, 1, &dto.EnrollRequest{})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), member, 1, &dto.EnrollRequest{})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollment)
}

func TestEnrollOtherRequiresManagement(t *testing.T) {
	svc, _, _, _ := enrollmentServiceFixture(t)

	target := int64(1)

	member := auth.Actor{UserID: 99, Role: models.RoleMember}
	_, err := svc.Enroll(context.Background(), member, 1, &dto.EnrollRequest{UserID: &target})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	manager := auth.Actor{UserID: 2, Role: models.RoleManager}
	enrollment, err := svc.Enroll(context.Background(), manager, 1, &dto.EnrollRequest{UserID: &target})
	require.NoError(t, err)
	assert.Equal(t, target, enrollment.UserID)
}

func TestEnrollDisabledAccountRejected(t *testing.T) {
	svc, _, _, _ := enrollmentServiceFixture(t)
	manager := auth.Actor{UserID: 2, Role: models.RoleManager}

	target := int64(3)
	_, err := svc.Enroll(context.Background(), manager, 1, &dto.EnrollRequest{UserID: &target})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _, _, _ := enrollmentServiceFixture(t)
	member := auth.Actor{UserID: 1, Role: models.RoleMember}

	_, err := svc.Enroll(context.Background(), member, 42, &dto.EnrollRequest{})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollBeyondCapacityAllowed(t *testing.T) {
	svc, _, _, users := enrollmentServiceFixture(t)
	manager := auth.Actor{UserID: 2, Role: models.RoleManager}

	// MaxCapacity is 2; the third enrollment still goes through
	for i := int64(0); i < 3; i++ {
		user := users.add(&models.User{
			Email:     string(rune('a'+i)) + "@integria.org",
			FirstName: "Socio",
			LastName:  "Extra",
			RoleType:  models.RoleMember,
			IsActive:  true,
		})
		_, err := svc.Enroll(context.Background(), manager, 1, &dto.EnrollRequest{UserID: &user.ID})
		require.NoError(t, err)
	}

	listing, err := svc.ListEnrollments(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, listing.EnrolledCount)
	assert.Equal(t, 2, listing.MaxCapacity)
	assert.True(t, listing.OverCapacity)
}

func TestListEnrollmentsUnderCapacity(t *testing.T) {
	svc, _, _, _ := enrollmentServiceFixture(t)
	member := auth.Actor{UserID: 1, Role: models.RoleMember}

	_, err := svc.Enroll(context.Background(), member, 1, &dto.EnrollRequest{})
	require.NoError(t, err)

	listing, err := svc.ListEnrollments(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listing.Enrollments, 1)
	assert.Equal(t, "Ane Etxeberria", listing.Enrollments[0].FullName)
	assert.False(t, listing.OverCapacity)
}

func TestWithdraw(t *testing.T) {
	svc, _, _, _ := enrollmentServiceFixture(t)
	member := auth.Actor{UserID: 1, Role: models.RoleMember}

	enrollment, err := svc.Enroll(context.Background(), member, 1, &dto.EnrollRequest{})
	require.NoError(t, err)

	// Another member cannot withdraw someone else
	other := auth.Actor{UserID: 99, Role: models.RoleMember}
	assert.ErrorIs(t, svc.Withdraw(context.Background(), other, enrollment.ID), apperrors.ErrPermissionDenied)

	// The enrollee can
	require.NoError(t, svc.Withdraw(context.Background(), member, enrollment.ID))
	assert.ErrorIs(t, svc.Withdraw(context.Background(), member, enrollment.ID), apperrors.ErrEnrollmentNotFound)
}

func TestWithdrawByManager(t *testing.T) {
	svc, _, _, _ := enrollmentServiceFixture(t)
	member := auth.Actor{UserID: 1, Role: models.RoleMember}
	manager := auth.Actor{UserID: 2, Role: models.RoleManager}

	enrollment, err := svc.Enroll(context.Background(), member, 1, &dto.EnrollRequest{})
	require.NoError(t, err)

	assert.NoError(t, svc.Withdraw(context.Background(), manager, enrollment.ID))
}
