package services

import (
	"context"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
	"github.com/etchegaray/integria-connect/internal/pkg/logger"
)

// EnrollmentService handles course enrollment operations. Capacity is
// advisory here: enrolling past max capacity is flagged at read time,
// never blocked.
type EnrollmentService struct {
	courseRepo     CourseStore
	enrollmentRepo EnrollmentStore
	userRepo       UserStore
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(courseRepo CourseStore, enrollmentRepo EnrollmentStore, userRepo UserStore) *EnrollmentService {
	return &EnrollmentService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

// Enroll adds a user to a course. Without an explicit user ID the
// actor enrolls themselves; enrolling someone else takes the
// enrollment management permission. Duplicates surface as
// ErrDuplicateEnrollment from the unique constraint, whoever wins the
// race.
func (s *EnrollmentService) Enroll(ctx context.Context, actor auth.Actor, courseID int64, req *dto.EnrollRequest) (*models.Enrollment, error) {
	targetID := actor.UserID
	if req.UserID != nil {
		targetID = *req.UserID
	}

	if targetID == actor.UserID {
		if !auth.Can(actor, auth.PermEnrollSelf) {
			return nil, apperrors.ErrPermissionDenied
		}
	} else if !auth.Can(actor, auth.PermManageEnrollments) {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewBadRequestError("cannot enroll a disabled account")
	}

	id, err := s.enrollmentRepo.Create(ctx, targetID, courseID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("courseID", courseID).Int64("userID", targetID).Msg("User enrolled in course")

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	enrollment.User = user

	return enrollment, nil
}

// Withdraw removes an enrollment. A user may withdraw themselves;
// withdrawing anyone else takes the enrollment management permission.
func (s *EnrollmentService) Withdraw(ctx context.Context, actor auth.Actor, enrollmentID int64) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}

	if enrollment.UserID != actor.UserID && !auth.Can(actor, auth.PermManageEnrollments) {
		return apperrors.ErrPermissionDenied
	}

	return s.enrollmentRepo.Delete(ctx, enrollmentID)
}

// ListEnrollments retrieves a course's enrollments joined with user
// profiles, plus the advisory capacity figures.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, courseID int64) (*dto.EnrollmentListResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, courseID)
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

	items := make([]dto.EnrollmentItem, 0, len(enrollments))
	for _, enrollment := range enrollments {
		item := dto.EnrollmentItem{
			ID:         enrollment.ID,
			UserID:     enrollment.UserID,
			Status:     string(enrollment.Status),
			EnrolledAt: enrollment.EnrolledAt,
		}
		if user, ok := users[enrollment.UserID]; ok {
			item.FullName = user.FullName()
			item.Email = user.Email
		}
		items = append(items, item)
	}

	return &dto.EnrollmentListResponse{
		Enrollments:   items,
		EnrolledCount: len(items),
		MaxCapacity:   course.MaxCapacity,
		OverCapacity:  len(items) > course.MaxCapacity,
	}, nil
}
