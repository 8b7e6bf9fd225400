package services

import (
	"context"
	"fmt"
	"time"

	"github.com/etchegaray/integria-connect/internal/app/auth"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/app/repositories"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
	"github.com/etchegaray/integria-connect/internal/pkg/helpers"
	"github.com/etchegaray/integria-connect/internal/pkg/validation"
)

// CourseService handles course operations
type CourseService struct {
	courseRepo     CourseStore
	enrollmentRepo EnrollmentStore
	userRepo       UserStore
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo CourseStore, enrollmentRepo EnrollmentStore, userRepo UserStore) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

// canManageCourse reports whether the actor may modify the given
// course. Managers manage every course, professors only their own.
func canManageCourse(actor auth.Actor, course *models.Course) bool {
	if !auth.Can(actor, auth.PermManageCourses) {
		return false
	}
	if auth.IsManager(actor) {
		return true
	}
	return course.InstructorID != nil && *course.InstructorID == actor.UserID
}

// buildCourseFromRequest validates the payload and maps it onto a
// course model.
func (s *CourseService) buildCourseFromRequest(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if req.MinCapacity < 1 {
		return nil, apperrors.NewBadRequestError("minimum capacity must be at least 1")
	}
	if req.MaxCapacity < req.MinCapacity {
		return nil, apperrors.NewBadRequestError("maximum capacity cannot be below minimum capacity")
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		InstructorID: req.InstructorID,
		Duration:     req.Duration,
		MinCapacity:  req.MinCapacity,
		MaxCapacity:  req.MaxCapacity,
		ScheduleDays: req.ScheduleDays,
		ScheduleTime: req.ScheduleTime,
		Status:       models.CourseUpcoming,
	}

	if req.Status != "" {
		course.Status = models.CourseStatus(req.Status)
	}

	if req.StartDate != "" {
		startDate, err := helpers.ParseDate(req.StartDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("start date must use the 2006-01-02 format")
		}
		course.StartDate = &startDate
	}
	if req.EndDate != "" {
		endDate, err := helpers.ParseDate(req.EndDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("end date must use the 2006-01-02 format")
		}
		course.EndDate = &endDate
	}
	if course.StartDate != nil && course.EndDate != nil && course.EndDate.Before(*course.StartDate) {
		return nil, apperrors.NewBadRequestError("end date cannot be before start date")
	}

	if len(req.ScheduleDays) > 0 && !validation.ValidWeekdays(req.ScheduleDays) {
		return nil, apperrors.NewBadRequestError("schedule days must be lowercase English weekday names")
	}
	if req.ScheduleTime != "" && !validation.ValidClock(req.ScheduleTime) {
		return nil, apperrors.NewBadRequestError("schedule time must use the 24-hour HH:MM format")
	}

	if req.InstructorID != nil {
		instructor, err := s.userRepo.GetByID(ctx, *req.InstructorID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUserNotFound) {
				return nil, apperrors.ErrInstructorNotFound
			}
			return nil, fmt.Errorf("error validating instructor: %w", err)
		}
		if instructor.RoleType != models.RoleProfessor {
			return nil, apperrors.NewBadRequestError("instructor must have the PROFESSOR role")
		}
	}

	return course, nil
}

// CreateCourse creates a new course with its recurrence rule
func (s *CourseService) CreateCourse(ctx context.Context, actor auth.Actor, req *dto.CreateCourseRequest) (*models.Course, error) {
	if !auth.Can(actor, auth.PermManageCourses) {
		return nil, apperrors.ErrPermissionDenied
	}

	course, err := s.buildCourseFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	// A professor creating a course becomes its instructor unless a
	// manager set one explicitly
	if actor.Role == models.RoleProfessor {
		if course.InstructorID != nil && *course.InstructorID != actor.UserID {
			return nil, apperrors.ErrPermissionDenied
		}
		instructorID := actor.UserID
		course.InstructorID = &instructorID
	}

	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id
	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	return course, nil
}

// GetCourse retrieves a course with its read-time enrollment figures
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.attachInstructor(ctx, course)

	count, err := s.enrollmentRepo.CountByCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CourseResponse{
		Course:        course,
		EnrolledCount: count,
		OverCapacity:  count > course.MaxCapacity,
	}, nil
}

// ListCourses retrieves courses with filtering and read-time
// enrollment figures
func (s *CourseService) ListCourses(ctx context.Context, filter repositories.CourseFilter, page, size int) ([]dto.CourseResponse, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	courses, total, err := s.courseRepo.List(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	courseIDs := make([]int64, 0, len(courses))
	instructorIDs := make([]int64, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
		if course.InstructorID != nil {
			instructorIDs = append(instructorIDs, *course.InstructorID)
		}
	}

	counts, err := s.enrollmentRepo.CountByCourses(ctx, courseIDs)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	instructors, err := s.userRepo.GetByIDs(ctx, instructorIDs)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		if course.InstructorID != nil {
			course.Instructor = instructors[*course.InstructorID]
		}
		count := counts[course.ID]
		responses = append(responses, dto.CourseResponse{
			Course:        course,
			EnrolledCount: count,
			OverCapacity:  count > course.MaxCapacity,
		})
	}

	return responses, helpers.NewPaginationInfo(total, page, size), nil
}

// UpdateCourse replaces the mutable fields of a course
func (s *CourseService) UpdateCourse(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	existing, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canManageCourse(actor, existing) {
		return nil, apperrors.ErrPermissionDenied
	}

	course, err := s.buildCourseFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	// A professor cannot hand the course to someone else
	if actor.Role == models.RoleProfessor {
		if course.InstructorID != nil && *course.InstructorID != actor.UserID {
			return nil, apperrors.ErrPermissionDenied
		}
		course.InstructorID = existing.InstructorID
	}

	course.ID = id
	if req.Status == "" {
		course.Status = existing.Status
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse removes a course and everything hanging off it
func (s *CourseService) DeleteCourse(ctx context.Context, actor auth.Actor, id int64) error {
	if !auth.IsManager(actor) {
		return apperrors.NewForbiddenError("only managers may delete courses")
	}

	return s.courseRepo.Delete(ctx, id)
}

func (s *CourseService) attachInstructor(ctx context.Context, course *models.Course) {
	if course.InstructorID == nil {
		return
	}
	instructor, err := s.userRepo.GetByID(ctx, *course.InstructorID)
	if err == nil {
		course.Instructor = instructor
	}
}
