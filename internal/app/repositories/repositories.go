package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	CourseRepository     *CourseRepository
	SessionRepository    *SessionRepository
	EnrollmentRepository *EnrollmentRepository
	AttendanceRepository *AttendanceRepository
	AssignmentRepository *AssignmentRepository
	InterviewRepository  *InterviewRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		CourseRepository:     NewCourseRepository(db),
		SessionRepository:    NewSessionRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		AssignmentRepository: NewAssignmentRepository(db),
		InterviewRepository:  NewInterviewRepository(db),
	}
}
