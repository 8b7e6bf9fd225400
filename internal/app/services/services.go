// Package services holds the business logic between the HTTP
// controllers and the repositories. Services accept narrow store
// interfaces so the consistency rules (session generation gating,
// duplicate enrollment handling, attendance upserts, interview
// scoping) can be exercised without a live database.
package services

import (
	"context"
	"time"

	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/repositories"
)

// UserStore is the user persistence contract used by the services.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, role *models.RoleType, offset, limit int) ([]*models.User, int64, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName string, phone *string) error
	UpdateRole(ctx context.Context, id int64, role models.RoleType) error
	UpdateLastLogin(ctx context.Context, id int64) error
}

// TokenStore is the refresh token persistence contract.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// CourseStore is the course persistence contract.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, filter repositories.CourseFilter, offset, limit int) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// SessionStore is the course session persistence contract.
type SessionStore interface {
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Session, error)
	CountByCourse(ctx context.Context, courseID int64) (int, error)
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) (int64, error)
	CreateBatch(ctx context.Context, sessions []*models.Session) error
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentStore is the enrollment persistence contract.
type EnrollmentStore interface {
	Create(ctx context.Context, userID, courseID int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Delete(ctx context.Context, id int64) error
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	CountByCourse(ctx context.Context, courseID int64) (int, error)
	CountByCourses(ctx context.Context, courseIDs []int64) (map[int64]int, error)
	IsUserEnrolled(ctx context.Context, userID, courseID int64) (bool, error)
}

// AttendanceStore is the attendance persistence contract.
type AttendanceStore interface {
	Get(ctx context.Context, sessionID, userID int64) (*models.AttendanceRecord, error)
	Upsert(ctx context.Context, sessionID, userID int64, status models.AttendanceStatus, notes *string) (*models.AttendanceRecord, error)
	ListBySession(ctx context.Context, sessionID int64) (map[int64]*models.AttendanceRecord, error)
}

// AssignmentStore is the monitor assignment persistence contract.
type AssignmentStore interface {
	Create(ctx context.Context, monitorID, memberID int64, notes *string) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.MonitorAssignment, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, monitorID *int64) ([]*models.MonitorAssignment, error)
	IsMemberAssigned(ctx context.Context, monitorID, memberID int64) (bool, error)
}

// InterviewStore is the interview persistence contract.
type InterviewStore interface {
	Create(ctx context.Context, interview *models.Interview) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Interview, error)
	Update(ctx context.Context, interview *models.Interview) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repositories.InterviewFilter) ([]*models.Interview, error)
}
