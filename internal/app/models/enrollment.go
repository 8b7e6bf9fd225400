package models

import "time"

// Enrollment links a member to a course, based on the 'enrollments'
// table. Unique on (user_id, course_id).
type Enrollment struct {
	ID         int64            `json:"id" db:"id"`
	UserID     int64            `json:"userId" db:"user_id"`
	CourseID   int64            `json:"courseId" db:"course_id"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	EnrolledAt time.Time        `json:"enrolledAt" db:"enrolled_at"`
	User       *User            `json:"user,omitempty"` // Relation, no db tag
}
