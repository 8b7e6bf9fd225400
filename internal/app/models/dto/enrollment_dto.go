package dto

import "time"

// EnrollRequest enrolls a user into a course. UserID is optional: a
// member enrolling themselves omits it, a manager enrolling someone
// else sets it.
type EnrollRequest struct {
	UserID *int64 `json:"userId,omitempty"`
}

// EnrollmentItem is one row of a course's enrollment listing, joined
// against the user profile for display.
type EnrollmentItem struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// EnrollmentListResponse carries the enrollment rows plus the advisory
// capacity figures computed at read time.
type EnrollmentListResponse struct {
	Enrollments   []EnrollmentItem `json:"enrollments"`
	EnrolledCount int              `json:"enrolledCount"`
	MaxCapacity   int              `json:"maxCapacity"`
	OverCapacity  bool             `json:"overCapacity"`
}
