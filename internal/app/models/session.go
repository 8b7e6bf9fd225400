package models

import "time"

// Session defines one concrete dated occurrence of a course, based on
// the 'course_sessions' table. A cancelled session is kept for history
// and excluded from attendance marking, never hard-deleted by the
// cancel operation.
type Session struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	SessionDate time.Time `json:"sessionDate" db:"session_date"`
	StartTime   string    `json:"startTime" db:"start_time"` // "HH:MM"
	EndTime     string    `json:"endTime" db:"end_time"`     // "HH:MM"
	Location    *string   `json:"location,omitempty" db:"location"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	IsCancelled bool      `json:"isCancelled" db:"is_cancelled"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
