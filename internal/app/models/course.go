package models

import "time"

// Course defines the course model based on the 'courses' table.
// The recurrence rule (ScheduleDays + ScheduleTime + Duration over
// [StartDate, EndDate]) is expanded into concrete sessions by the
// schedule expander; it is stored verbatim here.
type Course struct {
	ID           int64        `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Description  string       `json:"description" db:"description"`
	Category     string       `json:"category" db:"category"`
	InstructorID *int64       `json:"instructorId,omitempty" db:"instructor_id"` // Assigned professor (nullable)
	Duration     string       `json:"duration" db:"duration"`                    // Free text, e.g. "2 horas"
	MinCapacity  int          `json:"minCapacity" db:"min_capacity"`
	MaxCapacity  int          `json:"maxCapacity" db:"max_capacity"`
	StartDate    *time.Time   `json:"startDate,omitempty" db:"start_date"`
	EndDate      *time.Time   `json:"endDate,omitempty" db:"end_date"`
	ScheduleDays []string     `json:"scheduleDays" db:"schedule_days"` // Lowercase weekday tokens, e.g. ["monday", "wednesday"]
	ScheduleTime string       `json:"scheduleTime" db:"schedule_time"` // "HH:MM", 24-hour clock
	Status       CourseStatus `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
	Instructor   *User        `json:"instructor,omitempty"` // Relation, no db tag
}
