package dto

// CreateCourseRequest is the payload to create a course together with
// its recurrence rule. Dates use "2006-01-02", times "15:04".
type CreateCourseRequest struct {
	Title        string   `json:"title" binding:"required,min=2,max=200"`
	Description  string   `json:"description"`
	Category     string   `json:"category" binding:"required"`
	InstructorID *int64   `json:"instructorId,omitempty"`
	Duration     string   `json:"duration" example:"2 horas"`
	MinCapacity  int      `json:"minCapacity" binding:"required,min=1"`
	MaxCapacity  int      `json:"maxCapacity" binding:"required,min=1"`
	StartDate    string   `json:"startDate,omitempty" example:"2025-03-03"`
	EndDate      string   `json:"endDate,omitempty" example:"2025-03-14"`
	ScheduleDays []string `json:"scheduleDays" example:"monday,wednesday"`
	ScheduleTime string   `json:"scheduleTime" example:"10:00"`
	Status       string   `json:"status" binding:"omitempty,oneof=upcoming active completed"`
}

// UpdateCourseRequest mirrors CreateCourseRequest for full updates.
type UpdateCourseRequest = CreateCourseRequest

// CourseResponse is a course joined with read-time enrollment figures.
// OverCapacity is advisory: over-enrollment is flagged, never blocked.
type CourseResponse struct {
	Course        interface{} `json:"course"`
	EnrolledCount int         `json:"enrolledCount"`
	OverCapacity  bool        `json:"overCapacity"`
}
