package dto

// CreateInterviewRequest schedules an interview between a monitor and
// one of their assigned members. MonitorID is optional: a monitor
// scheduling for themselves omits it, a manager sets it explicitly.
type CreateInterviewRequest struct {
	MemberID      int64  `json:"memberId" binding:"required"`
	MonitorID     *int64 `json:"monitorId,omitempty"`
	ScheduledDate string `json:"scheduledDate" binding:"required" example:"2025-04-10"`
	Notes         string `json:"notes,omitempty"`
}

// UpdateInterviewRequest partially updates an interview.
type UpdateInterviewRequest struct {
	ScheduledDate *string `json:"scheduledDate,omitempty"`
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=scheduled completed cancelled"`
	Notes         *string `json:"notes,omitempty"`
}
