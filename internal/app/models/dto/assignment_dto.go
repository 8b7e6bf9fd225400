package dto

// CreateAssignmentRequest pairs a monitor with a member they become
// responsible for.
type CreateAssignmentRequest struct {
	MonitorID int64  `json:"monitorId" binding:"required"`
	MemberID  int64  `json:"memberId" binding:"required"`
	Notes     string `json:"notes,omitempty"`
}
