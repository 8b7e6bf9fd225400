package dto

// SetAttendanceRequest upserts the attendance status for one enrolled
// member of a session.
type SetAttendanceRequest struct {
	UserID int64  `json:"userId" binding:"required"`
	Status string `json:"status" binding:"required,oneof=pending present absent excused"`
	Notes  string `json:"notes,omitempty"`
}

// AttendanceItem is one member's status for a session. Members with no
// stored record appear with status "pending".
type AttendanceItem struct {
	UserID   int64   `json:"userId"`
	FullName string  `json:"fullName"`
	Status   string  `json:"status"`
	Notes    *string `json:"notes,omitempty"`
}
