package models

// AttendanceRecord tracks per-session, per-member presence, based on
// the 'attendance' table. Unique on (session_id, user_id); the absence
// of a row means "pending".
type AttendanceRecord struct {
	ID        int64            `json:"id" db:"id"`
	SessionID int64            `json:"sessionId" db:"session_id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Status    AttendanceStatus `json:"status" db:"status"`
	Notes     *string          `json:"notes,omitempty" db:"notes"`
}
