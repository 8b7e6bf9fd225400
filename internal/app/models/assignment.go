package models

import "time"

// MonitorAssignment records that a monitor is responsible for a
// member, based on the 'monitor_assignments' table. Unique on
// (monitor_id, member_id); it scopes which members a monitor may
// schedule interviews with.
type MonitorAssignment struct {
	ID         int64     `json:"id" db:"id"`
	MonitorID  int64     `json:"monitorId" db:"monitor_id"`
	MemberID   int64     `json:"memberId" db:"member_id"`
	AssignedAt time.Time `json:"assignedAt" db:"assigned_at"`
	Notes      *string   `json:"notes,omitempty" db:"notes"`
	Monitor    *User     `json:"monitor,omitempty"` // Relation, no db tag
	Member     *User     `json:"member,omitempty"`  // Relation, no db tag
}
