package models

import "time"

// Interview is a scheduled conversation between a monitor and one of
// their assigned members, based on the 'interviews' table.
type Interview struct {
	ID            int64           `json:"id" db:"id"`
	MemberID      int64           `json:"memberId" db:"member_id"`
	MonitorID     int64           `json:"monitorId" db:"monitor_id"`
	ScheduledDate time.Time       `json:"scheduledDate" db:"scheduled_date"`
	Status        InterviewStatus `json:"status" db:"status"`
	Notes         *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	Monitor       *User           `json:"monitor,omitempty"` // Relation, no db tag
	Member        *User           `json:"member,omitempty"`  // Relation, no db tag
}
