package models

// RoleType defines the user role type
type RoleType string

const (
	RoleMember    RoleType = "MEMBER"    // Program participant (socio)
	RoleMonitor   RoleType = "MONITOR"   // Mentor responsible for a subset of members
	RoleProfessor RoleType = "PROFESSOR" // Instructor, owns assigned courses
	RoleManager   RoleType = "MANAGER"   // Administrative role with full read/write
)

// ValidRole reports whether the given string is a known role token.
func ValidRole(role string) bool {
	switch RoleType(role) {
	case RoleMember, RoleMonitor, RoleProfessor, RoleManager:
		return true
	}
	return false
}

// CourseStatus is the advisory lifecycle status of a course.
// It is never auto-derived from the course dates.
type CourseStatus string

const (
	CourseUpcoming  CourseStatus = "upcoming"
	CourseActive    CourseStatus = "active"
	CourseCompleted CourseStatus = "completed"
)

// AttendanceStatus is the per-(session, user) presence status.
// Any status may move to any other status; there is no terminal state.
type AttendanceStatus string

const (
	AttendancePending AttendanceStatus = "pending"
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

// ValidAttendanceStatus reports whether the given string is a known attendance status.
func ValidAttendanceStatus(status string) bool {
	switch AttendanceStatus(status) {
	case AttendancePending, AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// InterviewStatus is the lifecycle status of a scheduled interview.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

// ValidInterviewStatus reports whether the given string is a known interview status.
func ValidInterviewStatus(status string) bool {
	switch InterviewStatus(status) {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled:
		return true
	}
	return false
}

// EnrollmentStatus is the status of an enrollment row.
type EnrollmentStatus string

const (
	EnrollmentEnrolled EnrollmentStatus = "enrolled"
)
