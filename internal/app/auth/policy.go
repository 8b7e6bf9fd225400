// Package auth holds the authorization policy. Every permission check
// receives an explicit Actor; nothing here reads ambient session
// state, so a handler cannot accidentally act under the wrong role.
package auth

import (
	"github.com/etchegaray/integria-connect/internal/app/models"
)

// Actor identifies who is performing an operation.
type Actor struct {
	UserID int64
	Role   models.RoleType
}

// Permission names an action the policy can grant.
type Permission string

const (
	// PermManageCourses covers creating, updating and deleting courses
	// and their sessions.
	PermManageCourses Permission = "courses:manage"

	// PermViewCourses covers reading courses, sessions and enrollment
	// listings.
	PermViewCourses Permission = "courses:view"

	// PermEnrollSelf lets a user enroll themselves into a course.
	PermEnrollSelf Permission = "enrollments:self"

	// PermManageEnrollments covers enrolling and withdrawing other
	// users.
	PermManageEnrollments Permission = "enrollments:manage"

	// PermRecordAttendance covers writing attendance for sessions of a
	// course. Professors are additionally limited to their own courses
	// by the service layer.
	PermRecordAttendance Permission = "attendance:record"

	// PermManageAssignments covers creating and removing monitor to
	// member assignments.
	PermManageAssignments Permission = "assignments:manage"

	// PermScheduleInterviews covers creating and updating interviews.
	// Monitors are additionally limited to their assigned members by
	// the service layer.
	PermScheduleInterviews Permission = "interviews:schedule"

	// PermManageUsers covers listing users and changing roles.
	PermManageUsers Permission = "users:manage"
)

// rolePermissions is the single authority on what each role may do.
var rolePermissions = map[models.RoleType]map[Permission]bool{
	models.RoleMember: {
		PermViewCourses: true,
		PermEnrollSelf:  true,
	},
	models.RoleMonitor: {
		PermViewCourses:        true,
		PermEnrollSelf:         true,
		PermScheduleInterviews: true,
	},
	models.RoleProfessor: {
		PermViewCourses:      true,
		PermEnrollSelf:       true,
		PermManageCourses:    true,
		PermRecordAttendance: true,
	},
	models.RoleManager: {
		PermViewCourses:        true,
		PermEnrollSelf:         true,
		PermManageCourses:      true,
		PermManageEnrollments:  true,
		PermRecordAttendance:   true,
		PermManageAssignments:  true,
		PermScheduleInterviews: true,
		PermManageUsers:        true,
	},
}

// Can reports whether the actor holds the permission.
func Can(actor Actor, permission Permission) bool {
	perms, ok := rolePermissions[actor.Role]
	if !ok {
		return false
	}
	return perms[permission]
}

// IsManager reports whether the actor is a manager.
func IsManager(actor Actor) bool {
	return actor.Role == models.RoleManager
}
