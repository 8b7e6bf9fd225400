package services

import (
	"context"
	"sort"
	"time"

	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/repositories"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
)

// In-memory store fakes used across the service tests.

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	} else if user.ID > f.nextID {
		f.nextID = user.ID
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	return f.add(user).ID, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) List(_ context.Context, role *models.RoleType, _, _ int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, user := range f.users {
		if role != nil && user.RoleType != *role {
			continue
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserStore) GetByIDs(_ context.Context, ids []int64) (map[int64]*models.User, error) {
	out := map[int64]*models.User{}
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id int64, firstName, lastName string, phone *string) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Phone = phone
	return nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id int64, role models.RoleType) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.RoleType = role
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id int64) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

type fakeTokenStore struct {
	tokens  map[string]struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}
	revokedAllFor []int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}{}}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}{userID, expiryDate, false}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	entry, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if entry.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if entry.expiry.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return entry.userID, entry.expiry, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	entry, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	entry.revoked = true
	f.tokens[token] = entry
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	f.revokedAllFor = append(f.revokedAllFor, userID)
	for token, entry := range f.tokens {
		if entry.userID == userID {
			entry.revoked = true
			f.tokens[token] = entry
		}
	}
	return nil
}

type fakeCourseStore struct {
	nextID  int64
	courses map[int64]*models.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: map[int64]*models.Course{}}
}

func (f *fakeCourseStore) add(course *models.Course) *models.Course {
	if course.ID == 0 {
		f.nextID++
		course.ID = f.nextID
	} else if course.ID > f.nextID {
		f.nextID = course.ID
	}
	f.courses[course.ID] = course
	return course
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) (int64, error) {
	return f.add(course).ID, nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeCourseStore) List(_ context.Context, _ repositories.CourseFilter, _, _ int) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, course := range f.courses {
		out = append(out, course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}

type fakeSessionStore struct {
	nextID   int64
	sessions map[int64]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[int64]*models.Session{}}
}

func (f *fakeSessionStore) add(session *models.Session) *models.Session {
	if session.ID == 0 {
		f.nextID++
		session.ID = f.nextID
	}
	f.sessions[session.ID] = session
	return session
}

func (f *fakeSessionStore) ListByCourse(_ context.Context, courseID int64) ([]*models.Session, error) {
	var out []*models.Session
	for _, session := range f.sessions {
		if session.CourseID == courseID {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SessionDate.Equal(out[j].SessionDate) {
			return out[i].SessionDate.Before(out[j].SessionDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeSessionStore) CountByCourse(_ context.Context, courseID int64) (int, error) {
	count := 0
	for _, session := range f.sessions {
		if session.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id int64) (*models.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionStore) Create(_ context.Context, session *models.Session) (int64, error) {
	return f.add(session).ID, nil
}

func (f *fakeSessionStore) CreateBatch(_ context.Context, sessions []*models.Session) error {
	for _, session := range sessions {
		f.add(session)
	}
	return nil
}

func (f *fakeSessionStore) Update(_ context.Context, session *models.Session) error {
	if _, ok := f.sessions[session.ID]; !ok {
		return apperrors.ErrSessionNotFound
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

type fakeEnrollmentStore struct {
	nextID      int64
	enrollments map[int64]*models.Enrollment
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrollments: map[int64]*models.Enrollment{}}
}

func (f *fakeEnrollmentStore) Create(_ context.Context, userID, courseID int64) (int64, error) {
	for _, enrollment := range f.enrollments {
		if enrollment.UserID == userID && enrollment.CourseID == courseID {
			return 0, apperrors.ErrDuplicateEnrollment
		}
	}
	f.nextID++
	f.enrollments[f.nextID] = &models.Enrollment{
		ID:         f.nextID,
		UserID:     userID,
		CourseID:   courseID,
		Status:     models.EnrollmentEnrolled,
		EnrolledAt: time.Now(),
	}
	return f.nextID, nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.enrollments[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.enrollments, id)
	return nil
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, enrollment := range f.enrollments {
		if enrollment.CourseID == courseID {
			out = append(out, enrollment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEnrollmentStore) CountByCourse(_ context.Context, courseID int64) (int, error) {
	count := 0
	for _, enrollment := range f.enrollments {
		if enrollment.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEnrollmentStore) CountByCourses(ctx context.Context, courseIDs []int64) (map[int64]int, error) {
	out := map[int64]int{}
	for _, id := range courseIDs {
		count, _ := f.CountByCourse(ctx, id)
		if count > 0 {
			out[id] = count
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) IsUserEnrolled(_ context.Context, userID, courseID int64) (bool, error) {
	for _, enrollment := range f.enrollments {
		if enrollment.UserID == userID && enrollment.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

type attendanceKey struct {
	sessionID int64
	userID    int64
}

type fakeAttendanceStore struct {
	nextID  int64
	records map[attendanceKey]*models.AttendanceRecord
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{records: map[attendanceKey]*models.AttendanceRecord{}}
}

func (f *fakeAttendanceStore) Get(_ context.Context, sessionID, userID int64) (*models.AttendanceRecord, error) {
	record, ok := f.records[attendanceKey{sessionID, userID}]
	if !ok {
		return nil, nil
	}
	return record, nil
}

func (f *fakeAttendanceStore) Upsert(_ context.Context, sessionID, userID int64, status models.AttendanceStatus, notes *string) (*models.AttendanceRecord, error) {
	key := attendanceKey{sessionID, userID}
	record, ok := f.records[key]
	if !ok {
		f.nextID++
		record = &models.AttendanceRecord{ID: f.nextID, SessionID: sessionID, UserID: userID}
		f.records[key] = record
	}
	record.Status = status
	record.Notes = notes
	return record, nil
}

func (f *fakeAttendanceStore) ListBySession(_ context.Context, sessionID int64) (map[int64]*models.AttendanceRecord, error) {
	out := map[int64]*models.AttendanceRecord{}
	for key, record := range f.records {
		if key.sessionID == sessionID {
			out[key.userID] = record
		}
	}
	return out, nil
}

type fakeAssignmentStore struct {
	nextID      int64
	assignments map[int64]*models.MonitorAssignment
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{assignments: map[int64]*models.MonitorAssignment{}}
}

func (f *fakeAssignmentStore) Create(_ context.Context, monitorID, memberID int64, notes *string) (int64, error) {
	for _, assignment := range f.assignments {
		if assignment.MonitorID == monitorID && assignment.MemberID == memberID {
			return 0, apperrors.ErrDuplicateAssignment
		}
	}
	f.nextID++
	f.assignments[f.nextID] = &models.MonitorAssignment{
		ID:         f.nextID,
		MonitorID:  monitorID,
		MemberID:   memberID,
		AssignedAt: time.Now(),
		Notes:      notes,
	}
	return f.nextID, nil
}

func (f *fakeAssignmentStore) GetByID(_ context.Context, id int64) (*models.MonitorAssignment, error) {
	assignment, ok := f.assignments[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

func (f *fakeAssignmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.assignments[id]; !ok {
		return apperrors.ErrAssignmentNotFound
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentStore) List(_ context.Context, monitorID *int64) ([]*models.MonitorAssignment, error) {
	var out []*models.MonitorAssignment
	for _, assignment := range f.assignments {
		if monitorID != nil && assignment.MonitorID != *monitorID {
			continue
		}
		out = append(out, assignment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAssignmentStore) IsMemberAssigned(_ context.Context, monitorID, memberID int64) (bool, error) {
	for _, assignment := range f.assignments {
		if assignment.MonitorID == monitorID && assignment.MemberID == memberID {
			return true, nil
		}
	}
	return false, nil
}

type fakeInterviewStore struct {
	nextID     int64
	interviews map[int64]*models.Interview
}

func newFakeInterviewStore() *fakeInterviewStore {
	return &fakeInterviewStore{interviews: map[int64]*models.Interview{}}
}

func (f *fakeInterviewStore) Create(_ context.Context, interview *models.Interview) (int64, error) {
	f.nextID++
	interview.ID = f.nextID
	interview.CreatedAt = time.Now()
	f.interviews[interview.ID] = interview
	return interview.ID, nil
}

func (f *fakeInterviewStore) GetByID(_ context.Context, id int64) (*models.Interview, error) {
	interview, ok := f.interviews[id]
	if !ok {
		return nil, apperrors.ErrInterviewNotFound
	}
	return interview, nil
}

func (f *fakeInterviewStore) Update(_ context.Context, interview *models.Interview) error {
	if _, ok := f.interviews[interview.ID]; !ok {
		return apperrors.ErrInterviewNotFound
	}
	f.interviews[interview.ID] = interview
	return nil
}

func (f *fakeInterviewStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.interviews[id]; !ok {
		return apperrors.ErrInterviewNotFound
	}
	delete(f.interviews, id)
	return nil
}

func (f *fakeInterviewStore) List(_ context.Context, filter repositories.InterviewFilter) ([]*models.Interview, error) {
	var out []*models.Interview
	for _, interview := range f.interviews {
		if filter.MonitorID != nil && interview.MonitorID != *filter.MonitorID {
			continue
		}
		if filter.MemberID != nil && interview.MemberID != *filter.MemberID {
			continue
		}
		if filter.Status != nil && interview.Status != *filter.Status {
			continue
		}
		out = append(out, interview)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
