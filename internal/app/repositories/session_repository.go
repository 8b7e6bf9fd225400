package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
)

// SessionRepository handles course session database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var sessionColumns = []string{
	"id", "course_id", "session_date", "start_time", "end_time",
	"location", "notes", "is_cancelled", "created_at",
}

func scanSession(row pgx.Row) (*models.Session, error) {
	var session models.Session
	err := row.Scan(
		&session.ID,
		&session.CourseID,
		&session.SessionDate,
		&session.StartTime,
		&session.EndTime,
		&session.Location,
		&session.Notes,
		&session.IsCancelled,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListByCourse retrieves all sessions of a course in chronological order
func (r *SessionRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Session, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From("course_sessions").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("session_date", "start_time", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sessions, nil
}

// CountByCourse returns how many sessions exist for a course
func (r *SessionRepository) CountByCourse(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM course_sessions WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting sessions: %w", err)
	}
	return count, nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From("course_sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	session, err := scanSession(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	return session, nil
}

// Create inserts a single session and returns its ID
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) (int64, error) {
	sql, args, err := r.sb.Insert("course_sessions").
		Columns("course_id", "session_date", "start_time", "end_time", "location", "notes", "is_cancelled").
		Values(session.CourseID, session.SessionDate, session.StartTime, session.EndTime,
			session.Location, session.Notes, session.IsCancelled).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating session: %w", err)
	}

	return id, nil
}

// CreateBatch inserts a set of sessions in one transaction. Either
// every session is created or none is.
func (r *SessionRepository) CreateBatch(ctx context.Context, sessions []*models.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	builder := r.sb.Insert("course_sessions").
		Columns("course_id", "session_date", "start_time", "end_time", "location", "notes", "is_cancelled")
	for _, session := range sessions {
		builder = builder.Values(session.CourseID, session.SessionDate, session.StartTime, session.EndTime,
			session.Location, session.Notes, session.IsCancelled)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating sessions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of a session
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Update("course_sessions").
		Set("session_date", session.SessionDate).
		Set("start_time", session.StartTime).
		Set("end_time", session.EndTime).
		Set("location", session.Location).
		Set("notes", session.Notes).
		Set("is_cancelled", session.IsCancelled).
		Where(squirrel.Eq{"id": session.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}

	return nil
}

// Delete removes a session. Attendance rows go with it through
// ON DELETE CASCADE.
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}

	return nil
}
