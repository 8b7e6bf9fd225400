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

// InterviewFilter narrows interview listings
type InterviewFilter struct {
	MonitorID *int64
	MemberID  *int64
	Status    *models.InterviewStatus
}

// InterviewRepository handles interview database operations
type InterviewRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInterviewRepository creates a new InterviewRepository
func NewInterviewRepository(db *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var interviewColumns = []string{
	"id", "member_id", "monitor_id", "scheduled_date", "status", "notes", "created_at",
}

func scanInterview(row pgx.Row) (*models.Interview, error) {
	var interview models.Interview
	err := row.Scan(
		&interview.ID,
		&interview.MemberID,
		&interview.MonitorID,
		&interview.ScheduledDate,
		&interview.Status,
		&interview.Notes,
		&interview.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// Create schedules a new interview and returns its ID
func (r *InterviewRepository) Create(ctx context.Context, interview *models.Interview) (int64, error) {
	sql, args, err := r.sb.Insert("interviews").
		Columns("member_id", "monitor_id", "scheduled_date", "status", "notes").
		Values(interview.MemberID, interview.MonitorID, interview.ScheduledDate, interview.Status, interview.Notes).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating interview: %w", err)
	}

	return id, nil
}

// GetByID retrieves an interview by ID
func (r *InterviewRepository) GetByID(ctx context.Context, id int64) (*models.Interview, error) {
	sql, args, err := r.sb.Select(interviewColumns...).
		From("interviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	interview, err := scanInterview(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInterviewNotFound
		}
		return nil, fmt.Errorf("error retrieving interview: %w", err)
	}

	return interview, nil
}

// Update replaces the mutable fields of an interview
func (r *InterviewRepository) Update(ctx context.Context, interview *models.Interview) error {
	sql, args, err := r.sb.Update("interviews").
		Set("scheduled_date", interview.ScheduledDate).
		Set("status", interview.Status).
		Set("notes", interview.Notes).
		Where(squirrel.Eq{"id": interview.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating interview: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInterviewNotFound
	}

	return nil
}

// Delete removes an interview
func (r *InterviewRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting interview: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInterviewNotFound
	}

	return nil
}

// List retrieves interviews with filtering, soonest first
func (r *InterviewRepository) List(ctx context.Context, filter InterviewFilter) ([]*models.Interview, error) {
	query := r.sb.Select(interviewColumns...).
		From("interviews").
		OrderBy("scheduled_date", "id")

	if filter.MonitorID != nil {
		query = query.Where(squirrel.Eq{"monitor_id": *filter.MonitorID})
	}
	if filter.MemberID != nil {
		query = query.Where(squirrel.Eq{"member_id": *filter.MemberID})
	}
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"status": *filter.Status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var interviews []*models.Interview
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		interviews = append(interviews, interview)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return interviews, nil
}
