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
	"github.com/etchegaray/integria-connect/internal/pkg/dberrors"
)

// AssignmentRepository handles monitor assignment database operations
type AssignmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create assigns a member to a monitor and returns the assignment ID
func (r *AssignmentRepository) Create(ctx context.Context, monitorID, memberID int64, notes *string) (int64, error) {
	sql, args, err := r.sb.Insert("monitor_assignments").
		Columns("monitor_id", "member_id", "notes").
		Values(monitorID, memberID, notes).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "monitor_assignments_monitor_id_member_id_key") {
			return 0, apperrors.ErrDuplicateAssignment
		}
		return 0, fmt.Errorf("error creating assignment: %w", err)
	}

	return id, nil
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.MonitorAssignment, error) {
	sql, args, err := r.sb.Select("id", "monitor_id", "member_id", "assigned_at", "notes").
		From("monitor_assignments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var assignment models.MonitorAssignment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&assignment.ID,
		&assignment.MonitorID,
		&assignment.MemberID,
		&assignment.AssignedAt,
		&assignment.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}

	return &assignment, nil
}

// Delete removes an assignment
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM monitor_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// List retrieves assignments, optionally filtered by monitor
func (r *AssignmentRepository) List(ctx context.Context, monitorID *int64) ([]*models.MonitorAssignment, error) {
	query := r.sb.Select("id", "monitor_id", "member_id", "assigned_at", "notes").
		From("monitor_assignments").
		OrderBy("assigned_at DESC", "id")

	if monitorID != nil {
		query = query.Where(squirrel.Eq{"monitor_id": *monitorID})
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

	var assignments []*models.MonitorAssignment
	for rows.Next() {
		var assignment models.MonitorAssignment
		err := rows.Scan(
			&assignment.ID,
			&assignment.MonitorID,
			&assignment.MemberID,
			&assignment.AssignedAt,
			&assignment.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		assignments = append(assignments, &assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return assignments, nil
}

// IsMemberAssigned checks whether a member is assigned to a monitor
func (r *AssignmentRepository) IsMemberAssigned(ctx context.Context, monitorID, memberID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM monitor_assignments WHERE monitor_id = $1 AND member_id = $2)`,
		monitorID, memberID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking assignment: %w", err)
	}
	return exists, nil
}
