package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etchegaray/integria-connect/internal/app/models"
)

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Get retrieves the attendance record for a user in a session.
// Returns (nil, nil) when no record exists; the caller treats that
// as "pending".
func (r *AttendanceRepository) Get(ctx context.Context, sessionID, userID int64) (*models.AttendanceRecord, error) {
	query := `
		SELECT id, session_id, user_id, status, notes
		FROM attendance
		WHERE session_id = $1 AND user_id = $2
	`

	var record models.AttendanceRecord
	err := r.db.QueryRow(ctx, query, sessionID, userID).Scan(
		&record.ID,
		&record.SessionID,
		&record.UserID,
		&record.Status,
		&record.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	return &record, nil
}

// Upsert writes the attendance status for a user in a session in a
// single statement. The (session_id, user_id) unique constraint makes
// concurrent writes converge on one row, last writer wins.
func (r *AttendanceRepository) Upsert(ctx context.Context, sessionID, userID int64, status models.AttendanceStatus, notes *string) (*models.AttendanceRecord, error) {
	query := `
		INSERT INTO attendance (session_id, user_id, status, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, user_id)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes
		RETURNING id, session_id, user_id, status, notes
	`

	var record models.AttendanceRecord
	err := r.db.QueryRow(ctx, query, sessionID, userID, status, notes).Scan(
		&record.ID,
		&record.SessionID,
		&record.UserID,
		&record.Status,
		&record.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("error upserting attendance record: %w", err)
	}

	return &record, nil
}

// ListBySession retrieves all attendance records of a session, keyed
// by user ID
func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID int64) (map[int64]*models.AttendanceRecord, error) {
	query := `
		SELECT id, session_id, user_id, status, notes
		FROM attendance
		WHERE session_id = $1
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	records := make(map[int64]*models.AttendanceRecord)
	for rows.Next() {
		var record models.AttendanceRecord
		err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.UserID,
			&record.Status,
			&record.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		records[record.UserID] = &record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}
