package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/pkg/apperrors"
)

// CourseFilter narrows course listings
type CourseFilter struct {
	Category     *string
	Status       *models.CourseStatus
	InstructorID *int64
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var courseColumns = []string{
	"id", "title", "description", "category", "instructor_id", "duration",
	"min_capacity", "max_capacity", "start_date", "end_date",
	"schedule_days", "schedule_time", "status", "created_at", "updated_at",
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.InstructorID,
		&course.Duration,
		&course.MinCapacity,
		&course.MaxCapacity,
		&course.StartDate,
		&course.EndDate,
		&course.ScheduleDays,
		&course.ScheduleTime,
		&course.Status,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course and returns its ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "description", "category", "instructor_id", "duration",
			"min_capacity", "max_capacity", "start_date", "end_date",
			"schedule_days", "schedule_time", "status").
		Values(course.Title, course.Description, course.Category, course.InstructorID, course.Duration,
			course.MinCapacity, course.MaxCapacity, course.StartDate, course.EndDate,
			course.ScheduleDays, course.ScheduleTime, course.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// List retrieves courses with filtering and pagination.
// Returns the page of courses plus the total match count.
func (r *CourseRepository) List(ctx context.Context, filter CourseFilter, offset, limit int) ([]*models.Course, int64, error) {
	countQuery := r.sb.Select("COUNT(*)").From("courses")
	listQuery := r.sb.Select(courseColumns...).From("courses")

	if filter.Category != nil && *filter.Category != "" {
		countQuery = countQuery.Where(squirrel.Eq{"category": *filter.Category})
		listQuery = listQuery.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Status != nil {
		countQuery = countQuery.Where(squirrel.Eq{"status": *filter.Status})
		listQuery = listQuery.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.InstructorID != nil {
		countQuery = countQuery.Where(squirrel.Eq{"instructor_id": *filter.InstructorID})
		listQuery = listQuery.Where(squirrel.Eq{"instructor_id": *filter.InstructorID})
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	sql, args, err = listQuery.
		OrderBy("start_date NULLS LAST", "id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, total, nil
}

// Update replaces the mutable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("title", course.Title).
		Set("description", course.Description).
		Set("category", course.Category).
		Set("instructor_id", course.InstructorID).
		Set("duration", course.Duration).
		Set("min_capacity", course.MinCapacity).
		Set("max_capacity", course.MaxCapacity).
		Set("start_date", course.StartDate).
		Set("end_date", course.EndDate).
		Set("schedule_days", course.ScheduleDays).
		Set("schedule_time", course.ScheduleTime).
		Set("status", course.Status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course. Sessions, enrollments and attendance go
// with it through ON DELETE CASCADE.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
