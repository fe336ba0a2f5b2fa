package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"registrar/internal/app/models"
	"registrar/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses and their
// instructor assignments
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// GetByID retrieves a course by ID, or nil when absent
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT id, prefix, code, title, credits
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Prefix,
		&course.Code,
		&course.Title,
		&course.Credits,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAssignedInstructorIDs returns the IDs of instructors authorized to teach
// the course. An empty slice means the course has no assignment record.
func (r *CourseRepository) GetAssignedInstructorIDs(ctx context.Context, courseID string) ([]string, error) {
	query := `
		SELECT instructor_id
		FROM course_instructors
		WHERE course_id = $1
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course instructor assignments: %w", err)
	}
	defer rows.Close()

	var instructorIDs []string
	for rows.Next() {
		var instructorID string
		if err := rows.Scan(&instructorID); err != nil {
			return nil, err
		}
		instructorIDs = append(instructorIDs, instructorID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return instructorIDs, nil
}
