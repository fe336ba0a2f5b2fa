package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"registrar/internal/app/models"
	"registrar/internal/pkg/dberrors"
)

// InstructorRepository handles database operations for instructors
type InstructorRepository struct {
	db *pgxpool.Pool
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
	}
}

// GetByID retrieves an instructor by ID, or nil when absent
func (r *InstructorRepository) GetByID(ctx context.Context, id string) (*models.Instructor, error) {
	query := `
		SELECT id, first_name, middle_name, last_name, title
		FROM instructors
		WHERE id = $1
	`

	var instructor models.Instructor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&instructor.ID,
		&instructor.FirstName,
		&instructor.MiddleName,
		&instructor.LastName,
		&instructor.Title,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	return &instructor, nil
}
