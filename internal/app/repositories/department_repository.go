package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"registrar/internal/app/models"
	"registrar/internal/pkg/dberrors"
)

// DepartmentRepository handles database operations for academic departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// GetByIDWithFaculty retrieves a department together with its parent academic
// faculty, or nil when absent. The faculty join is what lets the scheduler
// denormalize the faculty reference onto new sections.
func (r *DepartmentRepository) GetByIDWithFaculty(ctx context.Context, id string) (*models.AcademicDepartment, error) {
	query := `
		SELECT d.id, d.academic_faculty_id, d.name, d.code,
		       f.id, f.name, f.code
		FROM academic_departments d
		JOIN academic_faculties f ON f.id = d.academic_faculty_id
		WHERE d.id = $1
	`

	var department models.AcademicDepartment
	var faculty models.AcademicFaculty
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.AcademicFacultyID,
		&department.Name,
		&department.Code,
		&faculty.ID,
		&faculty.Name,
		&faculty.Code,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving academic department: %w", err)
	}

	department.AcademicFaculty = &faculty
	return &department, nil
}
