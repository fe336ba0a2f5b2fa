package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"registrar/internal/app/models"
	"registrar/internal/pkg/dberrors"
)

// AcademicSemesterRepository handles database operations for academic semesters
type AcademicSemesterRepository struct {
	db *pgxpool.Pool
}

// NewAcademicSemesterRepository creates a new academic semester repository
func NewAcademicSemesterRepository(db *pgxpool.Pool) *AcademicSemesterRepository {
	return &AcademicSemesterRepository{
		db: db,
	}
}

// GetByID retrieves an academic semester by ID, or nil when absent
func (r *AcademicSemesterRepository) GetByID(ctx context.Context, id string) (*models.AcademicSemester, error) {
	query := `
		SELECT id, name, code, year
		FROM academic_semesters
		WHERE id = $1
	`

	var semester models.AcademicSemester
	err := r.db.QueryRow(ctx, query, id).Scan(
		&semester.ID,
		&semester.Name,
		&semester.Code,
		&semester.Year,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving academic semester: %w", err)
	}

	return &semester, nil
}
