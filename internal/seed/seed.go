package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"registrar/internal/app/models"
)

// Fixed identifiers keep reruns idempotent together with ON CONFLICT clauses.
const (
	engineeringFacultyID = "0d4f7a2e-1b7c-4f7e-9b3a-5b0f8c2d1a10"
	scienceFacultyID     = "1e5a8b3f-2c8d-4a8f-8c4b-6c1a9d3e2b21"

	computerEngineeringID    = "2f6b9c4a-3d9e-4b9a-9d5c-7d2b0e4f3c32"
	electricalEngineeringID  = "3a7c0d5b-4e0f-4c0b-8e6d-8e3c1f5a4d43"
	mathematicsDepartmentID  = "4b8d1e6c-5f1a-4d1c-9f7e-9f4d2a6b5e54"
	fallSemester2025ID       = "5c9e2f7d-6a2b-4e2d-8a8f-0a5e3b7c6f65"
	springSemester2026ID     = "6d0f3a8e-7b3c-4f3e-9b9a-1b6f4c8d7a76"
	algorithmsCourseID       = "7e1a4b9f-8c4d-4a4f-8c0b-2c7a5d9e8b87"
	databaseSystemsCourseID  = "8f2b5c0a-9d5e-4b5a-9d1c-3d8b6e0f9c98"
	linearAlgebraCourseID    = "9a3c6d1b-0e6f-4c6b-8e2d-4e9c7f1a0d09"
	ayseDemirInstructorID    = "a4b7d2ec-1f7a-4d7c-9f3e-5f0d8a2b1e10"
	mehmetYilmazInstructorID = "b5c8e3fd-2a8b-4e8d-8a4f-6a1e9b3c2f21"
	zeynepKayaInstructorID   = "c6d9f40e-3b9c-4f9e-9b5a-7b2f0c4d3a32"
)

// CreateDefaultData inserts a starter catalog of faculties, departments,
// semesters, courses and instructors when the tables are empty. Existing rows
// are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default catalog data...")

	statements := []struct {
		query string
		args  []interface{}
	}{
		{
			query: `INSERT INTO academic_faculties (id, name, code) VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING`,
			args:  []interface{}{engineeringFacultyID, "Faculty of Engineering", "ENG"},
		},
		{
			query: `INSERT INTO academic_faculties (id, name, code) VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING`,
			args:  []interface{}{scienceFacultyID, "Faculty of Science", "SCI"},
		},
		{
			query: `INSERT INTO academic_departments (id, academic_faculty_id, name, code) VALUES ($1, $2, $3, $4) ON CONFLICT (code) DO NOTHING`,
			args:  []interface{}{computerEngineeringID, engineeringFacultyID, "Computer Engineering", "CENG"},
		},
		{
			query: `INSERT INTO academic_departments (id, academic_faculty_id, name, code) VALUES ($1, $2, $3, $4) ON CONFLICT (code) DO NOTHING`,
			args:  []interface{}{electricalEngineeringID, engineeringFacultyID, "Electrical Engineering", "EEE"},
		},
		{
			query: `INSERT INTO academic_departments (id, academic_faculty_id, name, code) VALUES ($1, $2, $3, $4) ON CONFLICT (code) DO NOTHING`,
			args:  []interface{}{mathematicsDepartmentID, scienceFacultyID, "Mathematics", "MATH"},
		},
		{
			query: `INSERT INTO academic_semesters (id, name, code, year) VALUES ($1, $2, $3, $4) ON CONFLICT (name, year) DO NOTHING`,
			args:  []interface{}{fallSemester2025ID, string(models.SemesterFall), "03", 2025},
		},
		{
			query: `INSERT INTO academic_semesters (id, name, code, year) VALUES ($1, $2, $3, $4) ON CONFLICT (name, year) DO NOTHING`,
			args:  []interface{}{springSemester2026ID, string(models.SemesterSpring), "01", 2026},
		},
		{
			query: `INSERT INTO courses (id, prefix, code, title, credits) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (prefix, code) DO NOTHING`,
			args:  []interface{}{algorithmsCourseID, "CSE", 2215, "Data Structures and Algorithms", 3},
		},
		{
			query: `INSERT INTO courses (id, prefix, code, title, credits) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (prefix, code) DO NOTHING`,
			args:  []interface{}{databaseSystemsCourseID, "CSE", 3103, "Database Management Systems", 3},
		},
		{
			query: `INSERT INTO courses (id, prefix, code, title, credits) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (prefix, code) DO NOTHING`,
			args:  []interface{}{linearAlgebraCourseID, "MATH", 2101, "Linear Algebra", 3},
		},
		{
			query: `INSERT INTO instructors (id, first_name, middle_name, last_name, title) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			args:  []interface{}{ayseDemirInstructorID, "Ayse", nil, "Demir", "Assistant Professor"},
		},
		{
			query: `INSERT INTO instructors (id, first_name, middle_name, last_name, title) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			args:  []interface{}{mehmetYilmazInstructorID, "Mehmet", nil, "Yilmaz", "Professor"},
		},
		{
			query: `INSERT INTO instructors (id, first_name, middle_name, last_name, title) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			args:  []interface{}{zeynepKayaInstructorID, "Zeynep", nil, "Kaya", "Associate Professor"},
		},
		{
			query: `INSERT INTO course_instructors (course_id, instructor_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			args:  []interface{}{algorithmsCourseID, ayseDemirInstructorID},
		},
		{
			query: `INSERT INTO course_instructors (course_id, instructor_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			args:  []interface{}{algorithmsCourseID, mehmetYilmazInstructorID},
		},
		{
			query: `INSERT INTO course_instructors (course_id, instructor_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			args:  []interface{}{databaseSystemsCourseID, mehmetYilmazInstructorID},
		},
		{
			query: `INSERT INTO course_instructors (course_id, instructor_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			args:  []interface{}{linearAlgebraCourseID, zeynepKayaInstructorID},
		},
	}

	for _, statement := range statements {
		if _, err := dbPool.Exec(ctx, statement.query, statement.args...); err != nil {
			return fmt.Errorf("failed to seed default catalog data: %w", err)
		}
	}

	lgr.Info().Msg("Default catalog data ready")
	return nil
}
