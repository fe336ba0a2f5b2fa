package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"registrar/internal/app/models"
	"registrar/internal/app/scheduling"
	"registrar/internal/pkg/dberrors"
)

// Offered course error types
var (
	// ErrDuplicateSection reports a second section with the same number for the
	// same course and registration.
	ErrDuplicateSection = errors.New("section has already been offered for this course and registration")

	// ErrInstructorSlotTaken reports that the instructor already holds one of
	// the candidate (window, day) tuples in this registration. The constraint
	// behind it is what closes the race between two concurrent creations that
	// both passed the conflict scan.
	ErrInstructorSlotTaken = errors.New("instructor already has a section in this time slot")
)

const offeredCourseColumns = `
	o.id, o.semester_registration_id, o.academic_semester_id, o.academic_faculty_id,
	o.academic_department_id, o.course_id, o.instructor_id, o.section,
	o.max_capacity, o.remaining_capacity, o.start_time, o.end_time
`

// OfferedCourseRepository handles database operations for offered courses.
// It owns the only write path into the offered_courses table.
type OfferedCourseRepository struct {
	db *pgxpool.Pool
}

// NewOfferedCourseRepository creates a new offered course repository
func NewOfferedCourseRepository(db *pgxpool.Pool) *OfferedCourseRepository {
	return &OfferedCourseRepository{
		db: db,
	}
}

func scanOfferedCourse(row interface{ Scan(...any) error }) (*models.OfferedCourse, error) {
	var course models.OfferedCourse
	err := row.Scan(
		&course.ID,
		&course.SemesterRegistrationID,
		&course.AcademicSemesterID,
		&course.AcademicFacultyID,
		&course.AcademicDepartmentID,
		&course.CourseID,
		&course.InstructorID,
		&course.Section,
		&course.MaxCapacity,
		&course.RemainingCapacity,
		&course.StartTime,
		&course.EndTime,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func mapScheduleConstraintError(err error) error {
	if dberrors.IsDuplicateConstraintError(err, "uq_offered_courses_course_section_registration") {
		return ErrDuplicateSection
	}
	if dberrors.IsDuplicateConstraintError(err, "uq_offered_course_days_instructor_slot") {
		return ErrInstructorSlotTaken
	}
	return err
}

// insertDayRows writes one row per meeting day, carrying the denormalized
// (registration, instructor, window) tuple the uniqueness constraint needs.
func insertDayRows(ctx context.Context, tx pgx.Tx, course *models.OfferedCourse) error {
	query := `
		INSERT INTO offered_course_days (offered_course_id, semester_registration_id, instructor_id, start_time, end_time, day)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, day := range course.Days {
		_, err := tx.Exec(ctx, query,
			course.ID,
			course.SemesterRegistrationID,
			course.InstructorID,
			course.StartTime,
			course.EndTime,
			string(day),
		)
		if err != nil {
			return mapScheduleConstraintError(err)
		}
	}

	return nil
}

// Create inserts an offered course and its day rows in one transaction, so a
// constraint violation on any day leaves nothing behind.
func (r *OfferedCourseRepository) Create(ctx context.Context, course *models.OfferedCourse) error {
	if course.ID == "" {
		course.ID = uuid.New().String()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting offered course creation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO offered_courses (
			id, semester_registration_id, academic_semester_id, academic_faculty_id,
			academic_department_id, course_id, instructor_id, section,
			max_capacity, remaining_capacity, start_time, end_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.Exec(ctx, query,
		course.ID,
		course.SemesterRegistrationID,
		course.AcademicSemesterID,
		course.AcademicFacultyID,
		course.AcademicDepartmentID,
		course.CourseID,
		course.InstructorID,
		course.Section,
		course.MaxCapacity,
		course.RemainingCapacity,
		course.StartTime,
		course.EndTime,
	)
	if err != nil {
		return mapScheduleConstraintError(err)
	}

	if err := insertDayRows(ctx, tx, course); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing offered course creation: %w", err)
	}

	return nil
}

// Update persists the mutable fields of a section and replaces its day rows
// in one transaction. Course, section, registration and department columns
// are never touched here.
func (r *OfferedCourseRepository) Update(ctx context.Context, course *models.OfferedCourse) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting offered course update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE offered_courses
		SET instructor_id = $2, max_capacity = $3, remaining_capacity = $4, start_time = $5, end_time = $6
		WHERE id = $1
	`

	_, err = tx.Exec(ctx, query,
		course.ID,
		course.InstructorID,
		course.MaxCapacity,
		course.RemainingCapacity,
		course.StartTime,
		course.EndTime,
	)
	if err != nil {
		return mapScheduleConstraintError(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM offered_course_days WHERE offered_course_id = $1`, course.ID); err != nil {
		return fmt.Errorf("error clearing offered course days: %w", err)
	}

	if err := insertDayRows(ctx, tx, course); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing offered course update: %w", err)
	}

	return nil
}

// GetByID retrieves an offered course with its days loaded, or nil when absent
func (r *OfferedCourseRepository) GetByID(ctx context.Context, id string) (*models.OfferedCourse, error) {
	query := `
		SELECT ` + offeredCourseColumns + `
		FROM offered_courses o
		WHERE o.id = $1
	`

	course, err := scanOfferedCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving offered course: %w", err)
	}

	if err := r.loadDays(ctx, []*models.OfferedCourse{course}); err != nil {
		return nil, err
	}

	return course, nil
}

// GetByIDResolved retrieves an offered course with every referenced entity
// populated: registration, semester, faculty, department, course, instructor.
func (r *OfferedCourseRepository) GetByIDResolved(ctx context.Context, id string) (*models.OfferedCourse, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil || course == nil {
		return course, err
	}

	if err := r.resolveRelations(ctx, []*models.OfferedCourse{course}); err != nil {
		return nil, err
	}

	return course, nil
}

// GetAll retrieves all offered courses with days loaded and relations resolved
func (r *OfferedCourseRepository) GetAll(ctx context.Context) ([]*models.OfferedCourse, error) {
	query := `
		SELECT ` + offeredCourseColumns + `
		FROM offered_courses o
		ORDER BY o.start_time, o.section
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing offered courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.OfferedCourse
	for rows.Next() {
		course, err := scanOfferedCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadDays(ctx, courses); err != nil {
		return nil, err
	}
	if err := r.resolveRelations(ctx, courses); err != nil {
		return nil, err
	}

	return courses, nil
}

// ListByRegistrationAndInstructor returns the instructor's other sections in
// a registration, days loaded, for the conflict scan. excludeID skips the
// section being updated; pass an empty string on the create path.
func (r *OfferedCourseRepository) ListByRegistrationAndInstructor(ctx context.Context, registrationID, instructorID, excludeID string) ([]*models.OfferedCourse, error) {
	query := `
		SELECT ` + offeredCourseColumns + `
		FROM offered_courses o
		WHERE o.semester_registration_id = $1 AND o.instructor_id = $2 AND o.id <> $3
	`

	rows, err := r.db.Query(ctx, query, registrationID, instructorID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("error listing instructor sections: %w", err)
	}
	defer rows.Close()

	var courses []*models.OfferedCourse
	for rows.Next() {
		course, err := scanOfferedCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadDays(ctx, courses); err != nil {
		return nil, err
	}

	return courses, nil
}

// loadDays fills in the Days slice for each course in one query.
func (r *OfferedCourseRepository) loadDays(ctx context.Context, courses []*models.OfferedCourse) error {
	if len(courses) == 0 {
		return nil
	}

	byID := make(map[string]*models.OfferedCourse, len(courses))
	ids := make([]string, 0, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
		ids = append(ids, course.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT offered_course_id, day FROM offered_course_days WHERE offered_course_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("error loading offered course days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var courseID, day string
		if err := rows.Scan(&courseID, &day); err != nil {
			return err
		}
		if course, ok := byID[courseID]; ok {
			course.Days = append(course.Days, scheduling.Weekday(day))
		}
	}

	return rows.Err()
}

// resolveRelations populates the referenced entities for each course. The
// lookups run as explicit joins in a fixed order rather than an implicit
// graph traversal.
func (r *OfferedCourseRepository) resolveRelations(ctx context.Context, courses []*models.OfferedCourse) error {
	if len(courses) == 0 {
		return nil
	}

	ids := make([]string, 0, len(courses))
	byID := make(map[string]*models.OfferedCourse, len(courses))
	for _, course := range courses {
		ids = append(ids, course.ID)
		byID[course.ID] = course
	}

	query := `
		SELECT o.id,
		       r.id, r.academic_semester_id, r.status, r.start_date, r.end_date, r.min_credit, r.max_credit,
		       s.id, s.name, s.code, s.year,
		       f.id, f.name, f.code,
		       d.id, d.academic_faculty_id, d.name, d.code,
		       c.id, c.prefix, c.code, c.title, c.credits,
		       i.id, i.first_name, i.middle_name, i.last_name, i.title
		FROM offered_courses o
		JOIN semester_registrations r ON r.id = o.semester_registration_id
		JOIN academic_semesters s ON s.id = o.academic_semester_id
		JOIN academic_faculties f ON f.id = o.academic_faculty_id
		JOIN academic_departments d ON d.id = o.academic_department_id
		JOIN courses c ON c.id = o.course_id
		JOIN instructors i ON i.id = o.instructor_id
		WHERE o.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error resolving offered course relations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var courseID string
		var registration models.SemesterRegistration
		var semester models.AcademicSemester
		var faculty models.AcademicFaculty
		var department models.AcademicDepartment
		var course models.Course
		var instructor models.Instructor

		err := rows.Scan(
			&courseID,
			&registration.ID, &registration.AcademicSemesterID, &registration.Status,
			&registration.StartDate, &registration.EndDate, &registration.MinCredit, &registration.MaxCredit,
			&semester.ID, &semester.Name, &semester.Code, &semester.Year,
			&faculty.ID, &faculty.Name, &faculty.Code,
			&department.ID, &department.AcademicFacultyID, &department.Name, &department.Code,
			&course.ID, &course.Prefix, &course.Code, &course.Title, &course.Credits,
			&instructor.ID, &instructor.FirstName, &instructor.MiddleName, &instructor.LastName, &instructor.Title,
		)
		if err != nil {
			return err
		}

		offered, ok := byID[courseID]
		if !ok {
			continue
		}
		registration.AcademicSemester = &semester
		offered.SemesterRegistration = &registration
		offered.AcademicSemester = &semester
		offered.AcademicFaculty = &faculty
		offered.AcademicDepartment = &department
		offered.Course = &course
		offered.Instructor = &instructor
	}

	return rows.Err()
}
