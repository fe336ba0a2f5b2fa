package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"registrar/internal/app/models"
	"registrar/internal/pkg/dberrors"
)

// Semester registration error types
var (
	ErrSemesterAlreadyRegistered = errors.New("this academic semester has been registered already")
)

const semesterRegistrationColumns = `
	r.id, r.academic_semester_id, r.status, r.start_date, r.end_date, r.min_credit, r.max_credit,
	s.id, s.name, s.code, s.year
`

// SemesterRegistrationRepository handles database operations for semester registrations
type SemesterRegistrationRepository struct {
	db *pgxpool.Pool
}

// NewSemesterRegistrationRepository creates a new semester registration repository
func NewSemesterRegistrationRepository(db *pgxpool.Pool) *SemesterRegistrationRepository {
	return &SemesterRegistrationRepository{
		db: db,
	}
}

func scanRegistrationWithSemester(row interface{ Scan(...any) error }) (*models.SemesterRegistration, error) {
	var registration models.SemesterRegistration
	var semester models.AcademicSemester
	err := row.Scan(
		&registration.ID,
		&registration.AcademicSemesterID,
		&registration.Status,
		&registration.StartDate,
		&registration.EndDate,
		&registration.MinCredit,
		&registration.MaxCredit,
		&semester.ID,
		&semester.Name,
		&semester.Code,
		&semester.Year,
	)
	if err != nil {
		return nil, err
	}
	registration.AcademicSemester = &semester
	return &registration, nil
}

// Create inserts a new semester registration. A second registration for the
// same academic semester trips the unique constraint and is reported as
// ErrSemesterAlreadyRegistered.
func (r *SemesterRegistrationRepository) Create(ctx context.Context, registration *models.SemesterRegistration) error {
	if registration.ID == "" {
		registration.ID = uuid.New().String()
	}

	query := `
		INSERT INTO semester_registrations (id, academic_semester_id, status, start_date, end_date, min_credit, max_credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		registration.ID,
		registration.AcademicSemesterID,
		registration.Status,
		registration.StartDate,
		registration.EndDate,
		registration.MinCredit,
		registration.MaxCredit,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_semester_registrations_academic_semester") {
			return ErrSemesterAlreadyRegistered
		}
		return fmt.Errorf("error creating semester registration: %w", err)
	}

	return nil
}

// GetByID retrieves a semester registration with its academic semester
// resolved, or nil when absent
func (r *SemesterRegistrationRepository) GetByID(ctx context.Context, id string) (*models.SemesterRegistration, error) {
	query := `
		SELECT ` + semesterRegistrationColumns + `
		FROM semester_registrations r
		JOIN academic_semesters s ON s.id = r.academic_semester_id
		WHERE r.id = $1
	`

	registration, err := scanRegistrationWithSemester(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving semester registration: %w", err)
	}

	return registration, nil
}

// GetAll retrieves all semester registrations with their academic semesters resolved
func (r *SemesterRegistrationRepository) GetAll(ctx context.Context) ([]*models.SemesterRegistration, error) {
	query := `
		SELECT ` + semesterRegistrationColumns + `
		FROM semester_registrations r
		JOIN academic_semesters s ON s.id = r.academic_semester_id
		ORDER BY r.start_date
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing semester registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*models.SemesterRegistration
	for rows.Next() {
		registration, err := scanRegistrationWithSemester(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, registration)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return registrations, nil
}

// FindActive returns the registration currently in upcoming or ongoing state,
// or nil when there is none. The scheduler invariant allows at most one.
func (r *SemesterRegistrationRepository) FindActive(ctx context.Context) (*models.SemesterRegistration, error) {
	query := `
		SELECT ` + semesterRegistrationColumns + `
		FROM semester_registrations r
		JOIN academic_semesters s ON s.id = r.academic_semester_id
		WHERE r.status = $1 OR r.status = $2
		LIMIT 1
	`

	registration, err := scanRegistrationWithSemester(
		r.db.QueryRow(ctx, query, models.RegistrationUpcoming, models.RegistrationOngoing))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up active semester registration: %w", err)
	}

	return registration, nil
}

// Update persists the mutable fields of a registration: the date window and
// the credit bounds. Status changes go through RecomputeStatuses only.
func (r *SemesterRegistrationRepository) Update(ctx context.Context, registration *models.SemesterRegistration) error {
	query := `
		UPDATE semester_registrations
		SET start_date = $2, end_date = $3, min_credit = $4, max_credit = $5
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query,
		registration.ID,
		registration.StartDate,
		registration.EndDate,
		registration.MinCredit,
		registration.MaxCredit,
	)
	if err != nil {
		return fmt.Errorf("error updating semester registration: %w", err)
	}

	return nil
}

// RecomputeStatuses reassigns every registration's lifecycle state from its
// stored date window and the given instant. The pass is a pure function of
// (window, now), so rerunning it is always safe.
func (r *SemesterRegistrationRepository) RecomputeStatuses(ctx context.Context, now time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting status recomputation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	statements := []struct {
		status    models.RegistrationStatus
		condition string
	}{
		{models.RegistrationUpcoming, `$2 < start_date`},
		{models.RegistrationOngoing, `start_date <= $2 AND $2 < end_date`},
		{models.RegistrationEnded, `end_date <= $2`},
	}

	for _, statement := range statements {
		query := `UPDATE semester_registrations SET status = $1 WHERE ` + statement.condition
		if _, err := tx.Exec(ctx, query, statement.status, now); err != nil {
			return fmt.Errorf("error recomputing %s registrations: %w", statement.status, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing status recomputation: %w", err)
	}

	return nil
}
