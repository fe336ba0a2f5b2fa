package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"registrar/internal/app/models"
	"registrar/internal/app/models/dto"
	"registrar/internal/app/repositories"
	"registrar/internal/pkg/apperrors"
	"registrar/internal/pkg/metrics"
)

// SemesterRegistrationService defines the interface for registration lifecycle operations
type SemesterRegistrationService interface {
	CreateSemesterRegistration(ctx context.Context, req *dto.CreateSemesterRegistrationRequest) (*models.SemesterRegistration, error)
	GetSemesterRegistrationByID(ctx context.Context, id string) (*models.SemesterRegistration, error)
	GetAllSemesterRegistrations(ctx context.Context) ([]*models.SemesterRegistration, error)
	UpdateSemesterRegistration(ctx context.Context, id string, req *dto.UpdateSemesterRegistrationRequest) (*models.SemesterRegistration, error)
	RecomputeAllRegistrationStatuses(ctx context.Context) ([]*models.SemesterRegistration, error)
}

// semesterRegistrationServiceImpl implements the SemesterRegistrationService interface
type semesterRegistrationServiceImpl struct {
	registrationStore semesterRegistrationStore
	semesterStore     academicSemesterStore
	metrics           *metrics.Metrics
	now               func() time.Time
}

// NewSemesterRegistrationService creates a new semester registration service instance
func NewSemesterRegistrationService(
	registrationStore semesterRegistrationStore,
	semesterStore academicSemesterStore,
	m *metrics.Metrics,
) SemesterRegistrationService {
	return &semesterRegistrationServiceImpl{
		registrationStore: registrationStore,
		semesterStore:     semesterStore,
		metrics:           m,
		now:               time.Now,
	}
}

// validateCreditBounds checks that both bounds are positive multiples of 3
// with min not above max.
func validateCreditBounds(minCredit, maxCredit int) error {
	if minCredit <= 0 || minCredit%3 != 0 {
		return apperrors.NewBadRequestError("Invalid min credit. Min credit must be a positive multiple of 3")
	}
	if maxCredit <= 0 || maxCredit%3 != 0 {
		return apperrors.NewBadRequestError("Invalid max credit. Max credit must be a positive multiple of 3")
	}
	if minCredit > maxCredit {
		return apperrors.NewBadRequestError("Min credit must be less than max credit")
	}
	return nil
}

// resolveCreditBounds applies the both-or-neither rule: absent bounds fall
// back to the provided pair (catalog defaults at creation, stored values at
// update), a half-supplied pair is rejected.
func resolveCreditBounds(minCredit, maxCredit *int, fallbackMin, fallbackMax int) (int, int, error) {
	switch {
	case minCredit != nil && maxCredit != nil:
		return *minCredit, *maxCredit, nil
	case minCredit != nil || maxCredit != nil:
		return 0, 0, apperrors.NewBadRequestError("Please enter both min and max credit")
	default:
		return fallbackMin, fallbackMax, nil
	}
}

// CreateSemesterRegistration opens the registration period for an academic
// semester. Only one registration may be upcoming or ongoing system-wide.
func (s *semesterRegistrationServiceImpl) CreateSemesterRegistration(ctx context.Context, req *dto.CreateSemesterRegistrationRequest) (*models.SemesterRegistration, error) {
	active, err := s.registrationStore.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error checking active registrations: %w", err)
	}
	if active != nil {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("Cannot register a semester while there's already an %s registered semester!", active.Status))
	}

	semester, err := s.semesterStore.GetByID(ctx, req.AcademicSemesterID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving academic semester: %w", err)
	}
	if semester == nil {
		return nil, apperrors.NewNotFoundError("Academic semester not found!")
	}

	minCredit, maxCredit, err := resolveCreditBounds(req.MinCredit, req.MaxCredit, models.DefaultMinCredit, models.DefaultMaxCredit)
	if err != nil {
		return nil, err
	}
	if err := validateCreditBounds(minCredit, maxCredit); err != nil {
		return nil, err
	}

	if !req.StartDate.Before(req.EndDate) {
		return nil, apperrors.NewBadRequestError("End date cannot come before start date")
	}

	registration := &models.SemesterRegistration{
		AcademicSemesterID: semester.ID,
		Status:             models.RegistrationStatusAt(s.now(), req.StartDate, req.EndDate),
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		MinCredit:          minCredit,
		MaxCredit:          maxCredit,
		AcademicSemester:   semester,
	}

	if err := s.registrationStore.Create(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrSemesterAlreadyRegistered) {
			return nil, apperrors.NewConflictError("This academic semester has been registered already")
		}
		return nil, fmt.Errorf("error creating semester registration: %w", err)
	}

	return registration, nil
}

// GetSemesterRegistrationByID retrieves a registration with its semester resolved
func (s *semesterRegistrationServiceImpl) GetSemesterRegistrationByID(ctx context.Context, id string) (*models.SemesterRegistration, error) {
	registration, err := s.registrationStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving semester registration: %w", err)
	}
	if registration == nil {
		return nil, apperrors.NewNotFoundError("Semester registration not found!")
	}
	return registration, nil
}

// GetAllSemesterRegistrations retrieves all registrations
func (s *semesterRegistrationServiceImpl) GetAllSemesterRegistrations(ctx context.Context) ([]*models.SemesterRegistration, error) {
	registrations, err := s.registrationStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing semester registrations: %w", err)
	}
	return registrations, nil
}

// UpdateSemesterRegistration adjusts the date window or credit bounds of a
// registration that has not ended. Absent fields keep their stored values;
// the merged result is revalidated as a whole.
func (s *semesterRegistrationServiceImpl) UpdateSemesterRegistration(ctx context.Context, id string, req *dto.UpdateSemesterRegistrationRequest) (*models.SemesterRegistration, error) {
	registration, err := s.registrationStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving semester registration: %w", err)
	}
	if registration == nil {
		return nil, apperrors.NewNotFoundError("Semester registration not found!")
	}

	if registration.Status == models.RegistrationEnded {
		return nil, apperrors.NewForbiddenError("The semester cannot be updated because it has already been ended")
	}

	minCredit, maxCredit, err := resolveCreditBounds(req.MinCredit, req.MaxCredit, registration.MinCredit, registration.MaxCredit)
	if err != nil {
		return nil, err
	}
	if err := validateCreditBounds(minCredit, maxCredit); err != nil {
		return nil, err
	}

	startDate := registration.StartDate
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	endDate := registration.EndDate
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	if !startDate.Before(endDate) {
		return nil, apperrors.NewBadRequestError("End date cannot come before start date")
	}

	registration.StartDate = startDate
	registration.EndDate = endDate
	registration.MinCredit = minCredit
	registration.MaxCredit = maxCredit

	if err := s.registrationStore.Update(ctx, registration); err != nil {
		return nil, fmt.Errorf("error updating semester registration: %w", err)
	}

	return registration, nil
}

// RecomputeAllRegistrationStatuses runs the bulk lifecycle pass and returns
// the refreshed registrations. The pass derives every status from the stored
// window and the clock, so rerunning it without elapsed time is a no-op.
func (s *semesterRegistrationServiceImpl) RecomputeAllRegistrationStatuses(ctx context.Context) ([]*models.SemesterRegistration, error) {
	if err := s.registrationStore.RecomputeStatuses(ctx, s.now()); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInternal, "Failed to update semester registration statuses")
	}

	s.metrics.StatusRecomputations.Inc()

	registrations, err := s.registrationStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing semester registrations: %w", err)
	}
	return registrations, nil
}
