package services

import (
	"context"
	"time"

	"registrar/internal/app/models"
)

// Services defined in this package:
// - SemesterRegistrationService: owns the registration lifecycle and its status recomputation
// - OfferedCourseService: orchestrates section creation/update against the scheduling rules

// Store interfaces the services consume. The pgx repositories satisfy them;
// tests substitute in-memory fakes.

type academicSemesterStore interface {
	GetByID(ctx context.Context, id string) (*models.AcademicSemester, error)
}

type departmentStore interface {
	GetByIDWithFaculty(ctx context.Context, id string) (*models.AcademicDepartment, error)
}

type courseStore interface {
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetAssignedInstructorIDs(ctx context.Context, courseID string) ([]string, error)
}

type instructorStore interface {
	GetByID(ctx context.Context, id string) (*models.Instructor, error)
}

type semesterRegistrationStore interface {
	Create(ctx context.Context, registration *models.SemesterRegistration) error
	GetByID(ctx context.Context, id string) (*models.SemesterRegistration, error)
	GetAll(ctx context.Context) ([]*models.SemesterRegistration, error)
	FindActive(ctx context.Context) (*models.SemesterRegistration, error)
	Update(ctx context.Context, registration *models.SemesterRegistration) error
	RecomputeStatuses(ctx context.Context, now time.Time) error
}

type offeredCourseStore interface {
	Create(ctx context.Context, course *models.OfferedCourse) error
	Update(ctx context.Context, course *models.OfferedCourse) error
	GetByID(ctx context.Context, id string) (*models.OfferedCourse, error)
	GetByIDResolved(ctx context.Context, id string) (*models.OfferedCourse, error)
	GetAll(ctx context.Context) ([]*models.OfferedCourse, error)
	ListByRegistrationAndInstructor(ctx context.Context, registrationID, instructorID, excludeID string) ([]*models.OfferedCourse, error)
}
