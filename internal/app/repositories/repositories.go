package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AcademicSemesterRepository     *AcademicSemesterRepository
	DepartmentRepository           *DepartmentRepository
	CourseRepository               *CourseRepository
	InstructorRepository           *InstructorRepository
	SemesterRegistrationRepository *SemesterRegistrationRepository
	OfferedCourseRepository        *OfferedCourseRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AcademicSemesterRepository:     NewAcademicSemesterRepository(db),
		DepartmentRepository:           NewDepartmentRepository(db),
		CourseRepository:               NewCourseRepository(db),
		InstructorRepository:           NewInstructorRepository(db),
		SemesterRegistrationRepository: NewSemesterRegistrationRepository(db),
		OfferedCourseRepository:        NewOfferedCourseRepository(db),
	}
}
