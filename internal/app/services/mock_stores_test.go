package services

import (
	"context"
	"fmt"
	"time"

	"registrar/internal/app/models"
	"registrar/internal/app/repositories"
)

// In-memory stands-ins for the pgx repositories. Lookups follow the
// repository contract of returning (nil, nil) when a row is absent.

func intPtr(v int) *int { return &v }

type mockSemesterStore struct {
	semesters map[string]*models.AcademicSemester
}

func newMockSemesterStore() *mockSemesterStore {
	return &mockSemesterStore{semesters: make(map[string]*models.AcademicSemester)}
}

func (m *mockSemesterStore) GetByID(_ context.Context, id string) (*models.AcademicSemester, error) {
	return m.semesters[id], nil
}

type mockDepartmentStore struct {
	departments map[string]*models.AcademicDepartment
}

func newMockDepartmentStore() *mockDepartmentStore {
	return &mockDepartmentStore{departments: make(map[string]*models.AcademicDepartment)}
}

func (m *mockDepartmentStore) GetByIDWithFaculty(_ context.Context, id string) (*models.AcademicDepartment, error) {
	return m.departments[id], nil
}

type mockCourseStore struct {
	courses     map[string]*models.Course
	assignments map[string][]string
}

func newMockCourseStore() *mockCourseStore {
	return &mockCourseStore{
		courses:     make(map[string]*models.Course),
		assignments: make(map[string][]string),
	}
}

func (m *mockCourseStore) GetByID(_ context.Context, id string) (*models.Course, error) {
	return m.courses[id], nil
}

func (m *mockCourseStore) GetAssignedInstructorIDs(_ context.Context, courseID string) ([]string, error) {
	return m.assignments[courseID], nil
}

type mockInstructorStore struct {
	instructors map[string]*models.Instructor
}

func newMockInstructorStore() *mockInstructorStore {
	return &mockInstructorStore{instructors: make(map[string]*models.Instructor)}
}

func (m *mockInstructorStore) GetByID(_ context.Context, id string) (*models.Instructor, error) {
	return m.instructors[id], nil
}

type mockRegistrationStore struct {
	registrations map[string]*models.SemesterRegistration
	nextID        int
}

func newMockRegistrationStore() *mockRegistrationStore {
	return &mockRegistrationStore{registrations: make(map[string]*models.SemesterRegistration)}
}

func (m *mockRegistrationStore) Create(_ context.Context, registration *models.SemesterRegistration) error {
	for _, existing := range m.registrations {
		if existing.AcademicSemesterID == registration.AcademicSemesterID {
			return repositories.ErrSemesterAlreadyRegistered
		}
	}
	if registration.ID == "" {
		m.nextID++
		registration.ID = fmt.Sprintf("reg-%03d", m.nextID)
	}
	m.registrations[registration.ID] = registration
	return nil
}

func (m *mockRegistrationStore) GetByID(_ context.Context, id string) (*models.SemesterRegistration, error) {
	return m.registrations[id], nil
}

func (m *mockRegistrationStore) GetAll(_ context.Context) ([]*models.SemesterRegistration, error) {
	result := make([]*models.SemesterRegistration, 0, len(m.registrations))
	for _, registration := range m.registrations {
		result = append(result, registration)
	}
	return result, nil
}

func (m *mockRegistrationStore) FindActive(_ context.Context) (*models.SemesterRegistration, error) {
	for _, registration := range m.registrations {
		if registration.Status == models.RegistrationUpcoming || registration.Status == models.RegistrationOngoing {
			return registration, nil
		}
	}
	return nil, nil
}

func (m *mockRegistrationStore) Update(_ context.Context, registration *models.SemesterRegistration) error {
	m.registrations[registration.ID] = registration
	return nil
}

func (m *mockRegistrationStore) RecomputeStatuses(_ context.Context, now time.Time) error {
	for _, registration := range m.registrations {
		registration.Status = models.RegistrationStatusAt(now, registration.StartDate, registration.EndDate)
	}
	return nil
}

type mockOfferedStore struct {
	courses map[string]*models.OfferedCourse
	nextID  int
}

func newMockOfferedStore() *mockOfferedStore {
	return &mockOfferedStore{courses: make(map[string]*models.OfferedCourse)}
}

// Create mirrors the storage-level uniqueness checks: one section number per
// course and registration, and one instructor per slot-day within a
// registration.
func (m *mockOfferedStore) Create(_ context.Context, course *models.OfferedCourse) error {
	for _, existing := range m.courses {
		if existing.CourseID == course.CourseID &&
			existing.Section == course.Section &&
			existing.SemesterRegistrationID == course.SemesterRegistrationID {
			return repositories.ErrDuplicateSection
		}
	}
	if err := m.checkInstructorSlot(course); err != nil {
		return err
	}
	if course.ID == "" {
		m.nextID++
		course.ID = fmt.Sprintf("offered-%03d", m.nextID)
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockOfferedStore) checkInstructorSlot(course *models.OfferedCourse) error {
	for _, existing := range m.courses {
		if existing.ID == course.ID ||
			existing.SemesterRegistrationID != course.SemesterRegistrationID ||
			existing.InstructorID != course.InstructorID ||
			existing.StartTime != course.StartTime ||
			existing.EndTime != course.EndTime {
			continue
		}
		for _, existingDay := range existing.Days {
			for _, day := range course.Days {
				if existingDay == day {
					return repositories.ErrInstructorSlotTaken
				}
			}
		}
	}
	return nil
}

func (m *mockOfferedStore) Update(_ context.Context, course *models.OfferedCourse) error {
	if err := m.checkInstructorSlot(course); err != nil {
		return err
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockOfferedStore) GetByID(_ context.Context, id string) (*models.OfferedCourse, error) {
	return m.courses[id], nil
}

func (m *mockOfferedStore) GetByIDResolved(_ context.Context, id string) (*models.OfferedCourse, error) {
	return m.courses[id], nil
}

func (m *mockOfferedStore) GetAll(_ context.Context) ([]*models.OfferedCourse, error) {
	result := make([]*models.OfferedCourse, 0, len(m.courses))
	for _, course := range m.courses {
		result = append(result, course)
	}
	return result, nil
}

func (m *mockOfferedStore) ListByRegistrationAndInstructor(_ context.Context, registrationID, instructorID, excludeID string) ([]*models.OfferedCourse, error) {
	var result []*models.OfferedCourse
	for _, course := range m.courses {
		if course.SemesterRegistrationID != registrationID || course.InstructorID != instructorID {
			continue
		}
		if excludeID != "" && course.ID == excludeID {
			continue
		}
		result = append(result, course)
	}
	return result, nil
}
