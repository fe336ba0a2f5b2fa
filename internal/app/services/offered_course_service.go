package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"registrar/internal/app/models"
	"registrar/internal/app/models/dto"
	"registrar/internal/app/repositories"
	"registrar/internal/app/scheduling"
	"registrar/internal/pkg/apperrors"
	"registrar/internal/pkg/metrics"
)

// OfferedCourseService defines the interface for section scheduling operations
type OfferedCourseService interface {
	CreateOfferedCourse(ctx context.Context, req *dto.CreateOfferedCourseRequest) (*models.OfferedCourse, error)
	GetOfferedCourseByID(ctx context.Context, id string) (*models.OfferedCourse, error)
	GetAllOfferedCourses(ctx context.Context) ([]*models.OfferedCourse, error)
	UpdateOfferedCourse(ctx context.Context, id string, req *dto.UpdateOfferedCourseRequest) (*models.OfferedCourse, error)
	TimeSlots() []dto.TimeSlotEntry
}

// offeredCourseServiceImpl implements the OfferedCourseService interface.
// It owns the write path into offered courses: every create or update runs
// the validation pipeline in a fixed order, short-circuiting on the first
// failure, before anything is persisted.
type offeredCourseServiceImpl struct {
	offeredStore      offeredCourseStore
	registrationStore semesterRegistrationStore
	departmentStore   departmentStore
	courseStore       courseStore
	instructorStore   instructorStore
	catalog           *scheduling.TimeSlotCatalog
	metrics           *metrics.Metrics
}

// NewOfferedCourseService creates a new offered course service instance
func NewOfferedCourseService(
	offeredStore offeredCourseStore,
	registrationStore semesterRegistrationStore,
	departmentStore departmentStore,
	courseStore courseStore,
	instructorStore instructorStore,
	catalog *scheduling.TimeSlotCatalog,
	m *metrics.Metrics,
) OfferedCourseService {
	return &offeredCourseServiceImpl{
		offeredStore:      offeredStore,
		registrationStore: registrationStore,
		departmentStore:   departmentStore,
		courseStore:       courseStore,
		instructorStore:   instructorStore,
		catalog:           catalog,
		metrics:           m,
	}
}

// ensureCreatable gates section creation on the registration lifecycle:
// sections may only be proposed while the registration is upcoming.
func ensureCreatable(registration *models.SemesterRegistration) error {
	switch registration.Status {
	case models.RegistrationEnded:
		return apperrors.NewForbiddenError("This semester has already been ended")
	case models.RegistrationOngoing:
		return apperrors.NewForbiddenError("This semester is already ongoing")
	default:
		return nil
	}
}

// validateAssignment confirms the instructor is authorized to teach the course.
func (s *offeredCourseServiceImpl) validateAssignment(ctx context.Context, instructor *models.Instructor, course *models.Course) error {
	assignedIDs, err := s.courseStore.GetAssignedInstructorIDs(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("error retrieving course instructor assignments: %w", err)
	}

	if len(assignedIDs) == 0 {
		return apperrors.NewNotFoundError("This course does not have any assigned instructors!")
	}

	for _, id := range assignedIDs {
		if id == instructor.ID {
			return nil
		}
	}

	return apperrors.NewConflictError(
		fmt.Sprintf("Instructor %s isn't assigned to course %s", instructor.FullName(), course.CodeLabel()))
}

// scanForConflict compares the candidate meeting against the instructor's
// other sections in the registration. excludeID keeps a section being updated
// out of its own comparison set.
func (s *offeredCourseServiceImpl) scanForConflict(ctx context.Context, registrationID, instructorID, excludeID string, candidate scheduling.Meeting) (scheduling.Weekday, bool, error) {
	others, err := s.offeredStore.ListByRegistrationAndInstructor(ctx, registrationID, instructorID, excludeID)
	if err != nil {
		return "", false, fmt.Errorf("error listing instructor sections: %w", err)
	}

	meetings := make([]scheduling.Meeting, 0, len(others))
	for _, other := range others {
		meetings = append(meetings, other.Meeting())
	}

	day, found := scheduling.FindConflict(meetings, candidate)
	if found {
		s.metrics.ScheduleConflicts.Inc()
	}
	return day, found, nil
}

// CreateOfferedCourse runs the creation pipeline: lifecycle gate, referenced
// entities, capacity, days, slot resolution, assignment authorization and the
// instructor conflict scan, in that order, then persists the section with the
// denormalized semester and faculty references.
func (s *offeredCourseServiceImpl) CreateOfferedCourse(ctx context.Context, req *dto.CreateOfferedCourseRequest) (*models.OfferedCourse, error) {
	course, err := s.createOfferedCourse(ctx, req)
	if err != nil {
		s.metrics.SectionDecisions.WithLabelValues("create", "rejected").Inc()
		return nil, err
	}
	s.metrics.SectionDecisions.WithLabelValues("create", "accepted").Inc()
	return course, nil
}

func (s *offeredCourseServiceImpl) createOfferedCourse(ctx context.Context, req *dto.CreateOfferedCourseRequest) (*models.OfferedCourse, error) {
	registration, err := s.registrationStore.GetByID(ctx, req.SemesterRegistrationID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving semester registration: %w", err)
	}
	if registration == nil {
		return nil, apperrors.NewNotFoundError("Semester registration not found!")
	}
	if err := ensureCreatable(registration); err != nil {
		return nil, err
	}

	department, err := s.departmentStore.GetByIDWithFaculty(ctx, req.AcademicDepartmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving academic department: %w", err)
	}
	if department == nil {
		return nil, apperrors.NewNotFoundError("Academic department not found!")
	}

	course, err := s.courseStore.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.NewNotFoundError("Course not found!")
	}

	if err := scheduling.ValidateCapacity(req.MaxCapacity, req.RemainingCapacity); err != nil {
		return nil, err
	}
	maxCapacity := scheduling.DefaultMaxCapacity
	remainingCapacity := scheduling.DefaultRemainingCapacity
	if req.MaxCapacity != nil {
		maxCapacity = *req.MaxCapacity
		remainingCapacity = *req.RemainingCapacity
	}

	if len(req.Days) == 0 {
		return nil, apperrors.NewBadRequestError("Please enter at least one day")
	}
	if err := scheduling.ValidateDays(req.Days); err != nil {
		return nil, err
	}

	window, err := s.catalog.Resolve(req.TimeSlot)
	if err != nil {
		return nil, err
	}

	instructor, err := s.instructorStore.GetByID(ctx, req.InstructorID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}
	if instructor == nil {
		return nil, apperrors.NewNotFoundError("Instructor not found!")
	}

	if err := s.validateAssignment(ctx, instructor, course); err != nil {
		return nil, err
	}

	candidate := scheduling.Meeting{StartTime: window.StartTime, EndTime: window.EndTime, Days: req.Days}
	day, conflict, err := s.scanForConflict(ctx, registration.ID, instructor.ID, "", candidate)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.NewConflictError(fmt.Sprintf(
			"The instructor already has an assigned class from %s to %s on %s! Choose a different time or day",
			window.StartTime, window.EndTime, day))
	}

	offered := &models.OfferedCourse{
		SemesterRegistrationID: registration.ID,
		AcademicSemesterID:     registration.AcademicSemesterID,
		AcademicFacultyID:      department.AcademicFacultyID,
		AcademicDepartmentID:   department.ID,
		CourseID:               course.ID,
		InstructorID:           instructor.ID,
		Section:                req.Section,
		MaxCapacity:            maxCapacity,
		RemainingCapacity:      remainingCapacity,
		Days:                   req.Days,
		StartTime:              window.StartTime,
		EndTime:                window.EndTime,
	}

	if err := s.offeredStore.Create(ctx, offered); err != nil {
		return nil, s.mapPersistError(err, offered, registration, course)
	}

	resolved, err := s.offeredStore.GetByIDResolved(ctx, offered.ID)
	if err != nil {
		return nil, fmt.Errorf("error resolving created offered course: %w", err)
	}
	if resolved == nil {
		return offered, nil
	}
	return resolved, nil
}

// mapPersistError converts storage-level uniqueness violations into the
// domain conflicts they represent.
func (s *offeredCourseServiceImpl) mapPersistError(err error, offered *models.OfferedCourse, registration *models.SemesterRegistration, course *models.Course) error {
	if errors.Is(err, repositories.ErrDuplicateSection) {
		semesterLabel := ""
		if registration.AcademicSemester != nil {
			semesterLabel = registration.AcademicSemester.Label()
		}
		return apperrors.NewConflictError(fmt.Sprintf(
			"Section %d has already been offered on %s course for %s semester",
			offered.Section, course.CodeLabel(), semesterLabel))
	}
	if errors.Is(err, repositories.ErrInstructorSlotTaken) {
		s.metrics.ScheduleConflicts.Inc()
		return apperrors.NewConflictError(fmt.Sprintf(
			"The instructor already has an assigned class from %s to %s! Choose a different time or day",
			offered.StartTime, offered.EndTime))
	}
	return fmt.Errorf("error persisting offered course: %w", err)
}

// GetOfferedCourseByID retrieves a section with its referenced entities resolved
func (s *offeredCourseServiceImpl) GetOfferedCourseByID(ctx context.Context, id string) (*models.OfferedCourse, error) {
	course, err := s.offeredStore.GetByIDResolved(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving offered course: %w", err)
	}
	if course == nil {
		return nil, apperrors.NewNotFoundError("Offered course not found!")
	}
	return course, nil
}

// GetAllOfferedCourses retrieves all sections
func (s *offeredCourseServiceImpl) GetAllOfferedCourses(ctx context.Context) ([]*models.OfferedCourse, error) {
	courses, err := s.offeredStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing offered courses: %w", err)
	}
	return courses, nil
}

// UpdateOfferedCourse applies a partial update to a section. Only the
// instructor, capacities, days and time slot may change; the validation steps
// run against the effective post-update schedule, with stored values standing
// in for fields the payload omits, and the section itself excluded from the
// conflict comparison set.
func (s *offeredCourseServiceImpl) UpdateOfferedCourse(ctx context.Context, id string, req *dto.UpdateOfferedCourseRequest) (*models.OfferedCourse, error) {
	course, err := s.updateOfferedCourse(ctx, id, req)
	if err != nil {
		s.metrics.SectionDecisions.WithLabelValues("update", "rejected").Inc()
		return nil, err
	}
	s.metrics.SectionDecisions.WithLabelValues("update", "accepted").Inc()
	return course, nil
}

func (s *offeredCourseServiceImpl) updateOfferedCourse(ctx context.Context, id string, req *dto.UpdateOfferedCourseRequest) (*models.OfferedCourse, error) {
	current, err := s.offeredStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving offered course: %w", err)
	}
	if current == nil {
		return nil, apperrors.NewNotFoundError("Offered course not found!")
	}

	registration, err := s.registrationStore.GetByID(ctx, current.SemesterRegistrationID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving semester registration: %w", err)
	}
	if registration == nil {
		return nil, apperrors.NewNotFoundError("Semester registration not found!")
	}

	if registration.Status == models.RegistrationEnded {
		return nil, apperrors.NewForbiddenError("The semester has already been ended")
	}
	if registration.Status == models.RegistrationOngoing && req.TouchesCapacity() {
		return nil, apperrors.NewForbiddenError("Cannot update student capacity because the course is ongoing")
	}

	course, err := s.courseStore.GetByID(ctx, current.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if course == nil {
		return nil, apperrors.NewNotFoundError("Course not found!")
	}

	if err := scheduling.ValidateCapacity(req.MaxCapacity, req.RemainingCapacity); err != nil {
		return nil, err
	}

	days := current.Days
	if req.Days != nil {
		if len(req.Days) == 0 {
			return nil, apperrors.NewBadRequestError("Please enter at least one day")
		}
		if err := scheduling.ValidateDays(req.Days); err != nil {
			return nil, err
		}
		days = req.Days
	}

	startTime, endTime := current.StartTime, current.EndTime
	if req.TimeSlot != nil {
		window, err := s.catalog.Resolve(*req.TimeSlot)
		if err != nil {
			return nil, err
		}
		startTime, endTime = window.StartTime, window.EndTime
	}

	instructorID := current.InstructorID
	if req.InstructorID != nil {
		instructor, err := s.instructorStore.GetByID(ctx, *req.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving instructor: %w", err)
		}
		if instructor == nil {
			return nil, apperrors.NewNotFoundError("Instructor not found!")
		}
		if err := s.validateAssignment(ctx, instructor, course); err != nil {
			return nil, err
		}
		instructorID = instructor.ID
	}

	candidate := scheduling.Meeting{StartTime: startTime, EndTime: endTime, Days: days}
	day, conflict, err := s.scanForConflict(ctx, registration.ID, instructorID, current.ID, candidate)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.NewConflictError(fmt.Sprintf(
			"The assigned instructor already has a class scheduled during the specified time slot for another section on %s. "+
				"Change the time slot, the scheduled day which is causing the conflict or the instructor to proceed", day))
	}

	current.InstructorID = instructorID
	if req.MaxCapacity != nil {
		current.MaxCapacity = *req.MaxCapacity
		current.RemainingCapacity = *req.RemainingCapacity
	}
	current.Days = days
	current.StartTime = startTime
	current.EndTime = endTime

	if err := s.offeredStore.Update(ctx, current); err != nil {
		return nil, s.mapPersistError(err, current, registration, course)
	}

	resolved, err := s.offeredStore.GetByIDResolved(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("error resolving updated offered course: %w", err)
	}
	if resolved == nil {
		return current, nil
	}
	return resolved, nil
}

// TimeSlots lists the catalog entries in slot order.
func (s *offeredCourseServiceImpl) TimeSlots() []dto.TimeSlotEntry {
	windows := s.catalog.Windows()
	entries := make([]dto.TimeSlotEntry, 0, len(windows))
	for slot, window := range windows {
		entries = append(entries, dto.TimeSlotEntry{Slot: slot, StartTime: window.StartTime, EndTime: window.EndTime})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Slot < entries[j].Slot })
	return entries
}
