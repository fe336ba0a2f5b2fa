package services

import (
	"context"
	"testing"
	"time"

	"registrar/internal/app/models"
	"registrar/internal/app/models/dto"
	"registrar/internal/app/scheduling"
	"registrar/internal/pkg/apperrors"
	"registrar/internal/pkg/metrics"
)

type offeredCourseFixture struct {
	svc               OfferedCourseService
	offeredStore      *mockOfferedStore
	registrationStore *mockRegistrationStore
	departmentStore   *mockDepartmentStore
	courseStore       *mockCourseStore
	instructorStore   *mockInstructorStore
}

// setupOfferedCourseFixture wires the service against an upcoming
// registration, one department, one course and two assigned instructors.
func setupOfferedCourseFixture() *offeredCourseFixture {
	f := &offeredCourseFixture{
		offeredStore:      newMockOfferedStore(),
		registrationStore: newMockRegistrationStore(),
		departmentStore:   newMockDepartmentStore(),
		courseStore:       newMockCourseStore(),
		instructorStore:   newMockInstructorStore(),
	}
	f.svc = NewOfferedCourseService(
		f.offeredStore,
		f.registrationStore,
		f.departmentStore,
		f.courseStore,
		f.instructorStore,
		scheduling.NewTimeSlotCatalog(),
		metrics.New(),
	)

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	f.registrationStore.registrations["reg-001"] = &models.SemesterRegistration{
		ID:                 "reg-001",
		AcademicSemesterID: "sem-001",
		Status:             models.RegistrationUpcoming,
		StartDate:          now.AddDate(0, 1, 0),
		EndDate:            now.AddDate(0, 4, 0),
		MinCredit:          3,
		MaxCredit:          15,
		AcademicSemester:   &models.AcademicSemester{ID: "sem-001", Name: models.SemesterFall, Code: "03", Year: 2025},
	}
	f.departmentStore.departments["dept-001"] = &models.AcademicDepartment{
		ID:                "dept-001",
		AcademicFacultyID: "fac-001",
		Name:              "Computer Engineering",
		Code:              "CENG",
	}
	f.courseStore.courses["course-001"] = &models.Course{
		ID: "course-001", Prefix: "CSE", Code: 101, Title: "Introduction to Programming", Credits: 3,
	}
	f.instructorStore.instructors["inst-001"] = &models.Instructor{
		ID: "inst-001", FirstName: "Ayse", LastName: "Demir", Title: "Assistant Professor",
	}
	f.instructorStore.instructors["inst-002"] = &models.Instructor{
		ID: "inst-002", FirstName: "Mehmet", LastName: "Yilmaz", Title: "Professor",
	}
	f.courseStore.assignments["course-001"] = []string{"inst-001", "inst-002"}

	return f
}

func (f *offeredCourseFixture) createRequest() *dto.CreateOfferedCourseRequest {
	return &dto.CreateOfferedCourseRequest{
		SemesterRegistrationID: "reg-001",
		AcademicDepartmentID:   "dept-001",
		CourseID:               "course-001",
		InstructorID:           "inst-001",
		Section:                1,
		Days:                   []scheduling.Weekday{scheduling.Monday, scheduling.Wednesday},
		TimeSlot:               1,
	}
}

func TestOfferedCourseService_Create_Success(t *testing.T) {
	f := setupOfferedCourseFixture()

	course, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if course.StartTime != "08:00:00" || course.EndTime != "09:20:00" {
		t.Errorf("slot 1 should resolve to 08:00:00-09:20:00, got %s-%s", course.StartTime, course.EndTime)
	}
	if course.MaxCapacity != scheduling.DefaultMaxCapacity || course.RemainingCapacity != scheduling.DefaultRemainingCapacity {
		t.Errorf("expected default capacities, got %d/%d", course.MaxCapacity, course.RemainingCapacity)
	}
	if course.AcademicSemesterID != "sem-001" {
		t.Errorf("semester reference should be denormalized from the registration, got %q", course.AcademicSemesterID)
	}
	if course.AcademicFacultyID != "fac-001" {
		t.Errorf("faculty reference should be denormalized from the department, got %q", course.AcademicFacultyID)
	}
}

func TestOfferedCourseService_Create_ExplicitCapacity(t *testing.T) {
	f := setupOfferedCourseFixture()

	req := f.createRequest()
	req.MaxCapacity = intPtr(50)
	req.RemainingCapacity = intPtr(45)

	course, err := f.svc.CreateOfferedCourse(context.Background(), req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if course.MaxCapacity != 50 || course.RemainingCapacity != 45 {
		t.Errorf("expected capacities 50/45, got %d/%d", course.MaxCapacity, course.RemainingCapacity)
	}
}

func TestOfferedCourseService_Create_CapacityPairRequired(t *testing.T) {
	f := setupOfferedCourseFixture()

	req := f.createRequest()
	req.MaxCapacity = intPtr(50)

	_, err := f.svc.CreateOfferedCourse(context.Background(), req)
	if !apperrors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected a bad request for a lone capacity field, got %v", err)
	}
}

func TestOfferedCourseService_Create_LifecycleGate(t *testing.T) {
	tests := []struct {
		name   string
		status models.RegistrationStatus
	}{
		{name: "ongoing registration", status: models.RegistrationOngoing},
		{name: "ended registration", status: models.RegistrationEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupOfferedCourseFixture()
			f.registrationStore.registrations["reg-001"].Status = tt.status

			_, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest())
			if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
				t.Fatalf("expected forbidden for a %s registration, got %v", tt.status, err)
			}
		})
	}
}

func TestOfferedCourseService_Create_MissingReferences(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*dto.CreateOfferedCourseRequest)
	}{
		{name: "registration", mutate: func(r *dto.CreateOfferedCourseRequest) { r.SemesterRegistrationID = "missing" }},
		{name: "department", mutate: func(r *dto.CreateOfferedCourseRequest) { r.AcademicDepartmentID = "missing" }},
		{name: "course", mutate: func(r *dto.CreateOfferedCourseRequest) { r.CourseID = "missing" }},
		{name: "instructor", mutate: func(r *dto.CreateOfferedCourseRequest) { r.InstructorID = "missing" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			f := setupOfferedCourseFixture()
			req := f.createRequest()
			tt.mutate(req)

			_, err := f.svc.CreateOfferedCourse(context.Background(), req)
			if !apperrors.Is(err, apperrors.ErrResourceNotFound) {
				t.Fatalf("expected not found for a missing %s, got %v", tt.name, err)
			}
		})
	}
}

func TestOfferedCourseService_Create_DayValidation(t *testing.T) {
	f := setupOfferedCourseFixture()

	req := f.createRequest()
	req.Days = nil
	if _, err := f.svc.CreateOfferedCourse(context.Background(), req); !apperrors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected a bad request for an empty day set, got %v", err)
	}

	req = f.createRequest()
	req.Days = []scheduling.Weekday{scheduling.Monday, "Moonday"}
	if _, err := f.svc.CreateOfferedCourse(context.Background(), req); !apperrors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected a bad request for an unknown day, got %v", err)
	}

	req = f.createRequest()
	req.Days = []scheduling.Weekday{scheduling.Monday, scheduling.Monday}
	if _, err := f.svc.CreateOfferedCourse(context.Background(), req); !apperrors.Is(err, apperrors.ErrUnprocessableContent) {
		t.Fatalf("expected unprocessable content for duplicate days, got %v", err)
	}
}

func TestOfferedCourseService_Create_InvalidTimeSlot(t *testing.T) {
	f := setupOfferedCourseFixture()

	for _, slot := range []int{0, 8} {
		req := f.createRequest()
		req.TimeSlot = slot
		if _, err := f.svc.CreateOfferedCourse(context.Background(), req); !apperrors.Is(err, apperrors.ErrBadRequest) {
			t.Fatalf("expected a bad request for slot %d, got %v", slot, err)
		}
	}
}

func TestOfferedCourseService_Create_UnassignedInstructor(t *testing.T) {
	f := setupOfferedCourseFixture()
	f.instructorStore.instructors["inst-999"] = &models.Instructor{
		ID: "inst-999", FirstName: "Zeynep", LastName: "Kaya", Title: "Associate Professor",
	}

	req := f.createRequest()
	req.InstructorID = "inst-999"

	_, err := f.svc.CreateOfferedCourse(context.Background(), req)
	if !apperrors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected a conflict for an unassigned instructor, got %v", err)
	}
}

func TestOfferedCourseService_Create_NoAssignmentsAtAll(t *testing.T) {
	f := setupOfferedCourseFixture()
	f.courseStore.assignments["course-001"] = nil

	_, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest())
	if !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found when the course has no assigned instructors, got %v", err)
	}
}

func TestOfferedCourseService_Create_DuplicateSection(t *testing.T) {
	f := setupOfferedCourseFixture()

	if _, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	req := f.createRequest()
	req.InstructorID = "inst-002"
	req.Days = []scheduling.Weekday{scheduling.Tuesday}
	req.TimeSlot = 3

	_, err := f.svc.CreateOfferedCourse(context.Background(), req)
	if !apperrors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected a conflict for a duplicate section number, got %v", err)
	}
}

// Three successive proposals for the same instructor and slot: the second
// shares Monday with the first and must be rejected, the third moves to
// disjoint days and must pass.
func TestOfferedCourseService_Create_ConflictScenario(t *testing.T) {
	f := setupOfferedCourseFixture()

	first := f.createRequest()
	first.Days = []scheduling.Weekday{scheduling.Monday, scheduling.Wednesday}
	if _, err := f.svc.CreateOfferedCourse(context.Background(), first); err != nil {
		t.Fatalf("first section should be accepted: %v", err)
	}

	second := f.createRequest()
	second.Section = 2
	second.Days = []scheduling.Weekday{scheduling.Monday, scheduling.Friday}
	_, err := f.svc.CreateOfferedCourse(context.Background(), second)
	if !apperrors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("second section shares Monday in the same slot, expected a conflict, got %v", err)
	}

	third := f.createRequest()
	third.Section = 2
	third.Days = []scheduling.Weekday{scheduling.Tuesday, scheduling.Thursday}
	if _, err := f.svc.CreateOfferedCourse(context.Background(), third); err != nil {
		t.Fatalf("third section has disjoint days, should be accepted: %v", err)
	}
}

func TestOfferedCourseService_Create_SameSlotDifferentInstructor(t *testing.T) {
	f := setupOfferedCourseFixture()

	if _, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	req := f.createRequest()
	req.Section = 2
	req.InstructorID = "inst-002"

	if _, err := f.svc.CreateOfferedCourse(context.Background(), req); err != nil {
		t.Fatalf("a different instructor may hold the same slot and days: %v", err)
	}
}

func TestOfferedCourseService_Update_NotFound(t *testing.T) {
	f := setupOfferedCourseFixture()

	_, err := f.svc.UpdateOfferedCourse(context.Background(), "missing", &dto.UpdateOfferedCourseRequest{})
	if !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOfferedCourseService_Update_EndedForbidden(t *testing.T) {
	f := setupOfferedCourseFixture()

	created, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	f.registrationStore.registrations["reg-001"].Status = models.RegistrationEnded

	slot := 2
	_, err = f.svc.UpdateOfferedCourse(context.Background(), created.ID, &dto.UpdateOfferedCourseRequest{TimeSlot: &slot})
	if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected forbidden once the registration ended, got %v", err)
	}
}

func TestOfferedCourseService_Update_OngoingCapacityForbidden(t *testing.T) {
	f := setupOfferedCourseFixture()

	created, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	f.registrationStore.registrations["reg-001"].Status = models.RegistrationOngoing

	_, err = f.svc.UpdateOfferedCourse(context.Background(), created.ID, &dto.UpdateOfferedCourseRequest{
		MaxCapacity:       intPtr(40),
		RemainingCapacity: intPtr(40),
	})
	if !apperrors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected forbidden for a capacity change while ongoing, got %v", err)
	}
}

func TestOfferedCourseService_Update_OngoingInstructorChangeAllowed(t *testing.T) {
	f := setupOfferedCourseFixture()

	created, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	f.registrationStore.registrations["reg-001"].Status = models.RegistrationOngoing

	instructorID := "inst-002"
	updated, err := f.svc.UpdateOfferedCourse(context.Background(), created.ID, &dto.UpdateOfferedCourseRequest{InstructorID: &instructorID})
	if err != nil {
		t.Fatalf("instructor change should be allowed while ongoing: %v", err)
	}
	if updated.InstructorID != "inst-002" {
		t.Errorf("expected instructor inst-002 after update, got %s", updated.InstructorID)
	}
}

func TestOfferedCourseService_Update_ExcludesOwnSection(t *testing.T) {
	f := setupOfferedCourseFixture()

	created, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Re-submitting the section's own schedule must not collide with itself.
	slot := 1
	if _, err := f.svc.UpdateOfferedCourse(context.Background(), created.ID, &dto.UpdateOfferedCourseRequest{
		TimeSlot: &slot,
		Days:     []scheduling.Weekday{scheduling.Monday, scheduling.Wednesday},
	}); err != nil {
		t.Fatalf("a section should never conflict with itself: %v", err)
	}
}

func TestOfferedCourseService_Update_ConflictWithSibling(t *testing.T) {
	f := setupOfferedCourseFixture()

	first := f.createRequest()
	if _, err := f.svc.CreateOfferedCourse(context.Background(), first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := f.createRequest()
	second.Section = 2
	second.Days = []scheduling.Weekday{scheduling.Tuesday}
	createdSecond, err := f.svc.CreateOfferedCourse(context.Background(), second)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	// Moving the second section onto Monday in the same slot collides with
	// the first.
	_, err = f.svc.UpdateOfferedCourse(context.Background(), createdSecond.ID, &dto.UpdateOfferedCourseRequest{
		Days: []scheduling.Weekday{scheduling.Monday},
	})
	if !apperrors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected a conflict after moving onto an occupied day, got %v", err)
	}
}

func TestOfferedCourseService_Update_EmptyDaySetRejected(t *testing.T) {
	f := setupOfferedCourseFixture()

	created, err := f.svc.CreateOfferedCourse(context.Background(), f.createRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = f.svc.UpdateOfferedCourse(context.Background(), created.ID, &dto.UpdateOfferedCourseRequest{
		Days: []scheduling.Weekday{},
	})
	if !apperrors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected a bad request for an explicitly empty day set, got %v", err)
	}
}

func TestOfferedCourseService_TimeSlots(t *testing.T) {
	f := setupOfferedCourseFixture()

	entries := f.svc.TimeSlots()
	if len(entries) != 7 {
		t.Fatalf("expected 7 catalog entries, got %d", len(entries))
	}
	for i, entry := range entries {
		if entry.Slot != i+1 {
			t.Errorf("entry %d should be slot %d, got %d", i, i+1, entry.Slot)
		}
		if entry.StartTime >= entry.EndTime {
			t.Errorf("slot %d window %s-%s is not chronological", entry.Slot, entry.StartTime, entry.EndTime)
		}
	}
}

func TestOfferedCourseService_GetByID_NotFound(t *testing.T) {
	f := setupOfferedCourseFixture()

	_, err := f.svc.GetOfferedCourseByID(context.Background(), "missing")
	if !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
