package dto

import "registrar/internal/app/scheduling"

// CreateOfferedCourseRequest carries the fields for proposing a new section.
// Start and end times are never supplied: the section is scheduled into one of
// the catalog slots via TimeSlot.
type CreateOfferedCourseRequest struct {
	SemesterRegistrationID string               `json:"semesterRegistrationId" binding:"required"`
	AcademicDepartmentID   string               `json:"academicDepartmentId" binding:"required"`
	CourseID               string               `json:"courseId" binding:"required"`
	InstructorID           string               `json:"instructorId" binding:"required"`
	Section                int                  `json:"section" binding:"required,min=1"`
	MaxCapacity            *int                 `json:"maxCapacity,omitempty"`
	RemainingCapacity      *int                 `json:"remainingCapacity,omitempty"`
	Days                   []scheduling.Weekday `json:"days" binding:"required,min=1"`
	TimeSlot               int                  `json:"timeSlot" binding:"required"`
}

// UpdateOfferedCourseRequest carries the partial fields of a section update.
// Only instructor, capacities, days and time slot may change after creation;
// course, section, registration and department are immutable. Absent fields
// mean "leave unchanged".
type UpdateOfferedCourseRequest struct {
	InstructorID      *string              `json:"instructorId,omitempty"`
	MaxCapacity       *int                 `json:"maxCapacity,omitempty"`
	RemainingCapacity *int                 `json:"remainingCapacity,omitempty"`
	Days              []scheduling.Weekday `json:"days,omitempty"`
	TimeSlot          *int                 `json:"timeSlot,omitempty"`
}

// TouchesCapacity reports whether the update payload includes either capacity
// field, which is forbidden once the registration is ongoing.
func (r *UpdateOfferedCourseRequest) TouchesCapacity() bool {
	return r.MaxCapacity != nil || r.RemainingCapacity != nil
}

// TimeSlotEntry is one catalog row in the time-slot listing.
type TimeSlotEntry struct {
	Slot      int    `json:"slot"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
