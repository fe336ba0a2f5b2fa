package models

import "registrar/internal/app/scheduling"

// OfferedCourse represents one scheduled section of a course within one
// semester registration. Start and end times are derived from the chosen
// time-slot index, never supplied directly. The academic semester and faculty
// references are denormalized from the registration and the department at
// write time.
type OfferedCourse struct {
	ID                     string               `json:"id" db:"id"`
	SemesterRegistrationID string               `json:"semesterRegistrationId" db:"semester_registration_id"`
	AcademicSemesterID     string               `json:"academicSemesterId" db:"academic_semester_id"`
	AcademicFacultyID      string               `json:"academicFacultyId" db:"academic_faculty_id"`
	AcademicDepartmentID   string               `json:"academicDepartmentId" db:"academic_department_id"`
	CourseID               string               `json:"courseId" db:"course_id"`
	InstructorID           string               `json:"instructorId" db:"instructor_id"`
	Section                int                  `json:"section" db:"section"`
	MaxCapacity            int                  `json:"maxCapacity" db:"max_capacity"`
	RemainingCapacity      int                  `json:"remainingCapacity" db:"remaining_capacity"`
	Days                   []scheduling.Weekday `json:"days"`
	StartTime              string               `json:"startTime" db:"start_time"`
	EndTime                string               `json:"endTime" db:"end_time"`

	// Relations (populated when needed)
	SemesterRegistration *SemesterRegistration `json:"semesterRegistration,omitempty"`
	AcademicSemester     *AcademicSemester     `json:"academicSemester,omitempty"`
	AcademicFaculty      *AcademicFaculty      `json:"academicFaculty,omitempty"`
	AcademicDepartment   *AcademicDepartment   `json:"academicDepartment,omitempty"`
	Course               *Course               `json:"course,omitempty"`
	Instructor           *Instructor           `json:"instructor,omitempty"`
}

// Meeting returns the section's schedule footprint for conflict scanning.
func (o *OfferedCourse) Meeting() scheduling.Meeting {
	return scheduling.Meeting{
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
		Days:      o.Days,
	}
}
