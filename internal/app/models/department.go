package models

// AcademicDepartment represents a department within an academic faculty
type AcademicDepartment struct {
	ID                string `json:"id" db:"id"`
	AcademicFacultyID string `json:"academicFacultyId" db:"academic_faculty_id"`
	Name              string `json:"name" db:"name"`
	Code              string `json:"code" db:"code"`

	// Relations (populated when needed)
	AcademicFaculty *AcademicFaculty `json:"academicFaculty,omitempty"`
}
