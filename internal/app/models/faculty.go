package models

// AcademicFaculty represents an academic division containing departments.
// Not to be confused with an instructor: "faculty" here is the organizational unit.
type AcademicFaculty struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`
}
