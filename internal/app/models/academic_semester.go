package models

import "fmt"

// SemesterName identifies one of the three academic semesters in a year.
type SemesterName string

const (
	SemesterSpring SemesterName = "Spring"
	SemesterSummer SemesterName = "Summer"
	SemesterFall   SemesterName = "Fall"
)

// semesterNameCodes maps a semester name to its registry code. Built once,
// read through CodeForSemesterName only.
var semesterNameCodes = map[SemesterName]string{
	SemesterSpring: "01",
	SemesterSummer: "02",
	SemesterFall:   "03",
}

// CodeForSemesterName returns the registry code for a semester name.
func CodeForSemesterName(name SemesterName) (string, bool) {
	code, ok := semesterNameCodes[name]
	return code, ok
}

// AcademicSemester represents one academic semester (e.g. Fall 2024).
type AcademicSemester struct {
	ID   string       `json:"id" db:"id"`
	Name SemesterName `json:"name" db:"name"`
	Code string       `json:"code" db:"code"`
	Year int          `json:"year" db:"year"`
}

// Label renders the semester the way scheduling messages refer to it, e.g. "Fall2024".
func (s *AcademicSemester) Label() string {
	return fmt.Sprintf("%s%d", s.Name, s.Year)
}
