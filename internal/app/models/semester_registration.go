package models

import "time"

// RegistrationStatus is the lifecycle state of a semester registration period.
type RegistrationStatus string

const (
	RegistrationUpcoming RegistrationStatus = "upcoming"
	RegistrationOngoing  RegistrationStatus = "ongoing"
	RegistrationEnded    RegistrationStatus = "ended"
)

// Default credit bounds applied when a creation request omits both of them.
const (
	DefaultMinCredit = 3
	DefaultMaxCredit = 15
)

// SemesterRegistration is the administrative period that gates whether
// sections may be created or edited for one academic semester.
type SemesterRegistration struct {
	ID                 string             `json:"id" db:"id"`
	AcademicSemesterID string             `json:"academicSemesterId" db:"academic_semester_id"`
	Status             RegistrationStatus `json:"status" db:"status"`
	StartDate          time.Time          `json:"startDate" db:"start_date"`
	EndDate            time.Time          `json:"endDate" db:"end_date"`
	MinCredit          int                `json:"minCredit" db:"min_credit"`
	MaxCredit          int                `json:"maxCredit" db:"max_credit"`

	// Relations (populated when needed)
	AcademicSemester *AcademicSemester `json:"academicSemester,omitempty"`
}

// RegistrationStatusAt derives the lifecycle state of a registration window
// from the clock alone: upcoming before the window opens, ongoing inside it,
// ended from the end instant onward. The same rule drives both the initial
// status at creation and the bulk recomputation pass.
func RegistrationStatusAt(now, startDate, endDate time.Time) RegistrationStatus {
	switch {
	case now.Before(startDate):
		return RegistrationUpcoming
	case now.Before(endDate):
		return RegistrationOngoing
	default:
		return RegistrationEnded
	}
}
