package dto

import "time"

// CreateSemesterRegistrationRequest carries the fields for opening a
// registration period for one academic semester.
type CreateSemesterRegistrationRequest struct {
	AcademicSemesterID string    `json:"academicSemesterId" binding:"required"`
	StartDate          time.Time `json:"startDate" binding:"required"`
	EndDate            time.Time `json:"endDate" binding:"required"`
	MinCredit          *int      `json:"minCredit,omitempty"`
	MaxCredit          *int      `json:"maxCredit,omitempty"`
}

// UpdateSemesterRegistrationRequest carries the partial fields of a
// registration update. Absent fields keep their stored values. The academic
// semester reference is immutable after creation and deliberately missing here.
type UpdateSemesterRegistrationRequest struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	MinCredit *int       `json:"minCredit,omitempty"`
	MaxCredit *int       `json:"maxCredit,omitempty"`
}
