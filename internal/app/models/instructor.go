package models

import "strings"

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID         string  `json:"id" db:"id"`
	FirstName  string  `json:"firstName" db:"first_name"`
	MiddleName *string `json:"middleName,omitempty" db:"middle_name"` // Nullable
	LastName   string  `json:"lastName" db:"last_name"`
	Title      string  `json:"title" db:"title"` // Academic title, e.g. "Associate Professor"
}

// FullName joins the name parts, skipping an absent middle name.
func (i *Instructor) FullName() string {
	parts := []string{i.FirstName}
	if i.MiddleName != nil && *i.MiddleName != "" {
		parts = append(parts, *i.MiddleName)
	}
	parts = append(parts, i.LastName)
	return strings.Join(parts, " ")
}
