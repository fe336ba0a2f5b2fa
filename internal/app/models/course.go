package models

import "fmt"

// Course represents a course in the catalog.
type Course struct {
	ID      string `json:"id" db:"id"`
	Prefix  string `json:"prefix" db:"prefix"`
	Code    int    `json:"code" db:"code"`
	Title   string `json:"title" db:"title"`
	Credits int    `json:"credits" db:"credits"`
}

// CodeLabel renders the course the way scheduling messages refer to it, e.g. "CSE101".
func (c *Course) CodeLabel() string {
	return fmt.Sprintf("%s%d", c.Prefix, c.Code)
}
