package scheduling

import (
	"fmt"

	"registrar/internal/pkg/apperrors"
)

// Weekday is a meeting-day tag for an offered course.
type Weekday string

const (
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
)

// weekdays is the fixed academic week, Saturday first.
var weekdays = [...]Weekday{
	Saturday,
	Sunday,
	Monday,
	Tuesday,
	Wednesday,
	Thursday,
	Friday,
}

// Weekdays returns the fixed list of valid meeting-day tags.
func Weekdays() []Weekday {
	days := make([]Weekday, len(weekdays))
	copy(days, weekdays[:])
	return days
}

// IsValidDay reports whether the tag is one of the seven weekday tags.
func IsValidDay(day Weekday) bool {
	for _, d := range weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ValidateDays checks a day set for unknown tags and duplicates. Whether an
// empty set is acceptable is the caller's concern: creation requires at least
// one day, an update may omit days entirely to leave them unchanged.
func ValidateDays(days []Weekday) error {
	seen := make(map[Weekday]struct{}, len(days))
	for _, day := range days {
		if !IsValidDay(day) {
			return apperrors.NewBadRequestError(fmt.Sprintf("Invalid day %q. Please enter a valid weekday", day))
		}
		if _, ok := seen[day]; ok {
			return apperrors.NewUnprocessableError("Duplicate days are not allowed")
		}
		seen[day] = struct{}{}
	}
	return nil
}
