package scheduling

import (
	"fmt"

	"registrar/internal/pkg/apperrors"
)

// Window is a wall-clock time range in hh:mm:ss form, start strictly before end.
type Window struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// TimeSlotCatalog maps a slot index to its wall-clock window. The catalog is
// immutable after construction; every section derives its start and end time
// from a slot index and never supplies times directly.
type TimeSlotCatalog struct {
	slots map[int]Window
}

// NewTimeSlotCatalog builds the fixed seven-slot academic day. It panics if
// any entry has a non-chronological window, since the catalog is wired at
// process start and a malformed entry is a programming error.
func NewTimeSlotCatalog() *TimeSlotCatalog {
	catalog := &TimeSlotCatalog{
		slots: map[int]Window{
			1: {StartTime: "08:00:00", EndTime: "09:20:00"},
			2: {StartTime: "09:30:00", EndTime: "10:50:00"},
			3: {StartTime: "11:00:00", EndTime: "12:20:00"},
			4: {StartTime: "12:30:00", EndTime: "13:50:00"},
			5: {StartTime: "14:00:00", EndTime: "15:20:00"},
			6: {StartTime: "15:30:00", EndTime: "16:50:00"},
			7: {StartTime: "17:00:00", EndTime: "18:20:00"},
		},
	}

	for index, window := range catalog.slots {
		if window.StartTime >= window.EndTime {
			panic(fmt.Sprintf("time slot %d has a non-chronological window %s-%s", index, window.StartTime, window.EndTime))
		}
	}

	return catalog
}

// Size returns the number of slots in the catalog.
func (c *TimeSlotCatalog) Size() int {
	return len(c.slots)
}

// Resolve maps a slot index to its window. Indices outside 1..7 fail with a
// bad-request error.
func (c *TimeSlotCatalog) Resolve(slot int) (Window, error) {
	window, ok := c.slots[slot]
	if !ok {
		return Window{}, apperrors.NewBadRequestError(
			fmt.Sprintf("Invalid time slot number. Valid time slot number range is from 1 to %d", len(c.slots)))
	}
	return window, nil
}

// Windows returns every catalog entry keyed by slot index.
func (c *TimeSlotCatalog) Windows() map[int]Window {
	windows := make(map[int]Window, len(c.slots))
	for index, window := range c.slots {
		windows[index] = window
	}
	return windows
}
