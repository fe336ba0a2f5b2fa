package scheduling

// Meeting is the schedule footprint of one section: its resolved time window
// and the set of weekdays it meets.
type Meeting struct {
	StartTime string
	EndTime   string
	Days      []Weekday
}

// FindConflict scans the instructor's existing meetings for one that collides
// with the candidate: an identical time window and at least one shared day.
// It returns the first offending day. Exact window equality is sufficient
// because every section's window comes from the closed slot catalog, in which
// distinct slots never overlap.
func FindConflict(existing []Meeting, candidate Meeting) (Weekday, bool) {
	candidateDays := make(map[Weekday]struct{}, len(candidate.Days))
	for _, day := range candidate.Days {
		candidateDays[day] = struct{}{}
	}

	for _, meeting := range existing {
		if meeting.StartTime != candidate.StartTime || meeting.EndTime != candidate.EndTime {
			continue
		}
		for _, day := range meeting.Days {
			if _, shared := candidateDays[day]; shared {
				return day, true
			}
		}
	}

	return "", false
}
