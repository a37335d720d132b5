package pipeline

import "time"

// isWeekend reports whether the date falls on a Saturday or Sunday in
// UTC. The logical day, not the wall clock of the host, decides.
func isWeekend(date time.Time) bool {
	switch date.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}
