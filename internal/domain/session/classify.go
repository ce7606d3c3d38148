package session

import (
	"strings"
	"time"
)

// Status buckets. Every session falls into exactly one.
const (
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"
	StatusScheduled = "scheduled"
)

// noShowMarkers are matched as case-insensitive substrings of the free-text
// status. Late cancellations count as no-shows.
var noShowMarkers = []string{"no show", "noshow", "late cancel"}

// Classify buckets a free-text status into exactly one of the three status
// buckets, in precedence order: no-show, then completed, then scheduled.
// A blank status counts as completed once the session date has passed at
// evaluation time; a blank status with a future (or missing) date stays
// scheduled and is reclassified on a later reload.
// PRE: now is the evaluation instant
// POST: Returns one of StatusCompleted, StatusNoShow, StatusScheduled
func Classify(status string, date time.Time, now time.Time) string {
	s := strings.ToLower(strings.TrimSpace(status))
	for _, marker := range noShowMarkers {
		if strings.Contains(s, marker) {
			return StatusNoShow
		}
	}
	if strings.Contains(s, "completed") {
		return StatusCompleted
	}
	if s == "" && !date.IsZero() && date.Before(now) {
		return StatusCompleted
	}
	return StatusScheduled
}

// Bucket classifies this session at the given instant.
func (s Session) Bucket(now time.Time) string {
	return Classify(s.Status, s.Date, now)
}
