package projections

import (
	"strings"
	"time"

	"coachdesk/internal/domain/employee"
	"coachdesk/internal/domain/session"
)

// EmployeeStat is one aggregated record per unique normalized name key
// across the union of roster and sessions. Rebuilt from scratch on every
// fetch, never mutated incrementally.
type EmployeeStat struct {
	ID          string
	Name        string
	Program     string
	AvatarURL   string
	Completed   int
	NoShow      int
	Scheduled   int
	Total       int
	LastSession time.Time
}

// ProgramLabel returns the program for display, with placeholder.
func (s EmployeeStat) ProgramLabel() string {
	if s.Program == "" {
		return employee.NoProgram
	}
	return s.Program
}

// AggregateEmployeeStats reconciles the two fetched record sets into one
// stat record per employee, keyed case-insensitively by display name.
// PRE: now is the classification instant
// POST: Every roster employee appears, even with zero sessions; every
// session's employee appears, synthesized on the fly when absent from the
// roster; Completed+NoShow+Scheduled == Total for every record
func AggregateEmployeeStats(sessions []session.Session, employees []employee.Employee, now time.Time) []EmployeeStat {
	index := make(map[string]int)
	var stats []EmployeeStat

	// Seed one record per roster employee.
	for _, e := range employees {
		key := e.NameKey()
		if _, seen := index[key]; seen {
			continue
		}
		index[key] = len(stats)
		stats = append(stats, EmployeeStat{
			ID:        e.ID,
			Name:      e.DisplayName(),
			Program:   e.Program,
			AvatarURL: e.AvatarURL,
		})
	}

	for _, s := range sessions {
		name := s.EmployeeDisplayName()
		key := strings.ToLower(name)

		at, seen := index[key]
		if !seen {
			// A session for an employee absent from the roster creates
			// an entry on the fly; the session's own id stands in when
			// the row carries no employee id.
			id := s.EmployeeID()
			if id == "" {
				id = s.ID
			}
			stat := EmployeeStat{ID: id, Name: name}
			if s.Employee != nil {
				stat.Program = s.Employee.Program
				stat.AvatarURL = s.Employee.AvatarURL
			}
			if stat.Program == "" {
				stat.Program = s.Program
			}
			at = len(stats)
			index[key] = at
			stats = append(stats, stat)
		}

		switch s.Bucket(now) {
		case session.StatusNoShow:
			stats[at].NoShow++
		case session.StatusCompleted:
			stats[at].Completed++
		default:
			stats[at].Scheduled++
		}
		stats[at].Total++

		if s.Date.After(stats[at].LastSession) {
			stats[at].LastSession = s.Date
		}
	}

	return stats
}
