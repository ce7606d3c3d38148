package projections

import (
	"sort"
	"strings"

	"coachdesk/internal/domain/session"
)

// StatFilter is the presentation-level filter applied over an already
// aggregated stat list. Filtering is a pure, synchronous projection,
// never a refetch.
type StatFilter struct {
	Search  string // case-insensitive substring match on name
	Program string // exact match; "", "All", "All Programs" mean unfiltered
}

// unfiltered program selections.
func programUnfiltered(p string) bool {
	return p == "" || p == "All" || p == "All Programs"
}

// FilterStats projects the stat list through the filter.
// POST: The input slice is not modified
func FilterStats(stats []EmployeeStat, f StatFilter) []EmployeeStat {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	all := programUnfiltered(f.Program)

	out := make([]EmployeeStat, 0, len(stats))
	for _, s := range stats {
		if search != "" && !strings.Contains(strings.ToLower(s.Name), search) {
			continue
		}
		if !all && s.Program != f.Program {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterSessions projects session records through the same filter the
// stat list uses, matching the resolved employee name and program. Both
// list views share one filter vocabulary.
// POST: The input slice is not modified
func FilterSessions(sessions []session.Session, f StatFilter) []session.Session {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	all := programUnfiltered(f.Program)

	out := make([]session.Session, 0, len(sessions))
	for _, s := range sessions {
		if search != "" && !strings.Contains(s.EmployeeKey(), search) {
			continue
		}
		if !all && s.ProgramName() != f.Program {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ProgramOptions lists the distinct program labels present, sorted, for
// the filter dropdown. Empty programs are omitted.
func ProgramOptions(stats []EmployeeStat) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range stats {
		if s.Program == "" || seen[s.Program] {
			continue
		}
		seen[s.Program] = true
		out = append(out, s.Program)
	}
	sort.Strings(out)
	return out
}
