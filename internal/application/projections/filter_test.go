package projections_test

import (
	"reflect"
	"testing"

	"coachdesk/internal/application/projections"
	"coachdesk/internal/domain/session"
)

func sampleStats() []projections.EmployeeStat {
	return []projections.EmployeeStat{
		{Name: "Alice Johnson", Program: "Eng"},
		{Name: "Bob Reyes", Program: "Sales"},
		{Name: "Carla Diaz", Program: "Eng"},
		{Name: "Unknown Employee"},
	}
}

// TestFilterStats_SearchIsCaseInsensitiveSubstring matches anywhere in
// the name.
func TestFilterStats_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := projections.FilterStats(sampleStats(), projections.StatFilter{Search: "JOHN"})
	if len(got) != 1 || got[0].Name != "Alice Johnson" {
		t.Fatalf("got %+v", got)
	}
}

// TestFilterStats_ProgramExactMatch and the unfiltered sentinels.
func TestFilterStats_ProgramExactMatch(t *testing.T) {
	got := projections.FilterStats(sampleStats(), projections.StatFilter{Program: "Eng"})
	if len(got) != 2 {
		t.Fatalf("eng=%d want 2", len(got))
	}

	for _, all := range []string{"", "All", "All Programs"} {
		got = projections.FilterStats(sampleStats(), projections.StatFilter{Program: all})
		if len(got) != 4 {
			t.Errorf("program=%q filtered to %d want 4", all, len(got))
		}
	}
}

// TestFilterStats_Combined applies both filters.
func TestFilterStats_Combined(t *testing.T) {
	got := projections.FilterStats(sampleStats(), projections.StatFilter{Search: "a", Program: "Eng"})
	// "Alice Johnson" and "Carla Diaz" both contain "a" and are in Eng.
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
}

// TestFilterSessions_MatchesStatFilterSemantics uses the same search and
// program rules on session records: case-insensitive name substring,
// exact program with the employee reference taking precedence.
func TestFilterSessions_MatchesStatFilterSemantics(t *testing.T) {
	sessions := []session.Session{
		{ID: "s1", Employee: &session.EmployeeRef{FullName: "Alice Johnson", Program: "Eng"}},
		{ID: "s2", Employee: &session.EmployeeRef{FullName: "Alice Johnson", Program: "Eng"}},
		{ID: "s3", Employee: &session.EmployeeRef{FullName: "Bob Reyes"}, Program: "Sales"},
	}

	got := projections.FilterSessions(sessions, projections.StatFilter{Search: "ALICE"})
	if len(got) != 2 {
		t.Fatalf("search: got %d sessions want 2", len(got))
	}

	got = projections.FilterSessions(sessions, projections.StatFilter{Program: "Sales"})
	if len(got) != 1 || got[0].ID != "s3" {
		t.Fatalf("program: got %+v", got)
	}

	got = projections.FilterSessions(sessions, projections.StatFilter{Program: "All Programs"})
	if len(got) != 3 {
		t.Fatalf("unfiltered sentinel: got %d sessions want 3", len(got))
	}
}

// TestProgramOptions is distinct, sorted, and omits empties.
func TestProgramOptions(t *testing.T) {
	got := projections.ProgramOptions(sampleStats())
	if !reflect.DeepEqual(got, []string{"Eng", "Sales"}) {
		t.Fatalf("got %v", got)
	}
}
