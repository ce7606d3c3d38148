package orchestrators

import (
	"context"
	"log/slog"

	"coachdesk/internal/adapters/remote"
	"coachdesk/internal/domain/employee"
	"coachdesk/internal/domain/row"
	"coachdesk/internal/domain/session"
)

// LoadRosterDeps holds dependencies for the roster load.
type LoadRosterDeps struct {
	Source remote.RowSource
}

// LoadRosterResult carries the reconciled roster.
type LoadRosterResult struct {
	Employees []employee.Employee

	// Fallback is true when the roster was reconstructed from the
	// session log because the dedicated table was missing or empty.
	Fallback bool
}

// ExecuteLoadRoster retrieves the employee roster, preferring the
// dedicated table and falling back to scanning the session log.
// PRE: deps.Source is set
// POST: An empty roster is a valid result, never an error; only a failure
// of the fallback scan itself propagates
// INVARIANT: The primary attempt is silent; a missing roster table is an
// expected, non-fatal outcome
func ExecuteLoadRoster(ctx context.Context, deps LoadRosterDeps) (LoadRosterResult, error) {
	rows, err := remote.FetchAllRows(ctx, deps.Source, remote.Query{
		Table:   "employees",
		OrderBy: "id",
	}, true)
	if err == nil && len(rows) > 0 {
		out := make([]employee.Employee, 0, len(rows))
		for _, r := range rows {
			out = append(out, employee.FromRow(r))
		}
		return LoadRosterResult{Employees: out}, nil
	}
	if err != nil {
		slog.Info("roster_fallback", "reason", err.Error())
	} else {
		slog.Info("roster_fallback", "reason", "employees table empty")
	}

	flat, err := remote.FetchAllRows(ctx, deps.Source, remote.Query{
		Table:   "sessions",
		NotNull: []string{"employee_name"},
		OrderBy: "created_at",
	}, true)
	if err != nil {
		if remote.IsMissingRelation(err) {
			// No session table either: an employee-less end state.
			return LoadRosterResult{Fallback: true}, nil
		}
		return LoadRosterResult{}, err
	}

	return LoadRosterResult{
		Employees: reconcileRosterFromSessions(flat),
		Fallback:  true,
	}, nil
}

// reconcileRosterFromSessions deduplicates session rows into one employee
// record per key (employee id when present, else name). First seen wins,
// except that a later row replaces an earlier one when the earlier lacked
// a program value and the later has one.
func reconcileRosterFromSessions(rows []row.Row) []employee.Employee {
	index := make(map[string]int)
	var out []employee.Employee

	for _, r := range rows {
		e := employeeFromSessionRow(r)
		key := e.ID
		if key == "" {
			key = e.NameKey()
		}
		if key == "" || key == "unknown" {
			continue
		}

		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, e)
			continue
		}
		if out[at].Program == "" && e.Program != "" {
			out[at] = e
		}
	}
	return out
}

// employeeFromSessionRow extracts the flat employee columns a session row
// carries. The session's own id is deliberately not used as the employee
// identifier here.
func employeeFromSessionRow(r row.Row) employee.Employee {
	e := employee.Employee{Raw: r}
	e.ID, _ = row.Pick(r, "employee_id")
	e.FullName, _ = row.Pick(r, session.FlatNameFields...)
	e.Program, _ = row.Pick(r, session.ProgramFields...)
	e.Email, _ = row.Pick(r, "employee_email", "email")
	e.AvatarURL, _ = row.Pick(r, "avatar_url", "avatar")
	return e
}
