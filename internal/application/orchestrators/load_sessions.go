package orchestrators

import (
	"context"
	"log/slog"

	"coachdesk/internal/adapters/remote"
	"coachdesk/internal/domain/session"
)

// joinedSessionSelect asks the store to nest the owning employee onto
// each session row.
const joinedSessionSelect = "*, employee:employees(id,first_name,last_name,full_name,name,program,avatar_url)"

// LoadSessionsDeps holds dependencies for the session load.
type LoadSessionsDeps struct {
	Source remote.RowSource
}

// LoadSessionsResult carries the fetched sessions.
type LoadSessionsResult struct {
	Sessions []session.Session

	// Joined is true when the preferred joined schema served the rows.
	Joined bool
}

// ExecuteLoadSessions retrieves all session records, preferring the
// joined select and falling back to a flat query.
// PRE: deps.Source is set
// POST: Every returned session carries a uniform employee reference when
// any employee information exists on its row
// INVARIANT: The joined attempt is silent; only the flat fallback fails
// loudly, and its failure is the final user-visible error
func ExecuteLoadSessions(ctx context.Context, deps LoadSessionsDeps) (LoadSessionsResult, error) {
	rows, err := remote.FetchAllRows(ctx, deps.Source, remote.Query{
		Table:     "sessions",
		Select:    joinedSessionSelect,
		OrderBy:   "session_date",
		OrderDesc: true,
	}, true)
	joined := err == nil
	if err != nil {
		// Any failure here is treated as a likely schema mismatch and
		// not inspected further.
		slog.Info("sessions_fallback", "reason", err.Error())
		rows, err = remote.FetchAllRows(ctx, deps.Source, remote.Query{
			Table:     "sessions",
			OrderBy:   "created_at",
			OrderDesc: true,
		}, false)
		if err != nil {
			return LoadSessionsResult{}, err
		}
	}

	out := make([]session.Session, 0, len(rows))
	for _, r := range rows {
		out = append(out, session.FromRow(r))
	}
	return LoadSessionsResult{Sessions: out, Joined: joined}, nil
}
