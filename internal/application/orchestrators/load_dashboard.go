package orchestrators

import (
	"context"
	"sync"
	"time"

	"coachdesk/internal/adapters/remote"
	"coachdesk/internal/domain/employee"
	"coachdesk/internal/domain/session"
)

// LoadDashboardDeps holds dependencies for the dashboard load.
type LoadDashboardDeps struct {
	Source remote.RowSource
}

// DashboardData is everything one dashboard view is built from. It is
// rebuilt from scratch on every load and never mutated afterwards.
type DashboardData struct {
	Employees      []employee.Employee
	Sessions       []session.Session
	RosterFallback bool
	SessionsJoined bool
	FetchedAt      time.Time
}

// ExecuteLoadDashboard issues the roster and session loads concurrently
// and joins both results. A fixed fan-out, no retries.
// PRE: deps.Source is set
// POST: Returns both record sets, or the first load error encountered
// (session errors take precedence as the user-visible failure)
func ExecuteLoadDashboard(ctx context.Context, deps LoadDashboardDeps) (DashboardData, error) {
	var (
		wg         sync.WaitGroup
		rosterRes  LoadRosterResult
		sessionRes LoadSessionsResult
		rosterErr  error
		sessionErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		rosterRes, rosterErr = ExecuteLoadRoster(ctx, LoadRosterDeps{Source: deps.Source})
	}()
	go func() {
		defer wg.Done()
		sessionRes, sessionErr = ExecuteLoadSessions(ctx, LoadSessionsDeps{Source: deps.Source})
	}()
	wg.Wait()

	if sessionErr != nil {
		return DashboardData{}, sessionErr
	}
	if rosterErr != nil {
		return DashboardData{}, rosterErr
	}

	return DashboardData{
		Employees:      rosterRes.Employees,
		Sessions:       sessionRes.Sessions,
		RosterFallback: rosterRes.Fallback,
		SessionsJoined: sessionRes.Joined,
		FetchedAt:      time.Now(),
	}, nil
}
