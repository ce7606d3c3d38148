package web

import (
	"net/http"
	"time"

	"coachdesk/internal/application/listutil"
	"coachdesk/internal/application/projections"
)

// recentSessionLimit caps the session table on the overview page.
const recentSessionLimit = 100

// sessionRow is one rendered line of the session table.
type sessionRow struct {
	ID       string    `json:"id"`
	Employee string    `json:"employee"`
	Program  string    `json:"program,omitempty"`
	Date     time.Time `json:"date"`
	Status   string    `json:"status"`
	Bucket   string    `json:"bucket"`
}

// trendBar is one month of the completed-sessions chart, with the bar
// height precomputed so the template stays logic-free.
type trendBar struct {
	Label  string `json:"label"`
	Month  string `json:"month"`
	Count  int    `json:"count"`
	Height int    `json:"-"` // 0-100, relative to the busiest month
}

// handleSessions renders the session overview: summary tiles, the
// monthly completed trend and the most recent records (GET /sessions).
// It takes the same search and program filters as the roster view; the
// tiles are recomputed over the filtered stats on every request. The
// trend chart always covers all fetched sessions.
func handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	data, err := loadDashboard(r)
	if err != nil {
		renderLoadError(w, r, err)
		return
	}

	now := timeNow()
	stats := projections.AggregateEmployeeStats(data.Sessions, data.Employees, now)
	trend := projections.MonthlyCompletedTrend(data.Sessions, now)

	lq := listutil.Parse(r.URL.Query(), nil)
	filter := projections.StatFilter{Search: lq.Search, Program: lq.Program}
	summary := projections.ComputeSummary(projections.FilterStats(stats, filter))
	visible := projections.FilterSessions(data.Sessions, filter)

	rows := make([]sessionRow, 0, min(len(visible), recentSessionLimit))
	for _, s := range visible {
		if len(rows) == recentSessionLimit {
			break
		}
		rows = append(rows, sessionRow{
			ID:       s.ID,
			Employee: s.EmployeeDisplayName(),
			Program:  s.ProgramName(),
			Date:     s.Date,
			Status:   s.Status,
			Bucket:   s.Bucket(now),
		})
	}

	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{
			"summary":         summary,
			"trend":           trend,
			"sessions":        rows,
			"sessions_joined": data.SessionsJoined,
			"fetched_at":      data.FetchedAt,
		})
		return
	}

	renderTemplate(w, r, "sessions.html", map[string]any{
		"Summary":        summary,
		"Trend":          trendBars(trend),
		"Sessions":       rows,
		"Query":          lq,
		"Programs":       projections.ProgramOptions(stats),
		"SessionsJoined": data.SessionsJoined,
		"FetchedAt":      data.FetchedAt,
	})
}

// trendBars scales counts to percentage heights against the peak month.
func trendBars(points []projections.TrendPoint) []trendBar {
	peak := 0
	for _, p := range points {
		if p.Count > peak {
			peak = p.Count
		}
	}
	bars := make([]trendBar, 0, len(points))
	for _, p := range points {
		h := 0
		if peak > 0 {
			h = p.Count * 100 / peak
		}
		bars = append(bars, trendBar{Label: p.Label, Month: p.Month, Count: p.Count, Height: h})
	}
	return bars
}
