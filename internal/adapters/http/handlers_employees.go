package web

import (
	"net/http"
	"sort"
	"strings"

	"coachdesk/internal/application/listutil"
	"coachdesk/internal/application/orchestrators"
	"coachdesk/internal/application/projections"
	"coachdesk/internal/domain/row"
)

// employeeSortColumns are the columns the roster table can sort by.
var employeeSortColumns = []string{"name", "program", "total", "completed", "noshow", "scheduled", "last"}

// handleEmployees renders the roster list with per-employee session
// counters (GET /employees). Supports search, program filter, sorting
// and pagination; ?raw=1 adds the record inspector.
func handleEmployees(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	data, err := loadDashboard(r)
	if err != nil {
		renderLoadError(w, r, err)
		return
	}

	stats := projections.AggregateEmployeeStats(data.Sessions, data.Employees, timeNow())

	lq := listutil.Parse(r.URL.Query(), employeeSortColumns)
	filtered := projections.FilterStats(stats, projections.StatFilter{
		Search:  lq.Search,
		Program: lq.Program,
	})
	sortStats(filtered, lq.Sort, lq.Dir)

	summary := projections.ComputeSummary(filtered)
	pageInfo := listutil.NewPageInfo(lq.Page, lq.PerPage, len(filtered))
	page := listutil.Slice(filtered, pageInfo)

	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{
			"employees":       page,
			"summary":         summary,
			"page":            pageInfo,
			"roster_fallback": data.RosterFallback,
			"fetched_at":      data.FetchedAt,
		})
		return
	}

	view := map[string]any{
		"Stats":          page,
		"Summary":        summary,
		"PageInfo":       pageInfo,
		"Query":          lq,
		"Programs":       projections.ProgramOptions(stats),
		"RosterFallback": data.RosterFallback,
		"FetchedAt":      data.FetchedAt,
	}

	// Record inspector: the raw fetched rows behind the first page, for
	// debugging column mapping against an unfamiliar project.
	if r.URL.Query().Get("raw") == "1" {
		view["ShowRaw"] = true
		view["RawEmployees"] = rawSample(employeeRows(data), 5)
		view["RawSessions"] = rawSample(sessionRows(data), 5)
	}

	renderTemplate(w, r, "employees.html", view)
}

// sortStats orders stats in place. The default (empty column) is name
// ascending, which FilterStats already preserves from aggregation order.
func sortStats(stats []projections.EmployeeStat, col, dir string) {
	if col == "" {
		col = "name"
	}
	less := func(a, b projections.EmployeeStat) bool {
		switch col {
		case "program":
			return strings.ToLower(a.Program) < strings.ToLower(b.Program)
		case "total":
			return a.Total < b.Total
		case "completed":
			return a.Completed < b.Completed
		case "noshow":
			return a.NoShow < b.NoShow
		case "scheduled":
			return a.Scheduled < b.Scheduled
		case "last":
			return a.LastSession.Before(b.LastSession)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if dir == "desc" {
			return less(stats[j], stats[i])
		}
		return less(stats[i], stats[j])
	})
}

func rawSample(rows []row.Row, n int) []row.Row {
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func employeeRows(data orchestrators.DashboardData) []row.Row {
	out := make([]row.Row, 0, len(data.Employees))
	for _, e := range data.Employees {
		out = append(out, e.Raw)
	}
	return out
}

func sessionRows(data orchestrators.DashboardData) []row.Row {
	out := make([]row.Row, 0, len(data.Sessions))
	for _, s := range data.Sessions {
		out = append(out, s.Raw)
	}
	return out
}
