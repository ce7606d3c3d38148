package web

import (
	"net/http"
	"time"

	"coachdesk/internal/adapters/http/middleware"
	"coachdesk/internal/adapters/http/perf"
	"coachdesk/internal/application/orchestrators"
	"coachdesk/internal/application/projections"
)

// handleEmailSummary mails the current dashboard summary to the
// signed-in user (POST /email-summary).
func handleEmailSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	data, err := loadDashboard(r)
	if err != nil {
		renderLoadError(w, r, err)
		return
	}

	now := timeNow()
	stats := projections.AggregateEmployeeStats(data.Sessions, data.Employees, now)

	start := time.Now()
	err = orchestrators.ExecuteEmailSummary(r.Context(), orchestrators.EmailSummaryInput{
		To:      sess.Email,
		Summary: projections.ComputeSummary(stats),
		Trend:   projections.MonthlyCompletedTrend(data.Sessions, now),
	}, orchestrators.EmailSummaryDeps{
		Sender:  deps.Email,
		From:    deps.EmailFrom,
		ReplyTo: deps.EmailReplyTo,
	})
	if perfCollector != nil {
		perfCollector.Record(perf.Entry{
			Kind:       perf.KindFetch,
			Path:       "email_summary",
			DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
			Timestamp:  start,
		})
	}
	if err != nil {
		internalError(w, err)
		return
	}

	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]string{"sent_to": sess.Email})
		return
	}
	http.Redirect(w, r, "/sessions", http.StatusSeeOther)
}
