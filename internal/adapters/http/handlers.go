package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"coachdesk/internal/adapters/http/middleware"
	"coachdesk/internal/adapters/http/perf"
	"coachdesk/internal/adapters/remote"
	"coachdesk/internal/application/orchestrators"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	email := ""
	if ok {
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return email != "" },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"fmtDate": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("2 Jan 2006")
		},
		"rawJSON": func(v any) string {
			b, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err.Error()
			}
			return string(b)
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// loadDashboard runs the concurrent dashboard load and records the fetch
// duration for the diagnostics endpoint.
func loadDashboard(r *http.Request) (orchestrators.DashboardData, error) {
	start := timeNow()
	data, err := orchestrators.ExecuteLoadDashboard(r.Context(), orchestrators.LoadDashboardDeps{Source: deps.Source})
	if perfCollector != nil {
		perfCollector.Record(perf.Entry{
			Kind:       perf.KindFetch,
			Path:       "dashboard",
			DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
			Timestamp:  start,
		})
	}
	return data, err
}

// LoadError is the user-facing breakdown of a failed data load, shown in
// the error panel with remediation guidance.
type LoadError struct {
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Hint     string `json:"hint,omitempty"`
	Guidance string `json:"guidance"`
}

// describeLoadError turns a load failure into panel content. Structured
// store errors keep their code/details/hint; anything else is shown as-is.
func describeLoadError(err error) LoadError {
	le := LoadError{Message: err.Error()}

	var qe *remote.QueryError
	if errors.As(err, &qe) {
		le.Code = qe.Code
		le.Message = qe.Message
		le.Details = qe.Details
		le.Hint = qe.Hint
	}

	switch {
	case remote.IsMissingRelation(err):
		le.Guidance = "A required table does not exist in the connected project. Create a sessions table (and optionally an employees table), or point the app at the right project. See Schema help for the expected columns."
	case remote.IsSchemaMismatch(err):
		le.Guidance = "The table exists but a referenced column does not. Column names are matched against several common spellings; see Schema help for the list the app understands."
	default:
		le.Guidance = "The data service could not be reached or rejected the request. Check the service URL and API key, then reload."
	}
	return le
}

// renderLoadError shows the error panel (HTML) or the structured error (JSON).
func renderLoadError(w http.ResponseWriter, r *http.Request, err error) {
	le := describeLoadError(err)
	slog.Error("dashboard_load_failed", "code", le.Code, "error", le.Message)

	if isHTMLRequest(r) {
		w.WriteHeader(http.StatusBadGateway)
		renderTemplate(w, r, "error.html", map[string]any{
			"Error": le,
		})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]any{"error": le})
}
