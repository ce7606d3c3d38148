package web

import (
	"net/http"

	"coachdesk/internal/adapters/http/middleware"
)

// registerRoutes attaches all handlers to the mux. Auth-gated pages are
// wrapped in RequireAuth; /login and /logout stay open.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	mux.Handle("/employees", authed(handleEmployees))
	mux.Handle("/sessions", authed(handleSessions))
	mux.Handle("/schema-help", authed(handleSchemaHelp))
	mux.Handle("/email-summary", authed(handleEmailSummary))
	mux.Handle("/diagnostics", authed(handleDiagnostics))
}

// handleIndex redirects the root to the roster view.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}
