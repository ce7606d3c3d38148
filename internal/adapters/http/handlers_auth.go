package web

import (
	"net/http"

	"coachdesk/internal/adapters/http/middleware"
	"coachdesk/internal/application/orchestrators"
)

// handleLogin renders the login form (GET) and verifies credentials (POST).
// POST accepts both form encoding and JSON.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/employees", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{})
	case "POST":
		handleLoginSubmit(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	var email, password string
	jsonRequest := false

	if r.Header.Get("Content-Type") == "application/json" {
		jsonRequest = true
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := strictDecode(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		email, password = body.Email, body.Password
	} else {
		email = r.FormValue("email")
		password = r.FormValue("password")
	}

	res, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    email,
		Password: password,
	}, orchestrators.LoginDeps{Auth: deps.Auth})
	if err != nil {
		// The provider's message is shown verbatim so a wrong password
		// and an unreachable service read differently.
		if jsonRequest {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": err.Error(),
			"Email": email,
		})
		return
	}

	token, err := sessions.Create(res.UserID, res.Email, res.AccessToken)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	if jsonRequest {
		writeJSON(w, http.StatusOK, map[string]string{"email": res.Email})
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

// handleLogout destroys the session and returns to the login page.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token, ok := middleware.SessionToken(r); ok {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
