package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"coachdesk/internal/adapters/remote"
)

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	UserID      string
	Email       string
	AccessToken string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Auth remote.AuthProvider
}

// ErrMissingCredentials is returned before the provider is consulted.
var ErrMissingCredentials = errors.New("email and password are required")

// ExecuteLogin verifies credentials against the auth provider and returns
// identity info for session creation.
// PRE: deps.Auth is set
// POST: Returns identity on success; the provider's error message is
// passed through on failure
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrMissingCredentials
	}

	id, err := deps.Auth.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "session_created", "email", id.Email)
	return LoginResult{UserID: id.UserID, Email: id.Email, AccessToken: id.AccessToken}, nil
}
