package devstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"coachdesk/internal/adapters/remote"
)

// ErrInvalidCredentials is returned for any failed dev sign-in; the reason
// is not distinguished, matching the hosted provider's behavior.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Auth implements remote.AuthProvider against the dev accounts table.
type Auth struct {
	db *sql.DB
}

// NewAuth creates a dev auth provider over an open database.
func NewAuth(db *sql.DB) *Auth {
	return &Auth{db: db}
}

// SignIn verifies the email/password pair against the seeded account.
// PRE: Migrate and SeedAccount have run
// POST: Returns the account identity or ErrInvalidCredentials
func (a *Auth) SignIn(ctx context.Context, email, password string) (remote.Identity, error) {
	var id, hash string
	err := a.db.QueryRowContext(ctx,
		"SELECT id, password_hash FROM accounts WHERE email = ?", email).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "not_found")
		return remote.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return remote.Identity{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "wrong_password")
		return remote.Identity{}, ErrInvalidCredentials
	}
	slog.Info("auth_event", "event", "login_success", "email", email)
	return remote.Identity{UserID: id, Email: email}, nil
}
