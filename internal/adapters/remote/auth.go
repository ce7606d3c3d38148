package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Identity describes a signed-in user as reported by the hosted auth
// provider. The dashboard consumes only presence plus the email label.
type Identity struct {
	UserID      string
	Email       string
	AccessToken string
}

// AuthProvider verifies an email/password pair against an auth backend.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
}

// SignIn performs a password-grant token request against the hosted auth
// endpoint.
// PRE: email and password are non-empty
// POST: Returns the provider's identity on success; on failure the
// provider's own error message is surfaced
func (c *Client) SignIn(ctx context.Context, email, password string) (Identity, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return Identity{}, err
	}

	u := c.BaseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("auth: request failed: %w", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return Identity{}, fmt.Errorf("auth: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var parsed struct {
			ErrorDescription string `json:"error_description"`
			Msg              string `json:"msg"`
			Message          string `json:"message"`
		}
		_ = json.Unmarshal(body, &parsed)
		msg := parsed.ErrorDescription
		if msg == "" {
			msg = parsed.Msg
		}
		if msg == "" {
			msg = parsed.Message
		}
		if msg == "" {
			msg = snippet(body, 200)
		}
		return Identity{}, fmt.Errorf("sign-in failed: %s", msg)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return Identity{}, fmt.Errorf("auth: json parse error: %w", err)
	}
	return Identity{
		UserID:      token.User.ID,
		Email:       token.User.Email,
		AccessToken: token.AccessToken,
	}, nil
}
