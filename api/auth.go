package api

import (
	"context"

	"github.com/fplassist/go-fpl-client/creds"
)

// RegisterParams is the registration payload.
type RegisterParams struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FPLTeamID *int   `json:"fpl_team_id,omitempty"`
}

// UserUpdate carries the mutable identity fields. Nil fields are untouched.
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	FPLTeamID *int    `json:"fpl_team_id,omitempty"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Login exchanges credentials for a token pair. Adoption into the session is
// the caller's decision.
func (c *Client) Login(ctx context.Context, email, password string) (creds.Pair, error) {
	body := map[string]string{"email": email, "password": password}

	var token tokenResponse
	if err := c.t.Post(ctx, "/auth/login", body, &token); err != nil {
		return creds.Pair{}, err
	}
	return creds.Pair{Access: token.AccessToken, Refresh: token.RefreshToken}, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, params RegisterParams) (User, error) {
	var user User
	err := c.t.Post(ctx, "/auth/register", params, &user)
	return user, err
}

// Logout revokes the given refresh credential on the server.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.t.Post(ctx, "/auth/logout", map[string]string{"refresh_token": refreshToken}, nil)
}

// LogoutAll revokes every refresh credential the user holds, on any device.
func (c *Client) LogoutAll(ctx context.Context) error {
	return c.t.Post(ctx, "/auth/logout-all", nil, nil)
}

// Me fetches the current identity. Not cached: consumers re-fetch on demand.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.t.Get(ctx, "/auth/me", nil, &user)
	return user, err
}

// UpdateMe patches the current identity.
func (c *Client) UpdateMe(ctx context.Context, update UserUpdate) (User, error) {
	var user User
	err := c.t.Patch(ctx, "/auth/me", update, &user)
	return user, err
}
