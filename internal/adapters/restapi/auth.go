package restapi

import (
	"context"

	domainauth "github.com/accredly/console-api/internal/domain/auth"
	"github.com/accredly/console-api/internal/ports"
)

// authResponse is the wire shape of login/register responses.
type authResponse struct {
	Token string          `json:"token"`
	User  domainauth.User `json:"user"`
}

// profileResponse is the wire shape of the profile endpoint.
type profileResponse struct {
	User domainauth.User `json:"user"`
}

// Profile fetches the current user for the bearer token in flight.
func (c *Client) Profile(ctx context.Context) (domainauth.User, error) {
	var resp profileResponse
	if err := c.get(ctx, "/api/profile", &resp); err != nil {
		return domainauth.User{}, err
	}
	return resp.User, nil
}

// Login exchanges credentials for a bearer token and user. A success
// response without a token is returned as-is; the session manager treats
// it as a failed login.
func (c *Client) Login(ctx context.Context, creds ports.Credentials) (ports.AuthPayload, error) {
	body := map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}
	var resp authResponse
	if err := c.post(ctx, "/api/login", body, &resp); err != nil {
		return ports.AuthPayload{}, err
	}
	return ports.AuthPayload{Token: resp.Token, User: resp.User}, nil
}

// Register creates an account and returns a bearer token and user.
func (c *Client) Register(ctx context.Context, reg ports.Registration) (ports.AuthPayload, error) {
	body := map[string]string{
		"name":                  reg.Name,
		"email":                 reg.Email,
		"password":              reg.Password,
		"password_confirmation": reg.PasswordConfirmation,
		"role":                  string(reg.Role),
	}
	var resp authResponse
	if err := c.post(ctx, "/api/register", body, &resp); err != nil {
		return ports.AuthPayload{}, err
	}
	return ports.AuthPayload{Token: resp.Token, User: resp.User}, nil
}

// Logout invalidates the bearer token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/logout", nil, nil)
}

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/api/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword completes a password reset started by ForgotPassword.
func (c *Client) ResetPassword(ctx context.Context, input ports.PasswordReset) error {
	body := map[string]string{
		"token":                 input.Token,
		"email":                 input.Email,
		"password":              input.Password,
		"password_confirmation": input.PasswordConfirmation,
	}
	return c.post(ctx, "/api/reset-password", body, nil)
}
