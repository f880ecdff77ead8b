package upstream

import (
	"context"
	"net/http"

	"github.com/molticket/webgate/internal/model"
)

// Login exchanges credentials for a token and account snapshot. The endpoint
// wraps its payload in the {success,message,data} envelope.
func (c *Client) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var resp envelope[model.LoginResult]
	if err := c.do(ctx, "auth_login", Credentials{}, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return model.LoginResult{}, err
	}
	if !resp.Success && resp.Message != "" {
		return model.LoginResult{}, &APIError{Status: http.StatusOK, Message: resp.Message}
	}
	return resp.Data, nil
}

// SignUpUser registers a regular account.
func (c *Client) SignUpUser(ctx context.Context, req model.SignUpUser) error {
	return c.do(ctx, "auth_signup_user", Credentials{}, http.MethodPost, "/auth/signup/user", req, nil)
}

// SignUpHost registers a host account; the account stays PENDING until an
// admin approves it.
func (c *Client) SignUpHost(ctx context.Context, req model.SignUpHost) error {
	return c.do(ctx, "auth_signup_host", Credentials{}, http.MethodPost, "/auth/signup/host", req, nil)
}

// Logout invalidates the token upstream. A failed logout is not fatal; the
// gateway clears its session either way.
func (c *Client) Logout(ctx context.Context, creds Credentials) error {
	return c.do(ctx, "auth_logout", creds, http.MethodPost, "/auth/logout", nil, nil)
}
