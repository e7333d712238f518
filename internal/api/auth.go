package api

import (
	"context"
	"errors"
	"strings"
)

// Login exchanges credentials for a bearer token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	payload := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.postJSON(ctx, "/api/auth/login", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account. Depending on backend configuration the
// response may already include a token; callers should fall back to Login
// when it does not.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}
	if req.UserType == "" {
		req.UserType = "student"
	}
	var result AuthResult
	if err := c.postJSON(ctx, "/api/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the fresh profile for the current token. The payload does not
// include the token itself; callers must re-attach it before caching.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, "/api/user/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
