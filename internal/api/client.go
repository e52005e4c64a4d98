// ABOUTME: HTTP client for the Brightwave site API
// ABOUTME: Stateless transport; every failure is normalized into an *Error

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of a response body we read when decoding.
const maxBodyBytes = 1 << 20

// Client is the API client for the Brightwave site backend. It holds no
// session state and is safe to share across all callers.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return NewWithTimeout(baseURL, 30*time.Second)
}

// NewWithTimeout creates a new API client with an explicit request timeout
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues a request and decodes the JSON response into out (when out is
// non-nil). It sets Accept on every request, Content-Type when a body is
// present, and Authorization only when a token is supplied. Any non-2xx
// status becomes a normalized *Error; so does a transport-level failure,
// with Status 0.
func (c *Client) do(ctx context.Context, method, path string, body, out any, token string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Status: 0, Message: networkFailureMessage}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		raw = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Normalize(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: invalidBodyMessage}
		}
	}
	return nil
}

// Login calls POST /login with the given credentials
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var auth AuthResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/login", req, &auth, ""); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register calls POST /register with the sign-up fields
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", req, &auth, ""); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Me calls GET /me with the given bearer token
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user, token); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout calls POST /logout with the given bearer token
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, token)
}

// ForgotPassword calls POST /forgot-password to start a reset
func (c *Client) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResponse, error) {
	var resp ForgotPasswordResponse
	req := ForgotPasswordRequest{Email: email}
	if err := c.do(ctx, http.MethodPost, "/forgot-password", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword calls POST /reset-password to complete a reset
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*ResetPasswordResponse, error) {
	var resp ResetPasswordResponse
	if err := c.do(ctx, http.MethodPost, "/reset-password", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Contact calls POST /contact with the contact form payload
func (c *Client) Contact(ctx context.Context, req ContactRequest) (*ContactResponse, error) {
	var resp ContactResponse
	if err := c.do(ctx, http.MethodPost, "/contact", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CaptureLead calls POST /leads with the lead-capture payload
func (c *Client) CaptureLead(ctx context.Context, req LeadRequest) (*LeadResponse, error) {
	var resp LeadResponse
	if err := c.do(ctx, http.MethodPost, "/leads", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}
