// ABOUTME: Tests for the Brightwave API client
// ABOUTME: Uses httptest to mock site API responses

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("expected path /login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept application/json, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login must not send Authorization, got %q", got)
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Email != "jo@x.com" {
			t.Errorf("expected email jo@x.com, got %s", req.Email)
		}

		json.NewEncoder(w).Encode(AuthResponse{
			Token: "tok-123",
			User:  &User{ID: 1, Name: "Jo", Email: "jo@x.com"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	auth, err := c.Login(context.Background(), "jo@x.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.Token != "tok-123" {
		t.Errorf("expected token tok-123, got %s", auth.Token)
	}
	if auth.User == nil || auth.User.Name != "Jo" {
		t.Errorf("expected user Jo, got %+v", auth.User)
	}
}

func TestLogin_ValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"password":["The password is incorrect."]}}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "jo@x.com", "bad")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", apiErr.Status)
	}
	flat := apiErr.Fields.Flatten()
	if len(flat) != 1 || flat[0] != "The password is incorrect." {
		t.Errorf("expected the server's field message, got %v", flat)
	}
}

func TestLogin_NetworkFailure(t *testing.T) {
	// Closed server: connection refused, no HTTP response at all
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "jo@x.com", "secret")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != 0 {
		t.Errorf("expected status 0 for network failure, got %d", apiErr.Status)
	}
	if apiErr.Message == "" {
		t.Error("network failure must carry a message")
	}
}

func TestMe_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			t.Errorf("expected path /me, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("expected Bearer abc, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "" {
			t.Errorf("GET must not send Content-Type, got %q", got)
		}
		json.NewEncoder(w).Encode(User{ID: 1, Name: "Jo", Email: "jo@x.com"})
	}))
	defer server.Close()

	c := New(server.URL)
	user, err := c.Me(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Email != "jo@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestMe_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthenticated."}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Me(context.Background(), "stale")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", apiErr.Status)
	}
	if apiErr.Message != "Unauthenticated." {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestLogout_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logout" || r.Method != http.MethodPost {
			t.Errorf("expected POST /logout, got %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.Logout(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Me(context.Background(), "abc")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error for malformed body, got %T", err)
	}
	if apiErr.Message == "" {
		t.Error("malformed body error must carry a message")
	}
}

func TestContact_Ack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contact" {
			t.Errorf("expected path /contact, got %s", r.URL.Path)
		}
		var req ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Message == "" {
			t.Error("expected a message field")
		}
		json.NewEncoder(w).Encode(ContactResponse{Success: true, Message: "Thanks, we'll be in touch."})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Contact(context.Background(), ContactRequest{
		Name: "Jo", Email: "jo@x.com", Message: "Hi there",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Error("expected success ack")
	}
}

func TestForgotPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forgot-password" {
			t.Errorf("expected path /forgot-password, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ForgotPasswordResponse{Success: true, Message: "Reset link sent."})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.ForgotPassword(context.Background(), "jo@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "Reset link sent." {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCaptureLead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leads" {
			t.Errorf("expected path /leads, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(LeadResponse{Success: true})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.CaptureLead(context.Background(), LeadRequest{Email: "jo@x.com", Source: "newsletter"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Error("expected success ack")
	}
}
