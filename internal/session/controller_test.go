// ABOUTME: Tests for the session lifecycle controller
// ABOUTME: Covers hydration, login, register, logout, and duplicate-call guards

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brightwave-hq/brightwave-cli/internal/api"
)

// newTestController wires a controller against the given handler with a
// throwaway token directory.
func newTestController(t *testing.T, handler http.Handler) (*Controller, *TokenFile) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := NewTokenFile(t.TempDir())
	return NewController(api.New(server.URL), NewStore(), tokens), tokens
}

func writeUser(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(api.User{ID: 1, Name: "Jo", Email: "jo@x.com"})
}

func TestHydrate_NoToken(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	c.Hydrate(context.Background())

	if calls.Load() != 0 {
		t.Errorf("hydration without a token must not issue a network call, got %d", calls.Load())
	}
	if c.Store().Status() != StatusReady {
		t.Errorf("expected ready, got %s", c.Store().Status())
	}
	if c.Store().User() != nil {
		t.Error("expected empty session")
	}
}

func TestHydrate_ValidToken(t *testing.T) {
	c, tokens := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			t.Errorf("expected /me, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("expected Bearer abc, got %q", got)
		}
		writeUser(w)
	}))
	if err := tokens.Save("abc"); err != nil {
		t.Fatal(err)
	}

	c.Hydrate(context.Background())

	store := c.Store()
	if store.Status() != StatusReady {
		t.Errorf("expected ready, got %s", store.Status())
	}
	if store.Token() != "abc" {
		t.Errorf("expected token abc, got %q", store.Token())
	}
	user := store.User()
	if user == nil || user.ID != 1 || user.Name != "Jo" || user.Email != "jo@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}

	// Token must still be persisted, unchanged
	persisted, err := tokens.Load()
	if err != nil || persisted != "abc" {
		t.Errorf("expected persisted token abc, got %q (%v)", persisted, err)
	}
}

func TestHydrate_RejectedToken(t *testing.T) {
	c, tokens := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthenticated."}`))
	}))
	if err := tokens.Save("stale"); err != nil {
		t.Fatal(err)
	}

	c.Hydrate(context.Background())

	store := c.Store()
	if store.Status() != StatusReady {
		t.Error("hydration failure must still end ready")
	}
	if store.Token() != "" || store.User() != nil {
		t.Error("expected session cleared after rejection")
	}
	persisted, _ := tokens.Load()
	if persisted != "" {
		t.Errorf("expected token file removed, still holds %q", persisted)
	}
}

func TestHydrate_NetworkFailureIsNotFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	tokens := NewTokenFile(t.TempDir())
	if err := tokens.Save("abc"); err != nil {
		t.Fatal(err)
	}
	c := NewController(api.New(server.URL), NewStore(), tokens)

	c.Hydrate(context.Background())

	if c.Store().Status() != StatusReady {
		t.Error("hydration must reach ready even when the server is down")
	}
	if c.Store().Token() != "" {
		t.Error("expected session cleared")
	}
}

func TestHydrate_RunsOnce(t *testing.T) {
	var calls atomic.Int32
	c, tokens := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeUser(w)
	}))
	if err := tokens.Save("abc"); err != nil {
		t.Fatal(err)
	}

	c.Hydrate(context.Background())
	c.Hydrate(context.Background())

	if calls.Load() != 1 {
		t.Errorf("expected a single /me call, got %d", calls.Load())
	}
}

func TestLogin_Success(t *testing.T) {
	c, tokens := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("expected /login, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.AuthResponse{
			Token: "fresh-token",
			User:  &api.User{ID: 7, Name: "Sam", Email: "sam@x.com"},
		})
	}))

	user, err := c.Login(context.Background(), "sam@x.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 {
		t.Errorf("expected returned user, got %+v", user)
	}
	if c.Store().Token() != "fresh-token" {
		t.Errorf("expected token stored, got %q", c.Store().Token())
	}
	persisted, _ := tokens.Load()
	if persisted != "fresh-token" {
		t.Errorf("expected token persisted, got %q", persisted)
	}
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	c, tokens := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"password":["The password is incorrect."]}}`))
	}))

	// Pre-existing session from an earlier login
	before := &api.User{ID: 1, Name: "Jo", Email: "jo@x.com"}
	c.store.setAuthenticated("abc", before)
	if err := tokens.Save("abc"); err != nil {
		t.Fatal(err)
	}

	_, err := c.Login(context.Background(), "jo@x.com", "bad")

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error rethrown unchanged, got %T", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", apiErr.Status)
	}
	if c.Store().Token() != "abc" || c.Store().User() != before {
		t.Error("failed login must not mutate the session")
	}
	persisted, _ := tokens.Load()
	if persisted != "abc" {
		t.Errorf("failed login must not touch the token file, got %q", persisted)
	}
}

func TestLogin_ConcurrentDuplicatesShareOneRequest(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		json.NewEncoder(w).Encode(api.AuthResponse{
			Token: "tok",
			User:  &api.User{ID: 1, Name: "Jo", Email: "jo@x.com"},
		})
	}))

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Login(context.Background(), "jo@x.com", "secret")
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected concurrent duplicate logins to share one request, got %d", calls.Load())
	}
}

func TestLoggingIn_FlagDuringRequest(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode(api.AuthResponse{Token: "tok", User: &api.User{ID: 1}})
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Login(context.Background(), "jo@x.com", "secret")
	}()

	deadline := time.After(2 * time.Second)
	for !c.LoggingIn() {
		select {
		case <-deadline:
			t.Fatal("LoggingIn never became true")
		case <-time.After(time.Millisecond):
		}
	}

	close(release)
	<-done
	if c.LoggingIn() {
		t.Error("LoggingIn must reset after the request finishes")
	}
}

func TestRegister_MismatchedConfirmation(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := c.Register(context.Background(), api.RegisterRequest{
		Name:                 "Jo",
		Email:                "jo@x.com",
		Password:             "secret123",
		PasswordConfirmation: "secret124",
	})

	if calls.Load() != 0 {
		t.Errorf("mismatched confirmation must never reach the network, got %d calls", calls.Load())
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	flat := apiErr.Fields.Flatten()
	if len(flat) != 1 || flat[0] != "The password confirmation does not match." {
		t.Errorf("unexpected messages: %v", flat)
	}
}

func TestRegister_Success(t *testing.T) {
	c, tokens := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/register" {
			t.Errorf("expected /register, got %s", r.URL.Path)
		}
		var req api.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.PasswordConfirmation != req.Password {
			t.Error("confirmation should match")
		}
		json.NewEncoder(w).Encode(api.AuthResponse{
			Token: "new-token",
			User:  &api.User{ID: 2, Name: "New", Email: "new@x.com"},
		})
	}))

	user, err := c.Register(context.Background(), api.RegisterRequest{
		Name:                 "New",
		Email:                "new@x.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Company:              "Acme",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "new@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	persisted, _ := tokens.Load()
	if persisted != "new-token" {
		t.Errorf("expected token persisted, got %q", persisted)
	}
}

func TestLogout_AlwaysClears(t *testing.T) {
	statuses := []int{http.StatusOK, http.StatusUnauthorized, http.StatusInternalServerError}
	for _, status := range statuses {
		c, tokens := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/logout" {
				t.Errorf("expected /logout, got %s", r.URL.Path)
			}
			w.WriteHeader(status)
		}))
		c.store.setAuthenticated("abc", &api.User{ID: 1})
		if err := tokens.Save("abc"); err != nil {
			t.Fatal(err)
		}

		c.Logout(context.Background())

		if c.Store().Token() != "" || c.Store().User() != nil {
			t.Errorf("status %d: logout must clear the session", status)
		}
		persisted, _ := tokens.Load()
		if persisted != "" {
			t.Errorf("status %d: logout must remove the token file", status)
		}
	}
}

func TestLogout_NetworkFailureStillClears(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	tokens := NewTokenFile(t.TempDir())
	c := NewController(api.New(server.URL), NewStore(), tokens)
	c.store.setAuthenticated("abc", &api.User{ID: 1})
	if err := tokens.Save("abc"); err != nil {
		t.Fatal(err)
	}

	c.Logout(context.Background())

	if c.Store().Token() != "" || c.Store().User() != nil {
		t.Error("logout must clear local state even when the server is unreachable")
	}
}

func TestLogout_WithoutTokenSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	c.Logout(context.Background())

	if calls.Load() != 0 {
		t.Errorf("logout without a token must not call the server, got %d", calls.Load())
	}
}

func TestHydrate_CorruptTokenFile(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tokenFileName), []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	c := NewController(api.New(server.URL), NewStore(), NewTokenFile(dir))

	c.Hydrate(context.Background())

	if calls.Load() != 0 {
		t.Error("corrupt token file must be treated as no session")
	}
	if c.Store().Status() != StatusReady {
		t.Error("expected ready")
	}
}
