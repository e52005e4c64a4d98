// ABOUTME: Session lifecycle controller: hydrate, login, register, logout
// ABOUTME: The only component that mutates the Store or the token file

package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/brightwave-hq/brightwave-cli/internal/api"
)

// Operation kinds, used both as singleflight keys and in-flight flags.
const (
	opHydrate  = "hydrate"
	opLogin    = "login"
	opRegister = "register"
	opLogout   = "logout"
)

// Controller orchestrates the session lifecycle. Concurrent duplicate calls
// of the same operation kind are collapsed into a single network request;
// different kinds are not serialized against each other and the Store is
// last-write-wins between them.
type Controller struct {
	client *api.Client
	store  *Store
	tokens *TokenFile

	group singleflight.Group

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewController wires the controller to its transport, store and token file
func NewController(client *api.Client, store *Store, tokens *TokenFile) *Controller {
	return &Controller{
		client:   client,
		store:    store,
		tokens:   tokens,
		inFlight: make(map[string]bool),
	}
}

// Store returns the session store for read access
func (c *Controller) Store() *Store {
	return c.store
}

// Hydrate restores a session from the persisted token, once at startup.
// Failure is never fatal: a rejected or unreadable token silently logs the
// user out, and the store always ends up ready.
func (c *Controller) Hydrate(ctx context.Context) {
	if c.store.Status() == StatusReady {
		return
	}
	c.group.Do(opHydrate, func() (any, error) {
		done := c.begin(opHydrate)
		defer done()
		defer c.store.setReady()

		token, err := c.tokens.Load()
		if err != nil {
			slog.Warn("could not read persisted session", "error", err)
			c.store.clear()
			return nil, nil
		}
		if token == "" {
			c.store.clear()
			return nil, nil
		}

		user, err := c.client.Me(ctx, token)
		if err != nil {
			slog.Warn("persisted session rejected, logging out", "error", err)
			if err := c.tokens.Clear(); err != nil {
				slog.Warn("could not remove token file", "error", err)
			}
			c.store.clear()
			return nil, nil
		}

		c.store.setAuthenticated(token, user)
		return nil, nil
	})
}

// Login authenticates with the given credentials. On success the returned
// token is persisted and the identity stored; on failure the session is
// left exactly as it was and the *api.Error is returned unchanged.
func (c *Controller) Login(ctx context.Context, email, password string) (*api.User, error) {
	v, err, _ := c.group.Do(opLogin, func() (any, error) {
		done := c.begin(opLogin)
		defer done()

		auth, err := c.client.Login(ctx, email, password)
		if err != nil {
			return nil, err
		}
		c.adopt(auth)
		return auth.User, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*api.User), nil
}

// Register signs up a new account. A mismatched password confirmation is
// rejected locally, before any network call, with a field error shaped
// like a server-side validation failure.
func (c *Controller) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	if req.PasswordConfirmation != "" && req.PasswordConfirmation != req.Password {
		return nil, &api.Error{
			Status:  http.StatusUnprocessableEntity,
			Message: "The given data was invalid.",
			Fields: api.FieldErrors{
				{Field: "password_confirmation", Messages: []string{"The password confirmation does not match."}},
			},
		}
	}

	v, err, _ := c.group.Do(opRegister, func() (any, error) {
		done := c.begin(opRegister)
		defer done()

		auth, err := c.client.Register(ctx, req)
		if err != nil {
			return nil, err
		}
		c.adopt(auth)
		return auth.User, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*api.User), nil
}

// Logout ends the session. A 401 from the server means it was already
// invalid, which is success from the caller's point of view; any other
// remote failure is logged and ignored. Local state is always cleared.
func (c *Controller) Logout(ctx context.Context) {
	c.group.Do(opLogout, func() (any, error) {
		done := c.begin(opLogout)
		defer done()

		if token := c.store.Token(); token != "" {
			if err := c.client.Logout(ctx, token); err != nil {
				var apiErr *api.Error
				if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
					slog.Warn("logout request failed, clearing local session anyway", "error", err)
				}
			}
		}

		if err := c.tokens.Clear(); err != nil {
			slog.Warn("could not remove token file", "error", err)
		}
		c.store.clear()
		return nil, nil
	})
}

// adopt persists the new token and replaces the stored identity. A failed
// write is logged but does not fail the operation; the in-memory session
// is still valid for this process.
func (c *Controller) adopt(auth *api.AuthResponse) {
	if err := c.tokens.Save(auth.Token); err != nil {
		slog.Warn("could not persist session token", "error", err)
	}
	c.store.setAuthenticated(auth.Token, auth.User)
}

// Loading reports whether initial hydration is still running
func (c *Controller) Loading() bool {
	return c.store.Status() == StatusHydrating
}

// LoggingIn reports whether a login request is in flight
func (c *Controller) LoggingIn() bool { return c.busy(opLogin) }

// Registering reports whether a registration request is in flight
func (c *Controller) Registering() bool { return c.busy(opRegister) }

// LoggingOut reports whether a logout request is in flight
func (c *Controller) LoggingOut() bool { return c.busy(opLogout) }

func (c *Controller) begin(op string) func() {
	c.mu.Lock()
	c.inFlight[op] = true
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.inFlight, op)
		c.mu.Unlock()
	}
}

func (c *Controller) busy(op string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[op]
}
