// ABOUTME: In-memory session state container with no I/O
// ABOUTME: Mutations are package-private so only the Controller can change state

package session

import (
	"sync"

	"github.com/brightwave-hq/brightwave-cli/internal/api"
)

// Status tracks whether the initial token check has finished.
type Status int

const (
	// StatusHydrating holds only during the initial check of a persisted
	// token. Terminal StatusReady thereafter for the process lifetime.
	StatusHydrating Status = iota
	StatusReady
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusHydrating:
		return "hydrating"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Store holds the current token and user identity. A non-nil user always
// implies a non-empty token; the reverse does not hold while the user is
// still being fetched.
type Store struct {
	mu     sync.RWMutex
	token  string
	user   *api.User
	status Status
}

// NewStore creates a Store in the hydrating state with an empty session
func NewStore() *Store {
	return &Store{status: StatusHydrating}
}

// Token returns the current bearer token, or "" when unauthenticated
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current identity, or nil when not yet validated
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Status reports whether hydration has completed
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Authenticated reports whether a validated identity is present
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// setAuthenticated sets token and user together, atomically. The identity
// is replaced wholesale, never merged.
func (s *Store) setAuthenticated(token string, user *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// clear resets to the unauthenticated state, atomically
func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// setReady marks hydration as finished. There is no way back.
func (s *Store) setReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusReady
}
