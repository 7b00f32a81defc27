package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/pathok/admin-console/internal/models"
	"github.com/pathok/admin-console/internal/platform"
)

// ErrLoginSuperseded is returned when a login response resolves after a
// logout was issued. Logout always wins; the stale login is discarded.
var ErrLoginSuperseded = errors.New("login superseded by logout")

// Authenticator exchanges credentials for a platform principal. Satisfied by
// *platform.Client.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*platform.LoginResult, error)
}

type state struct {
	Principal models.Principal `json:"principal"`
	LastPath  string           `json:"last_path,omitempty"`
}

// Store is the single source of truth for who is logged in. Each console
// session is keyed by an opaque token carried in a cookie; the bound
// Principal holds the platform bearer token for upstream calls.
//
// Sessions are persisted to a state file so a console restart rehydrates
// them. A missing or malformed state file means everyone is logged out.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*state
	// generation is bumped on every logout so a login response that
	// resolves after a logout can be detected and discarded.
	generation uint64

	auth      Authenticator
	statePath string
}

// NewStore creates a session store backed by the given authenticator.
// statePath may be empty to disable persistence.
func NewStore(auth Authenticator, statePath string) *Store {
	s := &Store{
		sessions:  make(map[string]*state),
		auth:      auth,
		statePath: statePath,
	}
	s.rehydrate()
	return s
}

// Login authenticates against the platform and, on success, binds the
// resulting Principal to a fresh session token. A failed login leaves all
// existing sessions untouched.
func (s *Store) Login(ctx context.Context, email, password string) (string, models.Principal, error) {
	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return "", models.Principal{}, fmt.Errorf("authentication failed: %w", err)
	}

	principal := models.Principal{
		ID:    result.User.ID,
		Email: result.User.Email,
		Role:  result.User.Role,
		Name:  result.User.Name,
		Token: result.Token,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return "", models.Principal{}, ErrLoginSuperseded
	}

	token := uuid.NewString()
	s.sessions[token] = &state{Principal: principal}
	s.persistLocked()

	slog.Info("Session created", "email", principal.Email, "role", principal.Role)
	return token, principal, nil
}

// Logout removes the session for token. It is a no-op for unknown tokens
// but still invalidates any in-flight login.
func (s *Store) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	s.generation++
	s.persistLocked()
}

// Principal returns the principal bound to token, if any.
func (s *Store) Principal(token string) (models.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[token]
	if !ok {
		return models.Principal{}, false
	}
	return st.Principal, true
}

// SetLastPath records the last visited protected path for the session, used
// to restore location after the next login.
func (s *Store) SetLastPath(token, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[token]
	if !ok {
		return
	}
	st.LastPath = path
	s.persistLocked()
}

// LastPath returns the recorded last visited path for the session.
func (s *Store) LastPath(token string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.sessions[token]; ok {
		return st.LastPath
	}
	return ""
}

// rehydrate loads persisted sessions. Corrupt data falls back to logged out,
// never to a partially populated principal.
func (s *Store) rehydrate() {
	if s.statePath == "" {
		return
	}

	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Unable to read session state, starting logged out", "path", s.statePath, "err", err)
		}
		return
	}

	var persisted map[string]*state
	if err := json.Unmarshal(data, &persisted); err != nil {
		slog.Warn("Session state is malformed, starting logged out", "path", s.statePath, "err", err)
		return
	}

	for token, st := range persisted {
		if st == nil || !complete(st.Principal) {
			slog.Warn("Dropping incomplete persisted session")
			continue
		}
		s.sessions[token] = st
	}

	slog.Info("Rehydrated sessions", "count", len(s.sessions))
}

func complete(p models.Principal) bool {
	return p.ID != "" && p.Email != "" && p.Role != "" && p.Token != ""
}

// persistLocked writes the session map to the state file. Callers must hold
// the write lock. Persistence failures are logged, not fatal.
func (s *Store) persistLocked() {
	if s.statePath == "" {
		return
	}

	data, err := json.Marshal(s.sessions)
	if err != nil {
		slog.Error("Unable to marshal session state", "err", err)
		return
	}
	if err := os.WriteFile(s.statePath, data, 0600); err != nil {
		slog.Error("Unable to write session state", "path", s.statePath, "err", err)
	}
}
