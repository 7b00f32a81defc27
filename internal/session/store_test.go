package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pathok/admin-console/internal/models"
	"github.com/pathok/admin-console/internal/platform"
)

type fakeAuth struct {
	// onLogin runs inside Login, before it returns. Used to simulate a
	// logout racing a pending login response.
	onLogin func()
	fail    bool
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*platform.LoginResult, error) {
	if f.onLogin != nil {
		f.onLogin()
	}
	if f.fail {
		return nil, errors.New("invalid credentials")
	}

	result := &platform.LoginResult{Token: "bearer-1"}
	result.User.ID = "u1"
	result.User.Email = email
	result.User.Role = models.RoleBookOrganizer
	result.User.Name = "Organizer"
	return result, nil
}

func TestLoginAndPrincipal(t *testing.T) {
	store := NewStore(&fakeAuth{}, "")

	token, principal, err := store.Login(context.Background(), "org@pathok.com.bd", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if principal.Role != models.RoleBookOrganizer {
		t.Errorf("Expected role Book Organizer, got %s", principal.Role)
	}

	got, ok := store.Principal(token)
	if !ok {
		t.Fatal("Expected principal for session token")
	}
	if got.Token != "bearer-1" {
		t.Errorf("Expected bearer token bearer-1, got %s", got.Token)
	}
}

func TestFailedLoginLeavesSessionsUntouched(t *testing.T) {
	auth := &fakeAuth{}
	store := NewStore(auth, "")

	token, _, err := store.Login(context.Background(), "org@pathok.com.bd", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	auth.fail = true
	if _, _, err := store.Login(context.Background(), "org@pathok.com.bd", "wrong"); err == nil {
		t.Fatal("Expected error for rejected credentials")
	}

	if _, ok := store.Principal(token); !ok {
		t.Error("Existing session should survive a failed login")
	}
}

func TestLogoutClearsPrincipal(t *testing.T) {
	store := NewStore(&fakeAuth{}, "")

	token, _, err := store.Login(context.Background(), "org@pathok.com.bd", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	store.Logout(token)

	if _, ok := store.Principal(token); ok {
		t.Error("Expected no principal after logout")
	}
}

func TestLogoutWinsOverPendingLogin(t *testing.T) {
	auth := &fakeAuth{}
	store := NewStore(auth, "")

	// The logout fires while the login call is still in flight.
	auth.onLogin = func() { store.Logout("any") }

	_, _, err := store.Login(context.Background(), "org@pathok.com.bd", "secret")
	if !errors.Is(err, ErrLoginSuperseded) {
		t.Fatalf("Expected ErrLoginSuperseded, got %v", err)
	}

	if _, ok := store.Principal("any"); ok {
		t.Error("Stale login must not create a session")
	}
}

func TestRehydrate(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "sessions.json")

	store := NewStore(&fakeAuth{}, statePath)
	token, _, err := store.Login(context.Background(), "org@pathok.com.bd", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	store.SetLastPath(token, "/books/add")

	// A new store over the same file picks the session back up.
	restored := NewStore(&fakeAuth{}, statePath)
	principal, ok := restored.Principal(token)
	if !ok {
		t.Fatal("Expected rehydrated principal")
	}
	if principal.Email != "org@pathok.com.bd" {
		t.Errorf("Expected rehydrated email, got %s", principal.Email)
	}
	if got := restored.LastPath(token); got != "/books/add" {
		t.Errorf("Expected last path /books/add, got %q", got)
	}
}

func TestRehydrateCorruptStateFallsBackToLoggedOut(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{{{"},
		{name: "wrong shape", content: `[1,2,3]`},
		{
			name:    "partial principal",
			content: `{"tok":{"principal":{"email":"x@pathok.com.bd"}}}`,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statePath := filepath.Join(t.TempDir(), fmt.Sprintf("state-%d.json", i))
			if err := os.WriteFile(statePath, []byte(tt.content), 0600); err != nil {
				t.Fatalf("Failed to write state file: %v", err)
			}

			store := NewStore(&fakeAuth{}, statePath)
			if _, ok := store.Principal("tok"); ok {
				t.Error("Corrupt state must rehydrate as logged out")
			}
		})
	}
}
