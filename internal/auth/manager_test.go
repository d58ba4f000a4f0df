package auth

import (
	"testing"
	"time"
)

func newTestManager(ttl time.Duration) (*Manager, *time.Time) {
	m := NewManager(map[string]string{"ana": "secret"}, ttl)
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	return m, &clock
}

func TestLoginAndCurrentUser(t *testing.T) {
	m, _ := newTestManager(8 * time.Hour)

	token, err := m.Login("ana", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty session token")
	}

	user, ok := m.CurrentUser(token)
	if !ok || user != "ana" {
		t.Errorf("CurrentUser() = %q, %v; want ana, true", user, ok)
	}
	if !m.IsAuthenticated(token) {
		t.Error("fresh session should be authenticated")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m, _ := newTestManager(8 * time.Hour)

	if _, err := m.Login("ana", "wrong"); err == nil {
		t.Error("expected an error for a wrong password")
	}
	if _, err := m.Login("nobody", "secret"); err == nil {
		t.Error("expected an error for an unknown user")
	}
}

func TestSessionExpiresAfterWindow(t *testing.T) {
	m, clock := newTestManager(8 * time.Hour)

	token, err := m.Login("ana", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	*clock = clock.Add(7*time.Hour + 59*time.Minute)
	if !m.IsAuthenticated(token) {
		t.Error("session should still be valid just inside the window")
	}

	*clock = clock.Add(2 * time.Minute)
	if m.IsAuthenticated(token) {
		t.Error("session should expire once the window elapses")
	}
	if _, ok := m.CurrentUser(token); ok {
		t.Error("expired session should not resolve to a user")
	}
}

func TestLogout(t *testing.T) {
	m, _ := newTestManager(8 * time.Hour)

	token, err := m.Login("ana", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	m.Logout(token)
	if m.IsAuthenticated(token) {
		t.Error("logged-out session should not be authenticated")
	}

	// Logging out twice is harmless
	m.Logout(token)
}

func TestActiveSessions(t *testing.T) {
	m, clock := newTestManager(8 * time.Hour)

	if _, err := m.Login("ana", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got := m.ActiveSessions(); got != 1 {
		t.Errorf("ActiveSessions() = %d, want 1", got)
	}

	*clock = clock.Add(9 * time.Hour)
	if got := m.ActiveSessions(); got != 0 {
		t.Errorf("ActiveSessions() = %d after expiry, want 0", got)
	}
}
