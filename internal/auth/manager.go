package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"sync"
	"time"

	"jobscope/internal/errors"
)

// Manager keeps in-memory sessions with a fixed validity window from
// login. There is no sliding renewal: a session issued at T expires at
// T+TTL regardless of activity.
type Manager struct {
	mu       sync.Mutex
	users    map[string]string
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]session
}

type session struct {
	user     string
	issuedAt time.Time
}

// NewManager creates a session manager over the configured user set.
func NewManager(users map[string]string, ttl time.Duration) *Manager {
	return &Manager{
		users:    users,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]session),
	}
}

// Login verifies the credentials and issues a session token.
func (m *Manager) Login(username, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expected, ok := m.users[username]
	if !ok || subtle.ConstantTimeCompare([]byte(expected), []byte(password)) != 1 {
		return "", errors.NewAuthError(errors.ErrCodeUnauthorized,
			"Invalid username or password", nil)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.NewInternalError(errors.ErrCodeUnauthorized,
			"Failed to generate session token", err)
	}
	token := hex.EncodeToString(buf)

	m.sessions[token] = session{user: username, issuedAt: m.now()}
	return token, nil
}

// IsAuthenticated reports whether the token belongs to a live session.
// Expired sessions are removed on sight.
func (m *Manager) IsAuthenticated(token string) bool {
	_, ok := m.CurrentUser(token)
	return ok
}

// CurrentUser returns the username behind a live session token.
func (m *Manager) CurrentUser(token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return "", false
	}
	if m.now().Sub(s.issuedAt) >= m.ttl {
		delete(m.sessions, token)
		return "", false
	}
	return s.user, true
}

// Logout clears the session. Unknown tokens are a no-op.
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// ActiveSessions returns the number of live sessions, pruning expired
// ones. Used by the stats endpoint.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for token, s := range m.sessions {
		if now.Sub(s.issuedAt) >= m.ttl {
			delete(m.sessions, token)
		}
	}
	return len(m.sessions)
}
