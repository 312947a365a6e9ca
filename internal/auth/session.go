// This file defines the session store: the explicit load/save interface that
// replaces ad-hoc mirroring of auth state into browser storage. Stores are
// injected into the auth service, never reached through globals.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/docemila/internal/model"
	"github.com/yourusername/docemila/pkg/errors"
)

// Session is one authenticated session: the fabricated user plus the opaque
// bearer token it was issued under.
type Session struct {
	Token     string     `json:"token"`
	User      model.User `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SessionStore persists sessions keyed by token.
// Load returns ErrSessionNotFound for unknown or expired tokens.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Load(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// MemoryStore is the in-process SessionStore. Sessions vanish on restart,
// which matches the throwaway nature of the fabricated tokens.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Save stores the session under its token.
func (m *MemoryStore) Save(_ context.Context, session Session) error {
	m.mu.Lock()
	m.sessions[session.Token] = session
	m.mu.Unlock()
	return nil
}

// Load returns the session for token. Expired sessions are dropped lazily.
func (m *MemoryStore) Load(_ context.Context, token string) (Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return Session{}, errors.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return Session{}, errors.ErrSessionNotFound
	}
	return session, nil
}

// Delete removes the session for token. Unknown tokens are a no-op.
func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
