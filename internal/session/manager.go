// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the conversation session and active user.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultUserID is the backend's initial user before any switch.
const DefaultUserID = "default"

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager holds the session identifier and the active user. The
// session id correlates a thread of chat requests on the backend; it
// survives across messages and is regenerated only when the user
// switches or a new user is created, so a fresh identity always starts
// a fresh server-side thread.
type Manager struct {
	mu sync.Mutex

	sessionID string
	userID    string
	users     []string
}

// NewManager creates a session manager with a fresh session id and the
// default user.
func NewManager() *Manager {
	return &Manager{
		sessionID: newShortID(),
		userID:    DefaultUserID,
	}
}

// SessionID returns the current session id.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// UserID returns the active user id.
func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID
}

// Users returns the known user ids.
func (m *Manager) Users() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.users))
	copy(out, m.users)
	return out
}

// SetUsers replaces the known user list, as reported by the backend.
func (m *Manager) SetUsers(users []string, current string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append([]string(nil), users...)
	if current != "" {
		m.userID = current
	}
}

// SwitchedTo records a completed user switch and starts a new session.
func (m *Manager) SwitchedTo(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = userID
	m.sessionID = newShortID()
	return m.sessionID
}

// Created records a newly created user, adds it to the known list, and
// starts a new session.
func (m *Manager) Created(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = userID
	if !m.contains(userID) {
		m.users = append(m.users, userID)
	}
	m.sessionID = newShortID()
	return m.sessionID
}

// Reset regenerates the session id without changing the user. Used on
// reconnect.
func (m *Manager) Reset() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionID = newShortID()
	return m.sessionID
}

func (m *Manager) contains(userID string) bool {
	for _, u := range m.users {
		if u == userID {
			return true
		}
	}
	return false
}

// =============================================================================
// ID GENERATION
// =============================================================================

// NewUserID generates an id for a freshly created user.
func NewUserID() string {
	return "user_" + newShortID()
}

// newShortID returns the first 8 hex characters of a v4 UUID. Short
// ids keep query strings and logs readable; collision risk over a
// process lifetime is negligible.
func newShortID() string {
	return uuid.New().String()[:8]
}
