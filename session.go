// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"sync"

	"github.com/google/uuid"
)

// SessionID identifies a logical session such as a user's login.
// The zero value means "no session". SessionIDs are comparable:
// two values are the same session iff they are ==, so two absent
// IDs match and an absent ID never matches a present one.
type SessionID struct {
	id    string
	valid bool
}

// NewSessionID returns a present session identifier.
// The empty string is a valid, present identifier.
func NewSessionID(id string) SessionID {
	return SessionID{id: id, valid: true}
}

// Valid reports whether s identifies a session.
func (s SessionID) Valid() bool { return s.valid }

// String returns the identifier, or "<none>" for the zero value.
func (s SessionID) String() string {
	if !s.valid {
		return "<none>"
	}
	return s.id
}

// SessionSource supplies the currently active session.
// CurrentSession must be safe to call from any goroutine.
type SessionSource interface {
	CurrentSession() SessionID
}

// SessionFunc adapts a function to a SessionSource.
type SessionFunc func() SessionID

// CurrentSession implements SessionSource.
func (f SessionFunc) CurrentSession() SessionID { return f() }

// StaticSession is a SessionSource that always reports the same
// present session. Useful for apps without a concept of session:
// session-only and cross-session events then behave identically.
type StaticSession struct{}

// CurrentSession implements SessionSource.
func (StaticSession) CurrentSession() SessionID { return NewSessionID("") }

// Sessions is a SessionSource driven by explicit login/logout
// transitions. The zero value has no active session.
type Sessions struct {
	mu  sync.RWMutex
	cur SessionID
}

// Begin starts a new session with a random identifier and returns it.
// Callbacks created before Begin stop seeing their session as current.
func (s *Sessions) Begin() SessionID {
	id := NewSessionID(uuid.NewString())
	s.mu.Lock()
	s.cur = id
	s.mu.Unlock()
	return id
}

// Set makes id the current session.
func (s *Sessions) Set(id SessionID) {
	s.mu.Lock()
	s.cur = id
	s.mu.Unlock()
}

// End clears the current session.
func (s *Sessions) End() {
	s.Set(SessionID{})
}

// CurrentSession implements SessionSource.
func (s *Sessions) CurrentSession() SessionID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// SessionChecker remembers the session active at its creation and
// later answers whether that session is still current.
type SessionChecker struct {
	src   SessionSource
	start SessionID
}

// NewSessionChecker captures src's current session.
func NewSessionChecker(src SessionSource) SessionChecker {
	return SessionChecker{src: src, start: src.CurrentSession()}
}

// SameSession reports whether the source still reports the captured
// session. The answer may change between calls.
func (c SessionChecker) SameSession() bool {
	return c.src.CurrentSession() == c.start
}

// Start returns the session captured at creation.
func (c SessionChecker) Start() SessionID { return c.start }
